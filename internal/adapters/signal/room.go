package signal

import (
	"encoding/json"

	"github.com/dkeye/watchparty/internal/core"
	"github.com/dkeye/watchparty/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(
	sid core.SessionID,
	data json.RawMessage,
) {
	key, err := protocol.DecodeRoomKey(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad join payload")
		return
	}
	if ctl.joins != nil && !ctl.joins.Allow(sid) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Str("room", string(key)).Msg("join rate limited")
		return
	}
	ctl.Orch.Join(sid, key)
}

// handleLeave leaves one room; the connection stays open.
func (ctl *SignalWSController) handleLeave(
	sid core.SessionID,
	data json.RawMessage,
) {
	key, err := protocol.DecodeRoomKey(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad leave payload")
		return
	}
	ctl.Orch.Leave(sid, key)
}
