package signal

import (
	"encoding/json"

	"github.com/dkeye/watchparty/internal/core"
	"github.com/dkeye/watchparty/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleMessage(
	sid core.SessionID,
	data json.RawMessage,
) {
	p, err := protocol.DecodeChat(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad message payload")
		return
	}
	ctl.Orch.SendChat(sid, p.RoomID, p.Message, p.Username)
}
