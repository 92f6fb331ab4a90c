package signal

import (
	"encoding/json"

	"github.com/dkeye/watchparty/internal/core"
	"github.com/dkeye/watchparty/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handlePlayback(
	sid core.SessionID,
	data json.RawMessage,
	playing bool,
) {
	key, err := protocol.DecodeRoomKey(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Bool("playing", playing).Msg("bad playback payload")
		return
	}
	ctl.Orch.SetPlaying(sid, key, playing)
}

func (ctl *SignalWSController) handleSyncTime(
	sid core.SessionID,
	data json.RawMessage,
) {
	p, err := protocol.DecodeSyncTime(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad syncTime payload")
		return
	}
	ctl.Orch.SyncTime(sid, p.RoomID, *p.CurrentTime)
}

func (ctl *SignalWSController) handleSetVideoURL(
	sid core.SessionID,
	data json.RawMessage,
) {
	p, err := protocol.DecodeSetVideoURL(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad setVideoUrl payload")
		return
	}
	ctl.Orch.SetVideoURL(sid, p.RoomID, *p.VideoURL)
}
