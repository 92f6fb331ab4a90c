package orch

import (
	"github.com/dkeye/watchparty/internal/core"
	"github.com/dkeye/watchparty/internal/domain"
	"github.com/dkeye/watchparty/internal/protocol"
	"github.com/rs/zerolog/log"
)

// SetPlaying records play/pause and relays it to everybody but the sender,
// who already applied it locally.
func (o *Orchestrator) SetPlaying(sid core.SessionID, key domain.RoomKey, playing bool) {
	members, err := o.Registry.Update(sid, key, func(r *domain.Room) error {
		r.SetPlaying(playing)
		return nil
	})
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("room", string(key)).Bool("playing", playing).Msg("playback command ignored")
		return
	}
	eventType := protocol.TypePause
	if playing {
		eventType = protocol.TypePlay
	}
	o.publish(key, members, sid, eventType, nil)
}

// SyncTime stores the reported playhead and relays it to the other members.
func (o *Orchestrator) SyncTime(sid core.SessionID, key domain.RoomKey, t float64) {
	members, err := o.Registry.Update(sid, key, func(r *domain.Room) error {
		return r.SyncTime(t)
	})
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("room", string(key)).Float64("current_time", t).Msg("sync ignored")
		return
	}
	o.publish(key, members, sid, protocol.TypeSyncTime, protocol.SyncTimeEvent{CurrentTime: t})
}

// SetVideoURL swaps the source, rewinds the room and echoes the change to
// every member including the sender.
func (o *Orchestrator) SetVideoURL(sid core.SessionID, key domain.RoomKey, url string) {
	members, err := o.Registry.Update(sid, key, func(r *domain.Room) error {
		r.SetVideoURL(url)
		return nil
	})
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("room", string(key)).Msg("video url ignored")
		return
	}
	log.Info().Str("module", "orch").Str("room", string(key)).Str("video_url", url).Msg("video url set")
	o.publish(key, members, "", protocol.TypeVideoURLChanged, protocol.VideoURLChangedEvent{VideoURL: url})
}
