package orch

import (
	"github.com/dkeye/watchparty/internal/core"
	"github.com/dkeye/watchparty/internal/domain"
	"github.com/dkeye/watchparty/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Join makes sid a member of key, sends it the current playback snapshot and
// tells the other members. Joining another room keeps the earlier ones.
func (o *Orchestrator) Join(sid core.SessionID, key domain.RoomKey) {
	res, err := o.Registry.Join(sid, key, func(self core.MemberSession, s domain.PlaybackState) {
		o.unicast(self, protocol.TypeRoomState, protocol.NewRoomStateEvent(s))
	})
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("room", string(key)).Msg("join ignored")
		return
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(key)).Bool("created", res.Created).Msg("joined room")
	if res.Rejoined {
		return
	}
	o.publish(key, res.Others, sid, protocol.TypeUserJoined, string(sid))
}

// Leave drops sid from key without closing the connection.
func (o *Orchestrator) Leave(sid core.SessionID, key domain.RoomKey) {
	dep, err := o.Registry.Leave(sid, key)
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("room", string(key)).Msg("leave ignored")
		return
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(key)).Bool("room_deleted", dep.Deleted).Msg("left room")
	if sess, ok := o.Registry.GetSession(sid); ok {
		o.unicast(sess, protocol.TypeLeft, protocol.LeftEvent{RoomID: key})
	}
	o.publish(key, dep.Remaining, sid, protocol.TypeUserLeft, string(sid))
}

// OnDisconnect is terminal for sid: it leaves every room it joined.
// Safe to call more than once.
func (o *Orchestrator) OnDisconnect(sid core.SessionID) {
	deps := o.Registry.Disconnect(sid)
	for _, dep := range deps {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(dep.Room)).Bool("room_deleted", dep.Deleted).Msg("disconnected from room")
		o.publish(dep.Room, dep.Remaining, sid, protocol.TypeUserLeft, string(sid))
	}
}
