// Package orch implements the per-connection session handler: it turns
// decoded commands into registry mutations and fans the resulting events out
// to room members.
package orch

import (
	"time"

	"github.com/dkeye/watchparty/internal/app"
	"github.com/dkeye/watchparty/internal/core"
	"github.com/dkeye/watchparty/internal/domain"
	"github.com/dkeye/watchparty/internal/protocol"
	"github.com/rs/zerolog/log"
)

type Orchestrator struct {
	Registry *app.Registry
	Policy   app.Policy
	// Now stamps chat messages. Defaults to time.Now.
	Now func() time.Time
}

func New(reg *app.Registry, policy app.Policy) *Orchestrator {
	return &Orchestrator{Registry: reg, Policy: policy, Now: time.Now}
}

func (o *Orchestrator) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// publish encodes one event and hands it to every recipient but except.
func (o *Orchestrator) publish(room domain.RoomKey, recipients []core.MemberSession, except core.SessionID, eventType string, data any) {
	if len(recipients) == 0 {
		return
	}
	frame, err := protocol.Encode(eventType, data)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("room", string(room)).Msg("encode event")
		return
	}
	res := app.Broadcast(recipients, except, frame)
	o.onDropped(room, res)
}

func (o *Orchestrator) unicast(sess core.MemberSession, eventType string, data any) {
	frame, err := protocol.Encode(eventType, data)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("sid", string(sess.ID())).Msg("encode event")
		return
	}
	if err := sess.Signal().TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(sess.ID())).Str("type", eventType).Msg("unicast dropped")
	}
}

func (o *Orchestrator) onDropped(room domain.RoomKey, res core.PublishResult) {
	if o.Policy == nil {
		return
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(room, slow) {
		case app.KickMember:
			o.Kick(slow)
		case app.DropFrame:
			log.Debug().Str("module", "orch").Str("sid", string(slow.ID())).Str("room", string(room)).Msg("frame dropped for slow member")
		}
	}
}

// Kick closes the member's transport. The adapter's read loop then runs the
// regular disconnect path.
func (o *Orchestrator) Kick(sess core.MemberSession) {
	log.Warn().Str("module", "orch").Str("sid", string(sess.ID())).Msg("kicking slow member")
	o.Registry.Cancel(sess.ID())
	sess.Signal().Close()
}
