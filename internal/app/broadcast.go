package app

import (
	"github.com/dkeye/watchparty/internal/core"
	"github.com/rs/zerolog/log"
)

// Broadcast enqueues data on every recipient except the one with id except
// (pass "" to reach everybody). TrySend never blocks, so one slow peer cannot
// hold up the others; peers that refuse the frame end up in Dropped.
func Broadcast(recipients []core.MemberSession, except core.SessionID, data core.Frame) core.PublishResult {
	res := core.PublishResult{}
	for _, m := range recipients {
		if except != "" && m.ID() == except {
			continue
		}
		if err := m.Signal().TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, m)
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "app.broadcast").Str("from", string(except)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}
