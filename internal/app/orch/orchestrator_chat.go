package orch

import (
	"github.com/dkeye/watchparty/internal/core"
	"github.com/dkeye/watchparty/internal/domain"
	"github.com/dkeye/watchparty/internal/protocol"
	"github.com/rs/zerolog/log"
)

// SendChat stamps and relays a chat line to the whole room, sender included.
// Nothing is kept once it is sent.
func (o *Orchestrator) SendChat(sid core.SessionID, key domain.RoomKey, text, author string) {
	msg, err := domain.NewChatMessage(text, author, o.now())
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("room", string(key)).Msg("chat dropped")
		return
	}
	members, err := o.Registry.Members(sid, key)
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("room", string(key)).Msg("chat ignored")
		return
	}
	o.publish(key, members, "", protocol.TypeMessage, protocol.NewChatEvent(msg))
}
