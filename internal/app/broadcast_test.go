package app

import (
	"testing"

	"github.com/dkeye/watchparty/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestBroadcast(t *testing.T) {
	sender := &mockConn{}
	ok := &mockConn{}
	slow := &mockConn{full: true}
	members := []core.MemberSession{
		core.NewMemberSession("sender", "", sender),
		core.NewMemberSession("ok", "", ok),
		core.NewMemberSession("slow", "", slow),
	}

	tests := []struct {
		name       string
		except     core.SessionID
		wantSent   int
		wantSender int
	}{
		{name: "excluding sender", except: "sender", wantSent: 1, wantSender: 0},
		{name: "whole room", except: "", wantSent: 2, wantSender: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender.frames, ok.frames = nil, nil

			res := Broadcast(members, tt.except, core.Frame(`{"type":"play"}`))

			assert.Equal(t, tt.wantSent, res.SendTo)
			assert.Len(t, res.Dropped, 1)
			assert.Equal(t, core.SessionID("slow"), res.Dropped[0].ID())
			assert.Len(t, sender.received(), tt.wantSender)
			assert.Len(t, ok.received(), 1)
		})
	}
}
