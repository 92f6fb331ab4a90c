package app

import (
	"github.com/dkeye/watchparty/internal/core"
	"github.com/dkeye/watchparty/internal/domain"
)

type BackpressureAction int

const (
	KickMember BackpressureAction = iota
	DropFrame
)

type Policy interface {
	OnBackPressure(room domain.RoomKey, member core.MemberSession) BackpressureAction
}

// SimplePolicy kicks any member whose send queue is full.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(room domain.RoomKey, member core.MemberSession) BackpressureAction {
	return KickMember
}

// DropPolicy loses the frame and keeps the member connected.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(room domain.RoomKey, member core.MemberSession) BackpressureAction {
	return DropFrame
}

// PolicyFor maps the backpressure config value to a policy. Unknown names kick.
func PolicyFor(name string) Policy {
	if name == "drop" {
		return DropPolicy{}
	}
	return SimplePolicy{}
}
