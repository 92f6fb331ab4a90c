package core

import "github.com/dkeye/watchparty/internal/domain"

// Frame is one encoded outbound event.
type Frame []byte

type SessionID string

// SignalConnection abstracts the messaging transport of one client.
// Owned by the adapter; the adapter must Close() it.
// TrySend never blocks.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// MemberSession binds a connection id and its transport endpoint.
// This is what the registry stores and fans out to.
type MemberSession interface {
	ID() SessionID
	ClientToken() string
	Signal() SignalConnection
}

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SendTo  int
	Dropped []MemberSession
}

// RoomInfo is a read-only view for the HTTP API.
type RoomInfo struct {
	Name        domain.RoomKey `json:"name"`
	MemberCount int            `json:"memberCount"`
	IsPlaying   bool           `json:"isPlaying"`
	CurrentTime float64        `json:"currentTime"`
	VideoURL    *string        `json:"videoUrl"`
}

// Stats is the health snapshot of the registry.
type Stats struct {
	ActiveRooms int
	TotalUsers  int
}
