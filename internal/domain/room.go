// Package domain contains the room and chat entities shared by every layer.
// Nothing here touches transport or locking.
package domain

import (
	"errors"
	"math"
)

var ErrNegativePlayhead = errors.New("playhead must be a non-negative finite number")

type RoomKey string

// PlaybackState is the shared player state of a room.
// VideoURL is nil until a member sets a source.
type PlaybackState struct {
	VideoURL    *string
	IsPlaying   bool
	CurrentTime float64
}

type Room struct {
	Key      RoomKey
	Playback PlaybackState
}

func NewRoom(key RoomKey) *Room {
	return &Room{Key: key}
}

func (r *Room) SetPlaying(playing bool) {
	r.Playback.IsPlaying = playing
}

// SyncTime stores the last reported playhead. The value is trusted as is,
// there is no duration check and no ordering check.
func (r *Room) SyncTime(t float64) error {
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return ErrNegativePlayhead
	}
	r.Playback.CurrentTime = t
	return nil
}

// SetVideoURL replaces the source and rewinds the room to a paused start.
func (r *Room) SetVideoURL(url string) {
	r.Playback = PlaybackState{VideoURL: &url}
}

// Snapshot returns a copy that is safe to hand out after the lock is released.
func (r *Room) Snapshot() PlaybackState {
	s := r.Playback
	if s.VideoURL != nil {
		u := *s.VideoURL
		s.VideoURL = &u
	}
	return s
}
