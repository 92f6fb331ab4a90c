// Package protocol defines the JSON envelope exchanged over the signal
// socket and the payload of every inbound command and outbound event.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/watchparty/internal/core"
	"github.com/dkeye/watchparty/internal/domain"
)

// Inbound commands.
const (
	TypeJoinRoom    = "joinRoom"
	TypeLeaveRoom   = "leaveRoom"
	TypePlay        = "play"
	TypePause       = "pause"
	TypeSyncTime    = "syncTime"
	TypeSetVideoURL = "setVideoUrl"
	TypeMessage     = "message"
	TypePing        = "ping"
)

// Outbound events. play, pause, syncTime and message reuse the command names.
const (
	TypeRoomState       = "roomState"
	TypeVideoURLChanged = "videoUrlChanged"
	TypeUserJoined      = "userJoined"
	TypeUserLeft        = "userLeft"
	TypeLeft            = "left"
	TypePong            = "pong"
)

var ErrMissingField = errors.New("missing required field")

// Envelope is the inbound frame: {"type": "...", "data": ...}.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type outEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Object payloads name their room as roomId or roomKey; RoomID holds the
// result after decoding, with roomId winning when both are set.
type SyncTimePayload struct {
	RoomID      domain.RoomKey `json:"roomId"`
	RoomKey     domain.RoomKey `json:"roomKey,omitempty"`
	CurrentTime *float64       `json:"currentTime"`
}

type SetVideoURLPayload struct {
	RoomID   domain.RoomKey `json:"roomId"`
	RoomKey  domain.RoomKey `json:"roomKey,omitempty"`
	VideoURL *string        `json:"videoUrl"`
}

type ChatPayload struct {
	RoomID   domain.RoomKey `json:"roomId"`
	RoomKey  domain.RoomKey `json:"roomKey,omitempty"`
	Message  string         `json:"message"`
	Username string         `json:"username"`
}

type RoomStateEvent struct {
	CurrentTime float64 `json:"currentTime"`
	IsPlaying   bool    `json:"isPlaying"`
	VideoURL    *string `json:"videoUrl"`
}

type SyncTimeEvent struct {
	CurrentTime float64 `json:"currentTime"`
}

type VideoURLChangedEvent struct {
	VideoURL string `json:"videoUrl"`
}

type ChatEvent struct {
	Message   string `json:"message"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

type LeftEvent struct {
	RoomID domain.RoomKey `json:"roomId"`
}

func NewRoomStateEvent(s domain.PlaybackState) RoomStateEvent {
	return RoomStateEvent{CurrentTime: s.CurrentTime, IsPlaying: s.IsPlaying, VideoURL: s.VideoURL}
}

func NewChatEvent(m *domain.ChatMessage) ChatEvent {
	return ChatEvent{Message: m.Text, Username: m.Author, Timestamp: m.EmittedAt}
}

// Encode wraps data into an outbound envelope. A nil data omits the field.
func Encode(eventType string, data any) (core.Frame, error) {
	b, err := json.Marshal(outEnvelope{Type: eventType, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", eventType, err)
	}
	return b, nil
}

func DecodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("decode envelope: type: %w", ErrMissingField)
	}
	return env, nil
}

// DecodeRoomKey reads the bare string payload of joinRoom, leaveRoom, play and pause.
func DecodeRoomKey(data json.RawMessage) (domain.RoomKey, error) {
	if len(data) == 0 || string(data) == "null" {
		return "", fmt.Errorf("room key: %w", ErrMissingField)
	}
	var key string
	if err := json.Unmarshal(data, &key); err != nil {
		return "", fmt.Errorf("room key: %w", err)
	}
	return domain.RoomKey(key), nil
}

func DecodeSyncTime(data json.RawMessage) (SyncTimePayload, error) {
	var p SyncTimePayload
	if err := decodeObject(data, &p); err != nil {
		return p, fmt.Errorf("syncTime: %w", err)
	}
	p.RoomID = roomOf(p.RoomID, p.RoomKey)
	if p.CurrentTime == nil {
		return p, fmt.Errorf("syncTime: currentTime: %w", ErrMissingField)
	}
	return p, nil
}

func DecodeSetVideoURL(data json.RawMessage) (SetVideoURLPayload, error) {
	var p SetVideoURLPayload
	if err := decodeObject(data, &p); err != nil {
		return p, fmt.Errorf("setVideoUrl: %w", err)
	}
	p.RoomID = roomOf(p.RoomID, p.RoomKey)
	if p.VideoURL == nil {
		return p, fmt.Errorf("setVideoUrl: videoUrl: %w", ErrMissingField)
	}
	return p, nil
}

func DecodeChat(data json.RawMessage) (ChatPayload, error) {
	var p ChatPayload
	if err := decodeObject(data, &p); err != nil {
		return p, fmt.Errorf("message: %w", err)
	}
	p.RoomID = roomOf(p.RoomID, p.RoomKey)
	return p, nil
}

func roomOf(id, key domain.RoomKey) domain.RoomKey {
	if id != "" {
		return id
	}
	return key
}

func decodeObject(data json.RawMessage, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return ErrMissingField
	}
	return json.Unmarshal(data, v)
}
