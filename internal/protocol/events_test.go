package protocol

import (
	"encoding/json"
	"testing"

	"github.com/dkeye/watchparty/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_OmitsEmptyData(t *testing.T) {
	frame, err := Encode(TypePlay, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"play"}`, string(frame))
}

func TestEncode_RoomStateKeepsNullURL(t *testing.T) {
	frame, err := Encode(TypeRoomState, NewRoomStateEvent(domain.PlaybackState{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"roomState","data":{"currentTime":0,"isPlaying":false,"videoUrl":null}}`, string(frame))
}

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "with data", raw: `{"type":"joinRoom","data":"ABC123"}`, want: TypeJoinRoom},
		{name: "without data", raw: `{"type":"ping"}`, want: TypePing},
		{name: "not json", raw: `not json`, wantErr: true},
		{name: "no type", raw: `{"data":"x"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := DecodeEnvelope([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, env.Type)
		})
	}
}

func TestDecodeRoomKey(t *testing.T) {
	key, err := DecodeRoomKey(json.RawMessage(`"Room-ÄÖ 1"`))
	require.NoError(t, err)
	assert.Equal(t, domain.RoomKey("Room-ÄÖ 1"), key)

	_, err = DecodeRoomKey(nil)
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = DecodeRoomKey(json.RawMessage(`null`))
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = DecodeRoomKey(json.RawMessage(`{"roomId":"x"}`))
	assert.Error(t, err)
}

func TestDecodeSyncTime(t *testing.T) {
	p, err := DecodeSyncTime(json.RawMessage(`{"roomId":"r","currentTime":12.5}`))
	require.NoError(t, err)
	assert.Equal(t, domain.RoomKey("r"), p.RoomID)
	assert.Equal(t, 12.5, *p.CurrentTime)

	_, err = DecodeSyncTime(json.RawMessage(`{"roomId":"r"}`))
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = DecodeSyncTime(json.RawMessage(`{"roomId":"r","currentTime":"soon"}`))
	assert.Error(t, err)
}

func TestDecodeSetVideoURL(t *testing.T) {
	p, err := DecodeSetVideoURL(json.RawMessage(`{"roomId":"r","videoUrl":"rtmp://odd"}`))
	require.NoError(t, err)
	assert.Equal(t, "rtmp://odd", *p.VideoURL)

	_, err = DecodeSetVideoURL(json.RawMessage(`{"roomId":"r"}`))
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestDecodeChat(t *testing.T) {
	p, err := DecodeChat(json.RawMessage(`{"roomId":"r","message":"hi","username":"amy"}`))
	require.NoError(t, err)
	assert.Equal(t, ChatPayload{RoomID: "r", Message: "hi", Username: "amy"}, p)

	_, err = DecodeChat(nil)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestDecodePayloads_RoomFieldSpellings(t *testing.T) {
	tests := []struct {
		name string
		data string
		want domain.RoomKey
	}{
		{"roomId", `{"roomId":"ABC123","currentTime":4.5,"videoUrl":"u","message":"hi","username":"amy"}`, "ABC123"},
		{"roomKey", `{"roomKey":"ABC123","currentTime":4.5,"videoUrl":"u","message":"hi","username":"amy"}`, "ABC123"},
		{"both prefers roomId", `{"roomId":"one","roomKey":"two","currentTime":4.5,"videoUrl":"u","message":"hi","username":"amy"}`, "one"},
		{"neither", `{"currentTime":4.5,"videoUrl":"u","message":"hi","username":"amy"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := json.RawMessage(tt.data)

			st, err := DecodeSyncTime(data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, st.RoomID)
			assert.Equal(t, 4.5, *st.CurrentTime)

			vu, err := DecodeSetVideoURL(data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, vu.RoomID)

			chat, err := DecodeChat(data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, chat.RoomID)
			assert.Equal(t, "hi", chat.Message)
		})
	}
}
