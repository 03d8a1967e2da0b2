package realtime

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	idA = "64a1b2c3d4e5f6789abcdef0"
	idB = "64a1b2c3d4e5f6789abcdef1"
)

func TestParseInbound(t *testing.T) {
	tests := []struct {
		frame string
		want  inbound
	}{
		{`{"event":"join_conversation","data":{"otherUserId":"` + idA + `"}}`, &JoinConversation{OtherUserID: idA}},
		{`{"event":"leave_conversation","data":{"otherUserId":"` + idA + `"}}`, &LeaveConversation{OtherUserID: idA}},
		{`{"event":"send_message","data":{"recipientId":"` + idA + `","content":"hi","messageId":"` + idB + `"}}`,
			&SendMessage{RecipientID: idA, Content: "hi", MessageID: idB}},
		{`{"event":"mark_message_read","data":{"messageId":"` + idB + `","senderId":"` + idA + `"}}`,
			&MarkMessageRead{MessageID: idB, SenderID: idA}},
		{`{"event":"typing_start","data":{"recipientId":"` + idA + `"}}`, &Typing{RecipientID: idA, typing: true}},
		{`{"event":"typing_stop","data":{"recipientId":"` + idA + `"}}`, &Typing{RecipientID: idA}},
		{`{"event":"user_online"}`, UserOnline{}},
		{`{"event":"user_online","data":{}}`, UserOnline{}},
	}
	for _, tt := range tests {
		got, err := parseInbound([]byte(tt.frame))
		require.NoError(t, err, tt.frame)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseInboundRejects(t *testing.T) {
	tests := map[string]error{
		`not json`:                         errInvalidPayload,
		`{"event":"dance"}`:                errUnknownEvent,
		`{"event":"join_conversation"}`:    errInvalidPayload,
		`{"event":"join_conversation","data":null}`:                    errInvalidPayload,
		`{"event":"join_conversation","data":{}}`:                      errInvalidPayload,
		`{"event":"join_conversation","data":{"otherUserId":42}}`:      errInvalidPayload,
		`{"event":"join_conversation","data":{"otherUserId":"nope"}}`:  errInvalidPayload,
		`{"event":"send_message","data":{"recipientId":"` + idA + `"}}`: errInvalidPayload,
		`{"event":"send_message","data":{"recipientId":"` + idA + `","content":"` + strings.Repeat("x", 1001) + `","messageId":"` + idB + `"}}`: errInvalidPayload,
		`{"event":"mark_message_read","data":{"messageId":"` + idB + `"}}`: errInvalidPayload,
	}
	for frame, want := range tests {
		_, err := parseInbound([]byte(frame))
		assert.ErrorIs(t, err, want, frame)
	}
}

func TestEncode(t *testing.T) {
	frame, err := encode(EventUserTyping, UserTyping{UserID: idA, IsTyping: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"user_typing","data":{"userId":"`+idA+`","isTyping":true}}`, string(frame))

	var env Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	assert.Equal(t, EventUserTyping, env.Event)
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 30, 15, 123456789, time.FixedZone("X", 3600))
	assert.Equal(t, "2024-03-01T08:30:15.123Z", timestamp(ts))
}
