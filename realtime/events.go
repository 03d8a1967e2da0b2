package realtime

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Client to server events
const (
	EventJoinConversation  = "join_conversation"
	EventLeaveConversation = "leave_conversation"
	EventSendMessage       = "send_message"
	EventMarkMessageRead   = "mark_message_read"
	EventTypingStart       = "typing_start"
	EventTypingStop        = "typing_stop"
	EventUserOnline        = "user_online"
)

// Server to client events
const (
	EventNewMessage          = "new_message"
	EventMessageNotification = "message_notification"
	EventMessageRead         = "message_read"
	EventUserTyping          = "user_typing"
	EventUserStatus          = "user_status"
	EventError               = "error"
)

// Presence states carried by user_status
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

var (
	errUnknownEvent   = errors.New("unknown event")
	errInvalidPayload = errors.New("invalid event payload")
)

var validate = validator.New()

// Envelope is the frame shape in both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// inbound is implemented by every client to server payload
type inbound interface {
	eventName() string
}

// JoinConversation asks to join the room shared with OtherUserID
type JoinConversation struct {
	OtherUserID string `json:"otherUserId" validate:"required,mongodb"`
}

// LeaveConversation asks to leave the room shared with OtherUserID
type LeaveConversation struct {
	OtherUserID string `json:"otherUserId" validate:"required,mongodb"`
}

// SendMessage relays a message the client already stored over http
type SendMessage struct {
	RecipientID string `json:"recipientId" validate:"required,mongodb"`
	Content     string `json:"content" validate:"required,max=1000"`
	MessageID   string `json:"messageId" validate:"required,mongodb"`
}

// MarkMessageRead tells SenderID that MessageID was read
type MarkMessageRead struct {
	MessageID string `json:"messageId" validate:"required,mongodb"`
	SenderID  string `json:"senderId" validate:"required,mongodb"`
}

// Typing is sent for both typing_start and typing_stop
type Typing struct {
	RecipientID string `json:"recipientId" validate:"required,mongodb"`
	typing      bool
}

// UserOnline announces the caller as online
type UserOnline struct{}

func (JoinConversation) eventName() string  { return EventJoinConversation }
func (LeaveConversation) eventName() string { return EventLeaveConversation }
func (SendMessage) eventName() string       { return EventSendMessage }
func (MarkMessageRead) eventName() string   { return EventMarkMessageRead }
func (UserOnline) eventName() string        { return EventUserOnline }

func (t Typing) eventName() string {
	if t.typing {
		return EventTypingStart
	}
	return EventTypingStop
}

// NewMessage is broadcast to the conversation room
type NewMessage struct {
	ID          string `json:"id"`
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
	Timestamp   string `json:"timestamp"`
	IsRead      bool   `json:"isRead"`
}

// MessageNotification reaches the recipient outside the conversation room
type MessageNotification struct {
	SenderID  string `json:"senderId"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// MessageRead is the read receipt sent to the original sender
type MessageRead struct {
	MessageID string `json:"messageId"`
	ReadBy    string `json:"readBy"`
	Timestamp string `json:"timestamp"`
}

// UserTyping is the typing indicator
type UserTyping struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// UserStatus is the presence broadcast
type UserStatus struct {
	UserID    string `json:"userId"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ErrorEvent is only ever sent to the connection that caused it
type ErrorEvent struct {
	Message string `json:"message"`
}

// parseInbound decodes a client frame into its typed payload. Unknown events and payloads
// that fail their schema are errors.
func parseInbound(frame []byte) (inbound, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}

	var payload inbound
	switch env.Event {
	case EventJoinConversation:
		payload = &JoinConversation{}
	case EventLeaveConversation:
		payload = &LeaveConversation{}
	case EventSendMessage:
		payload = &SendMessage{}
	case EventMarkMessageRead:
		payload = &MarkMessageRead{}
	case EventTypingStart:
		payload = &Typing{typing: true}
	case EventTypingStop:
		payload = &Typing{}
	case EventUserOnline:
		return UserOnline{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownEvent, env.Event)
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, fmt.Errorf("%w: %s requires data", errInvalidPayload, env.Event)
	}
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	return payload, nil
}

func encode(event string, data interface{}) ([]byte, error) {
	return json.Marshal(outbound{Event: event, Data: data})
}

const timestampLayout = "2006-01-02T15:04:05.000Z"

func timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
