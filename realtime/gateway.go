// Package realtime is the websocket gateway that relays message, read receipt, typing and
// presence events between connected clients.
package realtime

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lawyerservices/lawyer-services-api/auth"
	"github.com/lawyerservices/lawyer-services-api/config"
	"github.com/lawyerservices/lawyer-services-api/models"
)

const publishTimeout = 5 * time.Second

// TokenVerifier turns a session token into the caller's identity
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Gateway accepts websocket connections and relays events between them
type Gateway struct {
	verifier TokenVerifier
	registry *Registry
	broker   Broker
	upgrader websocket.Upgrader
	now      func() time.Time
}

// NewGateway returns a Gateway that authenticates with verifier and fans out through
// broker. A nil broker keeps deliveries in process. An empty allowedOrigins accepts any
// origin.
func NewGateway(verifier TokenVerifier, broker Broker, allowedOrigins []string) *Gateway {
	if broker == nil {
		broker = NewLocalBroker()
	}
	return &Gateway{
		verifier: verifier,
		registry: NewRegistry(),
		broker:   broker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		now: time.Now,
	}
}

// Start subscribes the gateway to its broker. It must be called before serving.
func (g *Gateway) Start(ctx context.Context) error {
	return g.broker.Subscribe(ctx, g.deliver)
}

// Close disconnects every session and closes the broker
func (g *Gateway) Close() error {
	for _, s := range g.registry.All() {
		s.close()
	}
	return g.broker.Close()
}

// Registry exposes room membership, mostly for diagnostics and tests
func (g *Gateway) Registry() *Registry {
	return g.registry
}

// ServeHTTP authenticates the handshake, upgrades the connection and runs the session
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := g.verifier.Verify(auth.TokenFromRequest(r))
	if err != nil {
		msg := "Authentication error: Invalid token"
		reason := "invalid_token"
		if errors.Is(err, auth.ErrMissingToken) {
			msg = "Authentication error: No token provided"
			reason = "missing_token"
		}
		HandshakeRejections.WithLabelValues(reason).Inc()
		config.ErrorStatus(msg, http.StatusUnauthorized, w, nil)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written the http error
		HandshakeRejections.WithLabelValues("upgrade").Inc()
		zap.S().Debugw("websocket upgrade failed", "error", err)
		return
	}

	s := newSession(uuid.NewString(), id.ID.Hex(), id.Role, conn)
	g.connect(s)

	go s.writePump()
	go func() {
		defer g.disconnect(s)
		s.readPump(g.handle)
	}()
}

func (g *Gateway) connect(s *Session) {
	g.registry.Add(s)
	g.registry.Join(s, PersonalRoom(s.UserID))
	if s.Role == models.RoleLawyer {
		g.registry.Join(s, LawyersRoom)
	}
	SessionsActive.Inc()
	zap.S().Infow("websocket connected",
		"sessionId", s.ID,
		"userId", s.UserID,
		"role", s.Role)
}

func (g *Gateway) disconnect(s *Session) {
	g.registry.Remove(s)
	s.close()
	SessionsActive.Dec()
	zap.S().Infow("websocket disconnected",
		"sessionId", s.ID,
		"userId", s.UserID)

	g.emit(s, "", EventUserStatus, UserStatus{
		UserID:    s.UserID,
		Status:    StatusOffline,
		Timestamp: timestamp(g.now()),
	})
}

// handle runs one client frame. Failures are reported to s only.
func (g *Gateway) handle(s *Session, frame []byte) {
	payload, err := parseInbound(frame)
	if err != nil {
		EventsTotal.WithLabelValues("in", "invalid").Inc()
		zap.S().Debugw("rejected websocket event", "sessionId", s.ID, "error", err)
		msg := "Invalid event payload"
		if errors.Is(err, errUnknownEvent) {
			msg = "Unknown event"
		}
		g.sendError(s, msg)
		return
	}
	EventsTotal.WithLabelValues("in", payload.eventName()).Inc()

	now := timestamp(g.now())
	switch p := payload.(type) {
	case *JoinConversation:
		g.registry.Join(s, RoomName(s.UserID, p.OtherUserID))

	case *LeaveConversation:
		g.registry.Leave(s, RoomName(s.UserID, p.OtherUserID))

	case *SendMessage:
		g.emit(nil, RoomName(s.UserID, p.RecipientID), EventNewMessage, NewMessage{
			ID:          p.MessageID,
			SenderID:    s.UserID,
			RecipientID: p.RecipientID,
			Content:     p.Content,
			Timestamp:   now,
			IsRead:      false,
		})
		g.emit(s, PersonalRoom(p.RecipientID), EventMessageNotification, MessageNotification{
			SenderID:  s.UserID,
			Content:   p.Content,
			Timestamp: now,
		})

	case *MarkMessageRead:
		g.emit(s, PersonalRoom(p.SenderID), EventMessageRead, MessageRead{
			MessageID: p.MessageID,
			ReadBy:    s.UserID,
			Timestamp: now,
		})

	case *Typing:
		g.emit(s, RoomName(s.UserID, p.RecipientID), EventUserTyping, UserTyping{
			UserID:   s.UserID,
			IsTyping: p.typing,
		})

	case UserOnline:
		g.emit(s, "", EventUserStatus, UserStatus{
			UserID:    s.UserID,
			Status:    StatusOnline,
			Timestamp: now,
		})
	}
}

// emit publishes event to room, skipping except when it is set. An empty room reaches
// every connection. When the broker is unreachable only this instance's members get it.
func (g *Gateway) emit(except *Session, room, event string, data interface{}) {
	frame, err := encode(event, data)
	if err != nil {
		zap.S().Errorw("failed to encode websocket event", "event", event, "error", err)
		return
	}

	d := Delivery{Room: room, Frame: frame}
	if except != nil {
		d.Except = except.ID
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := g.broker.Publish(ctx, d); err != nil {
		// keep this instance's members served when the broker is unreachable
		zap.S().Warnw("failed to publish websocket event, delivering locally",
			"event", event,
			"room", room,
			"error", err)
		g.deliver(d)
	}
	EventsTotal.WithLabelValues("out", event).Inc()
}

// deliver writes d to the local members of its room
func (g *Gateway) deliver(d Delivery) {
	var targets []*Session
	if d.Room == "" {
		targets = g.registry.All()
	} else {
		targets = g.registry.Members(d.Room)
	}
	for _, s := range targets {
		if s.ID == d.Except {
			continue
		}
		s.enqueue(d.Frame)
	}
}

func (g *Gateway) sendError(s *Session, message string) {
	frame, err := encode(EventError, ErrorEvent{Message: message})
	if err != nil {
		return
	}
	EventsTotal.WithLabelValues("out", EventError).Inc()
	s.enqueue(frame)
}

func checkOrigin(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(strings.ToLower(o), "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		_, ok := set[strings.ToLower(u.Scheme+"://"+u.Host)]
		return ok
	}
}
