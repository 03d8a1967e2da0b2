package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lawyerservices/lawyer-services-api/api"
	"github.com/lawyerservices/lawyer-services-api/auth"
	"github.com/lawyerservices/lawyer-services-api/config"
	"github.com/lawyerservices/lawyer-services-api/conversation"
	"github.com/lawyerservices/lawyer-services-api/models"
)

// Message exported for testing purposes
type Message struct {
	Service *conversation.Service
}

// ConversationsHandler returns one entry per counterpart of the caller, newest first
func (m Message) ConversationsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	conversations, err := m.Service.Conversations(ctx, id.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Data: conversations})
}

// ThreadHandler returns one page of the messages between the caller and userId and marks
// what userId sent to the caller as read
func (m Message) ThreadHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	otherID, ok := pathObjectID(w, r, "userId", "Invalid user ID")
	if !ok {
		return
	}

	page := queryInt(r, "page", conversation.DefaultPage)
	limit := queryInt(r, "limit", conversation.DefaultLimit)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	messages, err := m.Service.Thread(ctx, id.ID, otherID, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Data: messages})
}

// SendMessageHandler stores a message from the caller to receiverId
func (m Message) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var body models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	body.Content = strings.TrimSpace(body.Content)
	if errs := api.ValidateStruct(body); len(errs) > 0 {
		api.ValidationFailed(w, errs)
		return
	}
	receiverID, _ := primitive.ObjectIDFromHex(body.ReceiverID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	msg, err := m.Service.Send(ctx, id.ID, receiverID, body.Content, body.MessageType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.SuccessResponse{
		Success: true,
		Message: "Message sent successfully",
		Data:    msg,
	})
}

// ServiceRequestHandler opens a service request and sends it to the lawyer offering the
// service as a service_request message
func (m Message) ServiceRequestHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var body models.ServiceRequestMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	body.CaseDetails = strings.TrimSpace(body.CaseDetails)
	if errs := api.ValidateStruct(body); len(errs) > 0 {
		api.ValidationFailed(w, errs)
		return
	}
	serviceID, _ := primitive.ObjectIDFromHex(body.ServiceID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	resp, err := m.Service.SendServiceRequest(ctx, id.ID, serviceID, body.CaseDetails)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.SuccessResponse{
		Success: true,
		Message: "Service request sent successfully",
		Data:    resp,
	})
}

// MarkReadHandler marks a message addressed to the caller as read
func (m Message) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	messageID, ok := pathObjectID(w, r, "messageId", "Invalid message ID")
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := m.Service.MarkRead(ctx, messageID, id.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Message marked as read"})
}

func callerIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		config.ErrorStatus("Token is not valid", http.StatusUnauthorized, w, nil)
		return auth.Identity{}, false
	}
	return id, true
}

func pathObjectID(w http.ResponseWriter, r *http.Request, name, msg string) (primitive.ObjectID, bool) {
	raw := mux.Vars(r)[name]
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		api.ValidationFailed(w, []models.FieldError{{
			Type:     "field",
			Msg:      msg,
			Path:     name,
			Location: "params",
			Value:    raw,
		}})
		return primitive.NilObjectID, false
	}
	return id, true
}

// queryInt reads a positive integer query parameter, anything else yields def
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		zap.S().Debugw("ignoring invalid query parameter", "key", key, "value", v)
		return def
	}
	return n
}

func writeServiceError(w http.ResponseWriter, err error) {
	var e *conversation.Error
	if !errors.As(err, &e) {
		config.ErrorStatus("Server error", http.StatusInternalServerError, w, err)
		return
	}

	switch e.Kind {
	case conversation.KindValidation:
		api.ValidationFailed(w, []models.FieldError{{
			Type:     "field",
			Msg:      e.Message,
			Path:     e.Field,
			Location: "body",
		}})
	case conversation.KindNotFound:
		config.ErrorStatus(e.Message, http.StatusNotFound, w, nil)
	default:
		config.ErrorStatus(e.Message, http.StatusInternalServerError, w, e.Err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
