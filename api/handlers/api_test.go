package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lawyerservices/lawyer-services-api/auth"
	"github.com/lawyerservices/lawyer-services-api/config"
	"github.com/lawyerservices/lawyer-services-api/conversation"
	mocksdb "github.com/lawyerservices/lawyer-services-api/databases/mocks"
	"github.com/lawyerservices/lawyer-services-api/models"
)

const testSecret = "test-secret"

var a App

func executeRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func checkResponseCode(t *testing.T, expected, actual int) {
	if expected != actual {
		t.Errorf("Expected response code %d. Got %d\n", expected, actual)
	}
}

func newTestApp(messages *mocksdb.MessageDatabase) {
	a = App{
		Config:        config.Config{JWTSecret: testSecret},
		Conversations: &conversation.Service{Messages: messages},
	}
	a.Router = a.New()
}

func bearer(t *testing.T, id primitive.ObjectID) string {
	t.Helper()
	token, err := auth.NewVerifier(testSecret).Sign(id, models.RoleUser, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestUnknownRoute(t *testing.T) {
	newTestApp(&mocksdb.MessageDatabase{})
	req, _ := http.NewRequest("GET", "/asdf", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusNotFound, response.Code)
}

func TestHealthCheckRoute(t *testing.T) {
	newTestApp(&mocksdb.MessageDatabase{})
	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)

	if !strings.Contains(response.Body.String(), "alive") {
		t.Errorf("Expected 'alive' in the reponse. Got '%s'", response.Body.String())
	}
}

func TestApp_MessagesUnauthorized(t *testing.T) {
	newTestApp(&mocksdb.MessageDatabase{})
	req, _ := http.NewRequest("GET", "/api/messages", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusUnauthorized, response.Code)
	assert.JSONEq(t, `{"success":false,"message":"No token, authorization denied"}`, response.Body.String())
}

func TestApp_MessagesInvalidToken(t *testing.T) {
	newTestApp(&mocksdb.MessageDatabase{})
	req, _ := http.NewRequest("GET", "/api/messages", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	response := executeRequest(req)

	checkResponseCode(t, http.StatusUnauthorized, response.Code)
	assert.Contains(t, response.Body.String(), "Token is not valid")
}

func TestApp_ConversationsRoute(t *testing.T) {
	messages := &mocksdb.MessageDatabase{}
	newTestApp(messages)
	caller := primitive.NewObjectID()
	messages.On("ListConversations", mock.Anything, caller).Return([]models.Conversation{}, nil)

	for _, path := range []string{"/api/messages", "/api/messages/"} {
		req, _ := http.NewRequest("GET", path, nil)
		req.Header.Set("Authorization", bearer(t, caller))
		response := executeRequest(req)

		checkResponseCode(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `{"success":true,"data":[]}`, response.Body.String())
	}
}

func TestApp_ThreadRoute(t *testing.T) {
	messages := &mocksdb.MessageDatabase{}
	newTestApp(messages)
	caller, other := primitive.NewObjectID(), primitive.NewObjectID()
	messages.On("ListMessages", mock.Anything, caller, other, 1, 50).Return([]models.PopulatedMessage{}, nil)

	req, _ := http.NewRequest("GET", "/api/messages/"+other.Hex(), nil)
	req.Header.Set("Authorization", bearer(t, caller))
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	messages.AssertExpectations(t)
}

func TestApp_SendAndMarkReadRoutes(t *testing.T) {
	messages := &mocksdb.MessageDatabase{}
	newTestApp(messages)
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
	stored := &models.PopulatedMessage{
		ID:          primitive.NewObjectID(),
		Sender:      models.UserSummary{ID: alice},
		Receiver:    models.UserSummary{ID: bob},
		Content:     "hello",
		MessageType: models.MessageTypeText,
	}
	messages.On("CreateMessage", mock.Anything, mock.Anything).Return(stored, nil)
	messages.On("MarkRead", mock.Anything, stored.ID, bob).Return(nil)

	req, _ := http.NewRequest("POST", "/api/messages", strings.NewReader(`{"receiverId":"`+bob.Hex()+`","content":"hello"}`))
	req.Header.Set("Authorization", bearer(t, alice))
	response := executeRequest(req)
	checkResponseCode(t, http.StatusCreated, response.Code)

	var created struct {
		Data models.PopulatedMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &created))
	assert.False(t, created.Data.IsRead)

	req, _ = http.NewRequest("PUT", "/api/messages/mark-read/"+created.Data.ID.Hex(), nil)
	req.Header.Set("Authorization", bearer(t, bob))
	response = executeRequest(req)
	checkResponseCode(t, http.StatusOK, response.Code)
	messages.AssertExpectations(t)
}

func TestApp_SocketRejectsMissingToken(t *testing.T) {
	newTestApp(&mocksdb.MessageDatabase{})
	req, _ := http.NewRequest("GET", "/socket", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusUnauthorized, response.Code)
	assert.Contains(t, response.Body.String(), "Authentication error: No token provided")
}

func TestApp_CloseWithoutInitialize(t *testing.T) {
	newTestApp(&mocksdb.MessageDatabase{})
	assert.NoError(t, a.Close(context.Background()))
}
