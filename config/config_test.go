package config

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lawyerservices/lawyer-services-api/models"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	os.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, http://localhost:3001,")
	os.Setenv("DIGEST_WINDOW", "30m")
	defer func() {
		os.Unsetenv("ALLOWED_ORIGINS")
		os.Unsetenv("DIGEST_WINDOW")
	}()
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, "test", conf.DatabaseName)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, conf.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, conf.DigestWindow)
	assert.Equal(t, defaultDigestSchedule, conf.DigestSchedule)
}

func TestNewDefaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("MAIL_FROM")
	os.Setenv("DIGEST_WINDOW", "not-a-duration")
	defer os.Unsetenv("DIGEST_WINDOW")

	conf := New()

	assert.Equal(t, "3000", conf.Port)
	assert.Equal(t, defaultMailFrom, conf.MailFrom)
	assert.Equal(t, defaultDigestWindow, conf.DigestWindow)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var body models.ErrorResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, models.ErrorResponse{Success: false, Message: "error it borked", Error: "bad request"}, body)
}

func TestErrorStatusWithoutError(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("Message not found", http.StatusNotFound, rr, nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"Message not found"}`, rr.Body.String())
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(1))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(2))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1))
}
