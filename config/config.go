package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lawyerservices/lawyer-services-api/models"
)

const (
	defaultDigestSchedule = "0 * * * *"
	defaultDigestWindow   = time.Hour
	defaultMailFrom       = "no-reply@lawyerservices.com"
)

// Config holds the project config values
type Config struct {
	URL            string
	DatabaseName   string
	BaseURL        string
	Port           string
	Env            string
	JWTSecret      string
	AllowedOrigins []string
	RedisURL       string
	SendGridAPIKey string
	MailFrom       string
	DigestSchedule string
	DigestWindow   time.Duration
}

// New sets up all config related services
func New() *Config {
	// a missing .env is fine, the environment wins either way
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	conf := &Config{
		URL:            os.Getenv("DB_URI"),
		DatabaseName:   os.Getenv("DB_NAME"),
		BaseURL:        os.Getenv("BASE_URL"),
		Port:           os.Getenv("PORT"),
		Env:            env,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		RedisURL:       os.Getenv("REDIS_URL"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       os.Getenv("MAIL_FROM"),
		DigestSchedule: os.Getenv("DIGEST_SCHEDULE"),
		DigestWindow:   defaultDigestWindow,
	}

	if conf.Port == "" {
		conf.Port = "3000"
	}
	if conf.DatabaseName == "" {
		conf.DatabaseName = "lawyer-services"
	}
	if conf.MailFrom == "" {
		conf.MailFrom = defaultMailFrom
	}
	if conf.DigestSchedule == "" {
		conf.DigestSchedule = defaultDigestSchedule
	}
	if w, err := time.ParseDuration(os.Getenv("DIGEST_WINDOW")); err == nil && w > 0 {
		conf.DigestWindow = w
	}
	if conf.JWTSecret == "" {
		zap.S().Warn("JWT_SECRET is not set, every authenticated request will be rejected")
	}

	return conf
}

func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "local":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		return cfg.Build()
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		return cfg.Build()
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	resp := models.ErrorResponse{Success: false, Message: message}
	if err != nil {
		zap.S().With("error", err).Error(message)
		resp.Error = err.Error()
	} else {
		zap.S().Debugw(message, "status", httpStatusCode)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_ = json.NewEncoder(w).Encode(resp)
}
