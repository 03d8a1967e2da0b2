package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/lawyerservices/lawyer-services-api/api"
	"github.com/lawyerservices/lawyer-services-api/api/scheduler"
	"github.com/lawyerservices/lawyer-services-api/auth"
	"github.com/lawyerservices/lawyer-services-api/config"
	"github.com/lawyerservices/lawyer-services-api/conversation"
	"github.com/lawyerservices/lawyer-services-api/databases"
	"github.com/lawyerservices/lawyer-services-api/mailer"
	"github.com/lawyerservices/lawyer-services-api/realtime"
)

const connectTimeout = 10 * time.Second

// App stores the router, db connection and realtime gateway, so they can be reused
type App struct {
	Router        *mux.Router
	Config        config.Config
	Conversations *conversation.Service
	Gateway       *realtime.Gateway
	Scheduler     *scheduler.Scheduler
	Mailer        mailer.Mailer
	dbHelper      databases.DatabaseHelper
	client        databases.ClientHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	verifier := auth.NewVerifier(a.Config.JWTSecret)

	// setup go-guardian for middleware
	api.SetupGoGuardian(verifier)

	if a.Conversations == nil {
		a.Conversations = conversation.NewService(a.dbHelper, a.Mailer, a.Config.BaseURL)
	}
	if a.Gateway == nil {
		a.Gateway = realtime.NewGateway(verifier, nil, a.Config.AllowedOrigins)
		// the in-process broker cannot fail to subscribe
		_ = a.Gateway.Start(context.Background())
	}

	r := api.New()
	r.Use(api.RecoverMiddleware, api.MetricsMiddleware)

	m := Message{Service: a.Conversations}

	r.Handle("/socket", a.Gateway).Methods("GET")

	apiMessages := r.PathPrefix("/api/messages").Subrouter()
	apiMessages.Handle("", api.Middleware(http.HandlerFunc(m.ConversationsHandler))).Methods("GET")
	apiMessages.Handle("/", api.Middleware(http.HandlerFunc(m.ConversationsHandler))).Methods("GET")
	apiMessages.Handle("", api.Middleware(http.HandlerFunc(m.SendMessageHandler))).Methods("POST")
	apiMessages.Handle("/", api.Middleware(http.HandlerFunc(m.SendMessageHandler))).Methods("POST")
	apiMessages.Handle("/service-request", api.Middleware(http.HandlerFunc(m.ServiceRequestHandler))).Methods("POST")
	apiMessages.Handle("/mark-read/{messageId}", api.Middleware(http.HandlerFunc(m.MarkReadHandler))).Methods("PUT")
	apiMessages.Handle("/{userId}", api.Middleware(http.HandlerFunc(m.ThreadHandler))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	zap.S().Info("LawyerServicesAPI has connected to the database")

	if m := mailer.NewSendGrid(a.Config.SendGridAPIKey, a.Config.MailFrom); m != nil {
		a.Mailer = m
	} else {
		zap.S().Warn("SENDGRID_API_KEY is not set, e-mail notices are disabled")
	}

	var broker realtime.Broker
	if a.Config.RedisURL != "" {
		rb, err := realtime.NewRedisBrokerFromURL(ctx, a.Config.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		broker = rb
		zap.S().Info("realtime deliveries are fanned out through redis")
	}

	a.Gateway = realtime.NewGateway(auth.NewVerifier(a.Config.JWTSecret), broker, a.Config.AllowedOrigins)
	if err := a.Gateway.Start(ctx); err != nil {
		return fmt.Errorf("failed to start realtime gateway: %w", err)
	}

	a.Conversations = conversation.NewService(a.dbHelper, a.Mailer, a.Config.BaseURL)
	a.Scheduler = scheduler.NewScheduler(
		a.Conversations.Messages,
		a.Conversations.Users,
		databases.NewSchedulerLockDatabase(a.dbHelper),
		a.Mailer,
		a.Config.DigestSchedule,
		a.Config.DigestWindow,
		a.Config.BaseURL,
	)

	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// Close releases the realtime gateway, waits for queued e-mails and disconnects from the
// database. It is meant to run after the http server has shut down.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Gateway != nil {
		if err := a.Gateway.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close realtime gateway: %w", err))
		}
	}
	if a.Conversations != nil {
		a.Conversations.Wait()
	}
	if a.client != nil {
		if err := a.client.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to disconnect from database: %w", err))
		}
	}
	return errors.Join(errs...)
}
