package scheduler

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lawyerservices/lawyer-services-api/databases"
	"github.com/lawyerservices/lawyer-services-api/mailer"
	templates "github.com/lawyerservices/lawyer-services-api/templates/html"
)

const (
	unreadDigestLock = "unread_digest_job"
	lockTTL          = 10 * time.Minute
	jobTimeout       = 5 * time.Minute
)

// Scheduler handles periodic background jobs for the messaging api
type Scheduler struct {
	cron      *cron.Cron
	MessageDB databases.MessageDatabase
	UserDB    databases.UserDatabase
	LockDB    databases.SchedulerLockDatabase
	Mailer    mailer.Mailer

	Schedule string
	Window   time.Duration
	BaseURL  string

	instanceID string
	now        func() time.Time
}

// NewScheduler creates a new scheduler instance. schedule is a five field cron expression
// evaluated in UTC, window is how far back each digest run looks.
func NewScheduler(
	messageDB databases.MessageDatabase,
	userDB databases.UserDatabase,
	lockDB databases.SchedulerLockDatabase,
	m mailer.Mailer,
	schedule string,
	window time.Duration,
	baseURL string,
) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = "instance-" + uuid.NewString()
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		MessageDB:  messageDB,
		UserDB:     userDB,
		LockDB:     lockDB,
		Mailer:     m,
		Schedule:   schedule,
		Window:     window,
		BaseURL:    baseURL,
		instanceID: instanceID,
		now:        time.Now,
	}
}

// Start registers the jobs and starts the cron loop. Without a mailer there is nothing
// to do and the scheduler stays idle.
func (s *Scheduler) Start() error {
	if s.Mailer == nil {
		zap.S().Info("no mailer configured, unread digest job disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.Schedule, s.sendUnreadDigests); err != nil {
		return fmt.Errorf("failed to register unread digest job: %w", err)
	}

	s.cron.Start()
	zap.S().Infow("Messaging scheduler started", "schedule", s.Schedule, "window", s.Window)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Messaging scheduler stopped")
}

func (s *Scheduler) sendUnreadDigests() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	sent, err := s.RunUnreadDigest(ctx)
	if err != nil {
		zap.S().Errorw("unread digest job failed", "error", err)
		return
	}
	zap.S().Infow("unread digest job finished", "sent", sent, "instance", s.instanceID)
}

// RunUnreadDigest e-mails every user with messages received during the last window that
// are still unread. Only one instance runs it at a time, the others return 0 and no error.
func (s *Scheduler) RunUnreadDigest(ctx context.Context) (int, error) {
	acquired, err := s.LockDB.TryAcquireLock(ctx, unreadDigestLock, s.instanceID, lockTTL)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		zap.S().Debug("Unread digest job already running on another instance, skipping")
		return 0, nil
	}
	defer func() {
		if err := s.LockDB.ReleaseLock(context.WithoutCancel(ctx), unreadDigestLock, s.instanceID); err != nil {
			zap.S().Warnw("failed to release unread digest lock", "error", err)
		}
	}()

	to := s.now().UTC().Truncate(time.Minute)
	from := to.Add(-s.Window)

	digests, err := s.MessageDB.UnreadDigest(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate unread messages: %w", err)
	}
	if len(digests) == 0 {
		return 0, nil
	}

	ids := make([]primitive.ObjectID, 0, len(digests))
	for _, d := range digests {
		ids = append(ids, d.Receiver)
	}
	users, err := s.UserDB.FindByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to load digest recipients: %w", err)
	}
	emails := make(map[primitive.ObjectID]mailer.Recipient, len(users))
	for _, u := range users {
		emails[u.ID] = mailer.Recipient{Name: u.Name, Email: u.Email}
	}

	sent := 0
	for _, d := range digests {
		rcpt, ok := emails[d.Receiver]
		if !ok || rcpt.Email == "" {
			zap.S().Debugw("skipping digest for user without email", "userId", d.Receiver.Hex())
			continue
		}

		email := templates.UnreadDigestEmail{
			Name:        rcpt.Name,
			UnreadCount: d.UnreadCount,
			SenderCount: len(d.Senders),
			Latest:      d.Latest,
			ActionURL:   s.messagesURL(),
		}
		if err := s.Mailer.Send(ctx, rcpt, email.Subject(), email.HTML(), email.Text()); err != nil {
			zap.S().Warnw("failed to send unread digest", "userId", d.Receiver.Hex(), "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *Scheduler) messagesURL() string {
	if s.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(s.BaseURL, "/") + "/messages"
}
