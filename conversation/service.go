// Package conversation orchestrates the message store for the http and socket transports.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lawyerservices/lawyer-services-api/databases"
	"github.com/lawyerservices/lawyer-services-api/mailer"
	"github.com/lawyerservices/lawyer-services-api/models"
	templates "github.com/lawyerservices/lawyer-services-api/templates/html"
)

// Defaults for thread paging
const (
	DefaultPage  = 1
	DefaultLimit = 50
)

const (
	maxContentLength     = 1000
	minCaseDetailsLength = 10
	maxCaseDetailsLength = 1000
	mailTimeout          = 30 * time.Second
)

// Service implements the messaging use cases on top of the databases package
type Service struct {
	Messages databases.MessageDatabase
	Services databases.ServiceDatabase
	Requests databases.ServiceRequestDatabase
	Users    databases.UserDatabase
	// Mailer is optional, a nil Mailer disables e-mail notices
	Mailer  mailer.Mailer
	BaseURL string

	mail sync.WaitGroup
}

// NewService wires a Service to the collections in db
func NewService(db databases.DatabaseHelper, m mailer.Mailer, baseURL string) *Service {
	return &Service{
		Messages: databases.NewMessageDatabase(db),
		Services: databases.NewServiceDatabase(db),
		Requests: databases.NewServiceRequestDatabase(db),
		Users:    databases.NewUserDatabase(db),
		Mailer:   m,
		BaseURL:  baseURL,
	}
}

// Conversations lists every counterpart userID has exchanged messages with
func (s *Service) Conversations(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	conversations, err := s.Messages.ListConversations(ctx, userID)
	if err != nil {
		return nil, storeError("Error retrieving conversations", "", err)
	}
	return conversations, nil
}

// Thread returns one page of the messages between userID and otherID, oldest first, after
// marking what otherID sent to userID as read. Non positive page or limit fall back to the
// defaults.
func (s *Service) Thread(ctx context.Context, userID, otherID primitive.ObjectID, page, limit int) ([]models.PopulatedMessage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	messages, err := s.Messages.ListMessages(ctx, userID, otherID, page, limit)
	if err != nil {
		return nil, storeError("Error retrieving messages", "", err)
	}
	return messages, nil
}

// Send stores a message from senderID to receiverID. content is trimmed before it is
// checked and stored, an empty messageType means text.
func (s *Service) Send(ctx context.Context, senderID, receiverID primitive.ObjectID, content, messageType string) (*models.PopulatedMessage, error) {
	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(content); n < 1 || n > maxContentLength {
		return nil, validationError("content", "Message content must be between 1 and 1000 characters")
	}
	if messageType == "" {
		messageType = models.MessageTypeText
	}
	if !validMessageType(messageType) {
		return nil, validationError("messageType", "Invalid message type")
	}

	msg, err := s.Messages.CreateMessage(ctx, models.Message{
		Sender:      senderID,
		Receiver:    receiverID,
		Content:     content,
		MessageType: messageType,
	})
	if err != nil {
		return nil, storeError("Error sending message", "", err)
	}
	return msg, nil
}

// MarkRead marks messageID read on behalf of its receiver
func (s *Service) MarkRead(ctx context.Context, messageID, userID primitive.ObjectID) error {
	if err := s.Messages.MarkRead(ctx, messageID, userID); err != nil {
		return storeError("Error marking message as read", "Message not found", err)
	}
	return nil
}

// SendServiceRequest opens a pending service request for serviceID and announces it to
// the owning lawyer with a service_request message. The request is removed again when the
// message cannot be stored.
func (s *Service) SendServiceRequest(ctx context.Context, userID, serviceID primitive.ObjectID, caseDetails string) (*models.ServiceRequestMessageResponse, error) {
	caseDetails = strings.TrimSpace(caseDetails)
	if n := utf8.RuneCountInString(caseDetails); n < minCaseDetailsLength || n > maxCaseDetailsLength {
		return nil, validationError("caseDetails", "Case details must be between 10 and 1000 characters")
	}

	service, err := s.Services.FindOne(ctx, bson.M{"_id": serviceID})
	if err != nil {
		return nil, storeError("Error sending service request", "Service not found", err)
	}

	request, err := s.Requests.InsertOne(ctx, models.ServiceRequest{
		User:        userID,
		Lawyer:      service.Lawyer,
		Service:     service.ID,
		CaseDetails: caseDetails,
		Status:      models.ServiceRequestPending,
	})
	if err != nil {
		return nil, storeError("Error sending service request", "", err)
	}

	msg, err := s.Messages.CreateMessage(ctx, models.Message{
		Sender:      userID,
		Receiver:    service.Lawyer,
		Content:     fmt.Sprintf("Service Request: %s\n\nCase Details: %s", service.Title, caseDetails),
		MessageType: models.MessageTypeServiceRequest,
		ServiceRequest: &models.ServiceRequestSnapshot{
			ServiceID:        service.ID,
			ServiceRequestID: request.ID,
			CaseDetails:      caseDetails,
			Status:           request.Status,
		},
	})
	if err != nil {
		if delErr := s.Requests.DeleteOne(context.WithoutCancel(ctx), request.ID); delErr != nil {
			zap.S().Errorw("failed to remove orphaned service request",
				"serviceRequestId", request.ID.Hex(),
				"error", delErr)
		}
		return nil, storeError("Error sending service request", "", err)
	}

	s.notifyLawyer(service, caseDetails)

	return &models.ServiceRequestMessageResponse{
		Message:        msg,
		ServiceRequest: request,
	}, nil
}

// Wait blocks until queued e-mail notices have been handed to the mailer
func (s *Service) Wait() {
	s.mail.Wait()
}

func (s *Service) notifyLawyer(service *models.Service, caseDetails string) {
	if s.Mailer == nil || s.Users == nil {
		return
	}

	s.mail.Add(1)
	go func() {
		defer s.mail.Done()
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()

		lawyer, err := s.Users.FindOne(ctx, bson.M{"_id": service.Lawyer})
		if err != nil {
			zap.S().Warnw("failed to look up lawyer for service request email",
				"lawyer", service.Lawyer.Hex(),
				"error", err)
			return
		}

		email := templates.ServiceRequestEmail{
			LawyerName:   lawyer.Name,
			ServiceTitle: service.Title,
			CaseDetails:  caseDetails,
			ActionURL:    s.messagesURL(),
		}
		to := mailer.Recipient{Name: lawyer.Name, Email: lawyer.Email}
		if err := s.Mailer.Send(ctx, to, email.Subject(), email.HTML(), email.Text()); err != nil {
			zap.S().Warnw("failed to send service request email",
				"lawyer", service.Lawyer.Hex(),
				"error", err)
		}
	}()
}

func (s *Service) messagesURL() string {
	if s.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(s.BaseURL, "/") + "/messages"
}

func validMessageType(t string) bool {
	switch t {
	case models.MessageTypeText, models.MessageTypeServiceRequest, models.MessageTypeConsultationRequest:
		return true
	}
	return false
}
