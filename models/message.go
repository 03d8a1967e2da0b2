package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message types
const (
	MessageTypeText                = "text"
	MessageTypeServiceRequest      = "service_request"
	MessageTypeConsultationRequest = "consultation_request"
)

// Message holds the structure for the messages collection in mongo. Only IsRead and
// ReadAt ever change after insert, and only from unread to read.
type Message struct {
	ID             primitive.ObjectID      `json:"_id" bson:"_id"`
	Sender         primitive.ObjectID      `json:"sender" bson:"sender"`
	Receiver       primitive.ObjectID      `json:"receiver" bson:"receiver"`
	Content        string                  `json:"content" bson:"content"`
	MessageType    string                  `json:"messageType" bson:"messageType"`
	IsRead         bool                    `json:"isRead" bson:"isRead"`
	ReadAt         *time.Time              `json:"readAt,omitempty" bson:"readAt,omitempty"`
	ServiceRequest *ServiceRequestSnapshot `json:"serviceRequest,omitempty" bson:"serviceRequest,omitempty"`
	CreatedAt      time.Time               `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt" bson:"updatedAt"`
}

// ServiceRequestSnapshot is a copy of the service request taken when the message was
// sent. It is never refreshed from the servicerequests collection.
type ServiceRequestSnapshot struct {
	ServiceID        primitive.ObjectID `json:"serviceId" bson:"serviceId"`
	ServiceRequestID primitive.ObjectID `json:"serviceRequestId" bson:"serviceRequestId"`
	CaseDetails      string             `json:"caseDetails" bson:"caseDetails"`
	Status           string             `json:"status" bson:"status"`
}

// PopulatedMessage is a message with sender and receiver replaced by their summaries
type PopulatedMessage struct {
	ID             primitive.ObjectID      `json:"_id" bson:"_id"`
	Sender         UserSummary             `json:"sender" bson:"sender"`
	Receiver       UserSummary             `json:"receiver" bson:"receiver"`
	Content        string                  `json:"content" bson:"content"`
	MessageType    string                  `json:"messageType" bson:"messageType"`
	IsRead         bool                    `json:"isRead" bson:"isRead"`
	ReadAt         *time.Time              `json:"readAt,omitempty" bson:"readAt,omitempty"`
	ServiceRequest *ServiceRequestSnapshot `json:"serviceRequest,omitempty" bson:"serviceRequest,omitempty"`
	CreatedAt      time.Time               `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt" bson:"updatedAt"`
}

// SendMessageRequest is the body of POST /api/messages
type SendMessageRequest struct {
	ReceiverID  string `json:"receiverId" validate:"required,mongodb"`
	Content     string `json:"content" validate:"required,min=1,max=1000"`
	MessageType string `json:"messageType,omitempty" validate:"omitempty,oneof=text service_request consultation_request"`
}

// ServiceRequestMessageRequest is the body of POST /api/messages/service-request
type ServiceRequestMessageRequest struct {
	ServiceID   string `json:"serviceId" validate:"required,mongodb"`
	CaseDetails string `json:"caseDetails" validate:"required,min=10,max=1000"`
}

// ServiceRequestMessageResponse is the data of a created service request message
type ServiceRequestMessageResponse struct {
	Message        *PopulatedMessage `json:"message"`
	ServiceRequest *ServiceRequest   `json:"serviceRequest"`
}
