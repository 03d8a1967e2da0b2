package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service request statuses
const (
	ServiceRequestPending    = "pending"
	ServiceRequestAccepted   = "accepted"
	ServiceRequestRejected   = "rejected"
	ServiceRequestInProgress = "in_progress"
	ServiceRequestCompleted  = "completed"
	ServiceRequestCancelled  = "cancelled"
)

// ServiceRequest holds the structure for the servicerequests collection in mongo
type ServiceRequest struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	User        primitive.ObjectID `json:"user" bson:"user"`
	Lawyer      primitive.ObjectID `json:"lawyer" bson:"lawyer"`
	Service     primitive.ObjectID `json:"service" bson:"service"`
	CaseDetails string             `json:"caseDetails" bson:"caseDetails"`
	Status      string             `json:"status" bson:"status"`     // pending, accepted, rejected, in_progress, completed, cancelled
	Priority    string             `json:"priority" bson:"priority"` // low, medium, high, urgent
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Service holds the fields of the services collection this api reads
type Service struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Title    string             `json:"title" bson:"title"`
	Category string             `json:"category" bson:"category"`
	Lawyer   primitive.ObjectID `json:"lawyer" bson:"lawyer"`
	IsActive bool               `json:"isActive" bson:"isActive"`
}
