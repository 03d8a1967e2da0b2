package databases

// go generate: mockery --name ServiceRequestDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lawyerservices/lawyer-services-api/models"
)

const serviceRequestName = "servicerequests"

// ServiceRequestDatabase contains the methods to use with the service request database
type ServiceRequestDatabase interface {
	InsertOne(ctx context.Context, request models.ServiceRequest) (*models.ServiceRequest, error)
	DeleteOne(ctx context.Context, id primitive.ObjectID) error
}

type serviceRequestDatabase struct {
	db DatabaseHelper
}

// NewServiceRequestDatabase initializes a new instance of service request database with the provided db connection
func NewServiceRequestDatabase(db DatabaseHelper) ServiceRequestDatabase {
	return &serviceRequestDatabase{
		db: db,
	}
}

// InsertOne stores request with a fresh id and timestamps. Status and priority default to
// pending and medium.
func (s *serviceRequestDatabase) InsertOne(ctx context.Context, request models.ServiceRequest) (*models.ServiceRequest, error) {
	now := storeNow()
	request.ID = primitive.NewObjectID()
	request.CreatedAt = now
	request.UpdatedAt = now
	if request.Status == "" {
		request.Status = models.ServiceRequestPending
	}
	if request.Priority == "" {
		request.Priority = "medium"
	}

	if _, err := s.db.Collection(serviceRequestName).InsertOne(ctx, request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *serviceRequestDatabase) DeleteOne(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.db.Collection(serviceRequestName).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
