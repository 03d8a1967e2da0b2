package databases

// go generate: mockery --name ServiceDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lawyerservices/lawyer-services-api/models"
)

const serviceName = "services"

// ServiceDatabase contains the methods to use with the service database. Services are
// owned by the lawyer listing api and only read here.
type ServiceDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Service, error)
}

type serviceDatabase struct {
	db DatabaseHelper
}

// NewServiceDatabase initializes a new instance of service database with the provided db connection
func NewServiceDatabase(db DatabaseHelper) ServiceDatabase {
	return &serviceDatabase{
		db: db,
	}
}

func (s *serviceDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Service, error) {
	service := &models.Service{}
	err := s.db.Collection(serviceName).FindOne(ctx, filter, opts...).Decode(&service)
	if err != nil {
		return nil, err
	}
	return service, nil
}
