package databases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lawyerservices/lawyer-services-api/databases"
	"github.com/lawyerservices/lawyer-services-api/databases/mocks"
)

func TestSchedulerLockDatabase_TryAcquireLock(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("UpdateOne", context.Background(),
		mock.MatchedBy(func(f bson.M) bool { return f["_id"] == "unread-digest" }),
		mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil)
	dbHelper.On("Collection", "schedulerlocks").Return(collectionHelper)

	ok, err := databases.NewSchedulerLockDatabase(dbHelper).TryAcquireLock(context.Background(), "unread-digest", "host-1", time.Minute)

	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestSchedulerLockDatabase_TryAcquireLockHeldElsewhere(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
	collectionHelper.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, dup)
	dbHelper.On("Collection", "schedulerlocks").Return(collectionHelper)

	ok, err := databases.NewSchedulerLockDatabase(dbHelper).TryAcquireLock(context.Background(), "unread-digest", "host-2", time.Minute)

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSchedulerLockDatabase_TryAcquireLockError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	dbHelper.On("Collection", "schedulerlocks").Return(collectionHelper)

	ok, err := databases.NewSchedulerLockDatabase(dbHelper).TryAcquireLock(context.Background(), "unread-digest", "host-2", time.Minute)

	assert.EqualError(t, err, "mocked-error")
	assert.False(t, ok)
}

func TestSchedulerLockDatabase_ReleaseLock(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("DeleteOne", context.Background(), bson.M{"_id": "unread-digest", "owner": "host-1"}).Return(int64(1), nil)
	dbHelper.On("Collection", "schedulerlocks").Return(collectionHelper)

	err := databases.NewSchedulerLockDatabase(dbHelper).ReleaseLock(context.Background(), "unread-digest", "host-1")

	assert.NoError(t, err)
	collectionHelper.AssertExpectations(t)
}
