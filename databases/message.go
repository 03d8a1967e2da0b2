package databases

// go generate: mockery --name MessageDatabase

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lawyerservices/lawyer-services-api/models"
)

const messageName = "messages"

// MessageDatabase contains the methods to use with the message database
type MessageDatabase interface {
	ListConversations(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error)
	ListMessages(ctx context.Context, userID, otherID primitive.ObjectID, page, limit int) ([]models.PopulatedMessage, error)
	CreateMessage(ctx context.Context, msg models.Message) (*models.PopulatedMessage, error)
	MarkRead(ctx context.Context, messageID, readerID primitive.ObjectID) error
	UnreadDigest(ctx context.Context, from, to time.Time) ([]models.UnreadDigest, error)
}

type messageDatabase struct {
	db  DatabaseHelper
	now func() time.Time
}

// NewMessageDatabase initializes a new instance of message database with the provided db connection
func NewMessageDatabase(db DatabaseHelper) MessageDatabase {
	return &messageDatabase{
		db:  db,
		now: storeNow,
	}
}

// ListConversations returns one entry per counterpart of userID with the latest message
// exchanged and the number of unread messages userID received from that counterpart,
// newest conversation first. Messages sharing a createdAt are ordered by _id.
func (m *messageDatabase) ListConversations(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	cursor, err := m.db.Collection(messageName).Aggregate(ctx, conversationsPipeline(userID))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	conversations := []models.Conversation{}
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// ListMessages marks everything otherID sent to userID as read, then returns one page of
// the thread between the two in chronological order. Pages count back from the newest
// message.
func (m *messageDatabase) ListMessages(ctx context.Context, userID, otherID primitive.ObjectID, page, limit int) ([]models.PopulatedMessage, error) {
	now := m.now()
	_, err := m.db.Collection(messageName).UpdateMany(ctx,
		bson.M{"sender": otherID, "receiver": userID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "readAt": now, "updatedAt": now}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark thread read: %w", err)
	}

	p := newMongoPaginate(limit, page)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: threadFilter(userID, otherID)}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$skip", Value: p.skip()}},
		{{Key: "$limit", Value: p.limit}},
	}
	pipeline = append(pipeline, populateStages()...)

	cursor, err := m.db.Collection(messageName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []models.PopulatedMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// CreateMessage stores msg as a new unread message and returns it populated
func (m *messageDatabase) CreateMessage(ctx context.Context, msg models.Message) (*models.PopulatedMessage, error) {
	now := m.now()
	msg.ID = primitive.NewObjectID()
	msg.IsRead = false
	msg.ReadAt = nil
	msg.CreatedAt = now
	msg.UpdatedAt = now
	if msg.MessageType == "" {
		msg.MessageType = models.MessageTypeText
	}

	if _, err := m.db.Collection(messageName).InsertOne(ctx, msg); err != nil {
		return nil, err
	}
	return m.findPopulated(ctx, msg.ID)
}

// MarkRead flips a message addressed to readerID to read. Marking an already read
// message succeeds without touching readAt. mongo.ErrNoDocuments is returned when no
// message with that id was sent to readerID.
func (m *messageDatabase) MarkRead(ctx context.Context, messageID, readerID primitive.ObjectID) error {
	msg := models.Message{}
	err := m.db.Collection(messageName).FindOne(ctx, bson.M{"_id": messageID, "receiver": readerID}).Decode(&msg)
	if err != nil {
		return err
	}
	if msg.IsRead {
		return nil
	}

	now := m.now()
	_, err = m.db.Collection(messageName).UpdateOne(ctx,
		bson.M{"_id": messageID, "receiver": readerID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "readAt": now, "updatedAt": now}},
	)
	return err
}

// UnreadDigest groups the messages created in [from, to) that are still unread by receiver
func (m *messageDatabase) UnreadDigest(ctx context.Context, from, to time.Time) ([]models.UnreadDigest, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"isRead":    false,
			"createdAt": bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$receiver",
			"unreadCount": bson.M{"$sum": 1},
			"senders":     bson.M{"$addToSet": "$sender"},
			"latest":      bson.M{"$last": "$content"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := m.db.Collection(messageName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var digests []models.UnreadDigest
	if err := cursor.All(ctx, &digests); err != nil {
		return nil, err
	}
	return digests, nil
}

func (m *messageDatabase) findPopulated(ctx context.Context, id primitive.ObjectID) (*models.PopulatedMessage, error) {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.M{"_id": id}}}}
	pipeline = append(pipeline, populateStages()...)

	cursor, err := m.db.Collection(messageName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.PopulatedMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &messages[0], nil
}

func threadFilter(userID, otherID primitive.ObjectID) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"sender": userID, "receiver": otherID},
		bson.M{"sender": otherID, "receiver": userID},
	}}
}

func conversationsPipeline(userID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"sender": userID},
			bson.M{"receiver": userID},
		}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$addFields", Value: bson.M{
			"otherUser": bson.M{"$cond": bson.M{
				"if":   bson.M{"$eq": bson.A{"$sender", userID}},
				"then": "$receiver",
				"else": "$sender",
			}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$otherUser",
			"lastMessage": bson.M{"$last": "$$ROOT"},
			"unreadCount": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$receiver", userID}},
					bson.M{"$eq": bson.A{"$isRead", false}},
				}},
				1,
				0,
			}}},
		}}},
		userLookup("_id", "user"),
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$sort", Value: bson.D{{Key: "lastMessage.createdAt", Value: -1}, {Key: "lastMessage._id", Value: -1}}}},
	}
}

// populateStages replaces the sender and receiver ids with {_id, name, avatar}
func populateStages() mongo.Pipeline {
	return mongo.Pipeline{
		userLookup("sender", "sender"),
		{{Key: "$unwind", Value: bson.M{"path": "$sender", "preserveNullAndEmptyArrays": true}}},
		userLookup("receiver", "receiver"),
		{{Key: "$unwind", Value: bson.M{"path": "$receiver", "preserveNullAndEmptyArrays": true}}},
	}
}

func userLookup(localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from": userName,
		"let":  bson.M{"uid": "$" + localField},
		"pipeline": bson.A{
			bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$uid"}}}},
			bson.M{"$project": bson.M{"name": 1, "avatar": 1}},
		},
		"as": as,
	}}}
}
