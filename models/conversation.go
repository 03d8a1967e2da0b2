package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Conversation is computed per request from the messages collection, it is never stored
type Conversation struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	User        UserSummary        `json:"user" bson:"user"`
	LastMessage Message            `json:"lastMessage" bson:"lastMessage"`
	UnreadCount int                `json:"unreadCount" bson:"unreadCount"`
}

// UnreadDigest groups the unread messages one user received during a digest window
type UnreadDigest struct {
	Receiver    primitive.ObjectID   `bson:"_id"`
	UnreadCount int                  `bson:"unreadCount"`
	Senders     []primitive.ObjectID `bson:"senders"`
	Latest      string               `bson:"latest"`
}
