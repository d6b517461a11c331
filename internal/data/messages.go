package data

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MessagesStore provides message database operations.
type MessagesStore struct {
	// coll is reference to "Message" collection in MongoDB
	coll *mongo.Collection
}

// NewMessagesStore returns a MessagesStore using given collection.
func NewMessagesStore(coll *mongo.Collection) *MessagesStore {
	return &MessagesStore{coll: coll}
}

// SaveMessage inserts a message document and returns the saved record.
// Fields arrive already normalized; the timestamp is whatever the
// service resolved (client-supplied or server clock).
func (m *MessagesStore) SaveMessage(ctx context.Context, msg, msgFrom string, msgDateTime time.Time) (*Message, error) {
	doc := &Message{
		Msg:         msg,
		MsgFrom:     msgFrom,
		MsgDateTime: msgDateTime,
	}

	result, err := m.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	// Extract MongoDB's auto-generated _id and populate in struct.
	doc.ID = result.InsertedID.(bson.ObjectID)

	return doc, nil
}

// GetMessages returns every message ordered oldest first. Equal
// timestamps fall back to _id order, which tracks insertion order for
// ids generated by this process.
func (m *MessagesStore) GetMessages(ctx context.Context) ([]*Message, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "msg_date_time", Value: 1},
			{Key: "_id", Value: 1},
		})

	cursor, err := m.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}
