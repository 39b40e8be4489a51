package repository

import (
	"context"
	"log"

	"github.com/coursehub/ai-service/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ConversationRepo interface {
	CreateConversation(ctx context.Context, conv *types.Conversation) error
	ListConversations(ctx context.Context, userID string, page, limit int64) ([]types.Conversation, int64, error)
}

type conversationRepo struct {
	collection *mongo.Collection
}

func NewConversationRepo(db *mongo.Database) ConversationRepo {
	collection := db.Collection("conversations")
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	}
	if _, err := collection.Indexes().CreateMany(context.Background(), indexes); err != nil {
		log.Printf("Error creating conversation indexes: %v", err)
	}
	return &conversationRepo{collection: collection}
}

func (r *conversationRepo) CreateConversation(ctx context.Context, conv *types.Conversation) error {
	if conv.ID == "" {
		conv.ID = bson.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, conv)
	return err
}

func (r *conversationRepo) ListConversations(ctx context.Context, userID string, page, limit int64) ([]types.Conversation, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	filter := bson.M{"user_id": userID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip((page-1)*limit).
		SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var conversations []types.Conversation
	for cursor.Next(ctx) {
		var conv types.Conversation
		if err := cursor.Decode(&conv); err != nil {
			return nil, 0, err
		}
		conversations = append(conversations, conv)
	}
	return conversations, total, cursor.Err()
}
