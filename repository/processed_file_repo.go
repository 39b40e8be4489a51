package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/coursehub/ai-service/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ProcessedFileRepo interface {
	GetByURLHash(ctx context.Context, urlHash string) (*types.ProcessedFile, error)
	Upsert(ctx context.Context, marker *types.ProcessedFile) error
	DeleteByURLHash(ctx context.Context, urlHash string) error
	DeleteByFileID(ctx context.Context, fileID string) error
}

type processedFileRepo struct {
	collection *mongo.Collection
}

func NewProcessedFileRepo(db *mongo.Database) ProcessedFileRepo {
	collection := db.Collection("processed_files")
	// The unique index is what makes "at most one marker per content hash" hold
	// under at-least-once event delivery.
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "url_hash", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(context.Background(), indexes); err != nil {
		log.Printf("Error creating processed_files indexes: %v", err)
	}
	return &processedFileRepo{collection: collection}
}

func (r *processedFileRepo) GetByURLHash(ctx context.Context, urlHash string) (*types.ProcessedFile, error) {
	var marker types.ProcessedFile
	err := r.collection.FindOne(ctx, bson.M{"url_hash": urlHash}).Decode(&marker)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: processed marker %s", types.ErrNotFound, urlHash)
	}
	if err != nil {
		return nil, err
	}
	return &marker, nil
}

func (r *processedFileRepo) Upsert(ctx context.Context, marker *types.ProcessedFile) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"url_hash": marker.URLHash},
		bson.M{"$set": marker},
		options.UpdateOne().SetUpsert(true))
	return err
}

func (r *processedFileRepo) DeleteByURLHash(ctx context.Context, urlHash string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"url_hash": urlHash})
	return err
}

func (r *processedFileRepo) DeleteByFileID(ctx context.Context, fileID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"file_id": fileID})
	return err
}
