package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/coursehub/ai-service/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type FileRepo interface {
	CreateFile(ctx context.Context, file *types.FileRecord) error
	GetFileByFileID(ctx context.Context, fileID string) (*types.FileRecord, error)
	GetFileByURLHash(ctx context.Context, urlHash string) (*types.FileRecord, error)
	ListFiles(ctx context.Context, userID string) ([]types.FileRecord, error)
	ListUnprocessedFiles(ctx context.Context) ([]types.FileRecord, error)
	UpdateFile(ctx context.Context, fileID string, filename, downloadURL, urlHash, contentType string, size int64) error
	MarkEmbedded(ctx context.Context, fileID string, processedDate string) error
	DeleteFile(ctx context.Context, fileID string) error
}

type fileRepo struct {
	collection *mongo.Collection
}

func NewFileRepo(db *mongo.Database) FileRepo {
	collection := db.Collection("files")
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "file_id", Value: 1}}},
		{Keys: bson.D{{Key: "url_hash", Value: 1}}},
		{Keys: bson.D{{Key: "embedding_created", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(context.Background(), indexes); err != nil {
		log.Printf("Error creating file indexes: %v", err)
	}
	return &fileRepo{collection: collection}
}

func (r *fileRepo) CreateFile(ctx context.Context, file *types.FileRecord) error {
	if file.ID == "" {
		file.ID = bson.NewObjectID().Hex()
	}
	if file.FileID == "" {
		file.FileID = file.ID
	}
	_, err := r.collection.InsertOne(ctx, file)
	return err
}

func (r *fileRepo) GetFileByFileID(ctx context.Context, fileID string) (*types.FileRecord, error) {
	var file types.FileRecord
	err := r.collection.FindOne(ctx, bson.M{"file_id": fileID}).Decode(&file)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: file %s", types.ErrNotFound, fileID)
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepo) GetFileByURLHash(ctx context.Context, urlHash string) (*types.FileRecord, error) {
	var file types.FileRecord
	err := r.collection.FindOne(ctx, bson.M{"url_hash": urlHash}).Decode(&file)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: url hash %s", types.ErrNotFound, urlHash)
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepo) ListFiles(ctx context.Context, userID string) ([]types.FileRecord, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	return r.findFiles(ctx, filter)
}

func (r *fileRepo) ListUnprocessedFiles(ctx context.Context) ([]types.FileRecord, error) {
	return r.findFiles(ctx, bson.M{"embedding_created": false})
}

func (r *fileRepo) findFiles(ctx context.Context, filter bson.M) ([]types.FileRecord, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var files []types.FileRecord
	for cursor.Next(ctx) {
		var file types.FileRecord
		if err := cursor.Decode(&file); err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, cursor.Err()
}

func (r *fileRepo) UpdateFile(ctx context.Context, fileID string, filename, downloadURL, urlHash, contentType string, size int64) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"file_id": fileID},
		bson.M{"$set": bson.M{
			"filename":     filename,
			"download_url": downloadURL,
			"url_hash":     urlHash,
			"content_type": contentType,
			"size":         size,
		}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: file %s", types.ErrNotFound, fileID)
	}
	return nil
}

func (r *fileRepo) MarkEmbedded(ctx context.Context, fileID string, processedDate string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"file_id": fileID},
		bson.M{"$set": bson.M{
			"embedding_created": true,
			"processed_date":    processedDate,
		}})
	return err
}

func (r *fileRepo) DeleteFile(ctx context.Context, fileID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"file_id": fileID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: file %s", types.ErrNotFound, fileID)
	}
	return nil
}
