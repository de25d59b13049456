package storageconnections

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

type BlockStorageConnection interface {
	GetObject(ctx context.Context, bucketID, objectID string) ([]byte, error)
	PutObject(ctx context.Context, bucketID, objectID string, data []byte, contentType string, permissions []string) (storedID string, err error)
}

type RecordsDBConnection interface {
	Collection(collectionName string) *mongo.Collection
	Close(ctx context.Context) error
}

// PermissionPublicRead grants read access to anyone, written the way the
// Appwrite API expects it. Other drivers translate it to their own ACLs.
const PermissionPublicRead = `read("any")`

var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrResponseStatusNotOK = errors.New("storage responded with non-2xx status code")
)
