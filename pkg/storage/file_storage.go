package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/thebartekbanach/woundfn/pkg/config"
	storageconnections "github.com/thebartekbanach/woundfn/pkg/storage/connections"
)

type fileStorage struct {
	conn       storageconnections.BlockStorageConnection
	bucketID   string
	generateID func() string
}

var _ FileStorage = (*fileStorage)(nil)

func NewFileStorage(conn storageconnections.BlockStorageConnection, bucketID string) FileStorage {
	return &fileStorage{conn, bucketID, uuid.NewString}
}

func (s *fileStorage) Download(ctx context.Context, fileID string) ([]byte, error) {
	if fileID == "" {
		return nil, ErrEmptyFileID
	}

	data, err := s.conn.GetObject(ctx, s.bucketID, fileID)
	if err != nil {
		if errors.Is(err, storageconnections.ErrObjectNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	return data, nil
}

func (s *fileStorage) Upload(ctx context.Context, data []byte, contentType string, permissions []string) (string, error) {
	id := s.generateID()

	storedID, err := s.conn.PutObject(ctx, s.bucketID, id, data, contentType, permissions)
	if err != nil {
		return "", fmt.Errorf("upload of %s failed: %w", id, err)
	}

	return storedID, nil
}

// NewFileStorageFromConfig connects to the configured driver and bucket.
func NewFileStorageFromConfig(cfg config.StorageConfig) (FileStorage, error) {
	conn, err := NewConnection(cfg)
	if err != nil {
		return nil, err
	}

	return NewFileStorage(conn, cfg.BucketID), nil
}

// NewConnection builds the block storage connection for the configured driver.
func NewConnection(cfg config.StorageConfig) (storageconnections.BlockStorageConnection, error) {
	switch cfg.Driver {
	case "appwrite":
		return storageconnections.NewAppwriteBlockStorageConnection(storageconnections.AppwriteBlockStorageConnectionConfig{
			Endpoint:  cfg.Endpoint,
			ProjectID: cfg.ProjectID,
			APIKey:    cfg.APIKey,
		}), nil
	case "minio":
		return storageconnections.NewMinioBlockStorageConnection(storageconnections.MinioBlockStorageConnectionConfig{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.ProjectID,
			SecretKey: cfg.APIKey,
			Location:  cfg.Location,
			UseSSL:    cfg.UseSSL,
		})
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedStorageDriver, cfg.Driver)
	}
}

var (
	ErrEmptyFileID  = errors.New("file id is empty")
	ErrFileNotFound = errors.New("file not found")
	ErrEmptyFile    = errors.New("file is empty")
)
