package storage

import "context"

type FileStorage interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
	Upload(ctx context.Context, data []byte, contentType string, permissions []string) (fileID string, err error)
}
