package storageconnections

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/appwrite/sdk-for-go/appwrite"
	"github.com/appwrite/sdk-for-go/client"
	"github.com/appwrite/sdk-for-go/file"
	"github.com/appwrite/sdk-for-go/models"
	"github.com/appwrite/sdk-for-go/storage"
)

// appwriteFiles is the part of the Appwrite storage service this connection uses.
type appwriteFiles interface {
	GetFileDownload(bucketID string, fileID string, optionalSetters ...storage.GetFileDownloadOption) (*[]byte, error)
	CreateFile(bucketID string, fileID string, inputFile file.InputFile, optionalSetters ...storage.CreateFileOption) (*models.File, error)
	WithCreateFilePermissions(permissions []string) storage.CreateFileOption
}

type AppwriteBlockStorageConnectionConfig struct {
	Endpoint  string
	ProjectID string
	APIKey    string
}

type AppwriteBlockStorageConnection struct {
	files appwriteFiles
}

var _ BlockStorageConnection = (*AppwriteBlockStorageConnection)(nil)
var _ appwriteFiles = (*storage.Storage)(nil)

func NewAppwriteBlockStorageConnection(config AppwriteBlockStorageConnectionConfig) *AppwriteBlockStorageConnection {
	clt := appwrite.NewClient(
		appwrite.WithEndpoint(strings.TrimRight(config.Endpoint, "/")),
		appwrite.WithProject(config.ProjectID),
		appwrite.WithKey(config.APIKey),
	)

	return &AppwriteBlockStorageConnection{appwrite.NewStorage(clt)}
}

func (c *AppwriteBlockStorageConnection) GetObject(ctx context.Context, bucketID, objectID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := c.files.GetFileDownload(bucketID, objectID)
	if err != nil {
		return nil, mapAppwriteError(err)
	}

	if data == nil {
		return []byte{}, nil
	}

	return *data, nil
}

func (c *AppwriteBlockStorageConnection) PutObject(
	ctx context.Context,
	bucketID, objectID string,
	data []byte,
	contentType string,
	permissions []string,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// the SDK uploads from a path, so the payload is staged on disk
	staged, err := stageUpload(data)
	if err != nil {
		return "", err
	}
	defer os.Remove(staged)

	var options []storage.CreateFileOption
	if len(permissions) > 0 {
		options = append(options, c.files.WithCreateFilePermissions(permissions))
	}

	inputFile := file.NewInputFile(staged, objectID+extensionFor(contentType))
	created, err := c.files.CreateFile(bucketID, objectID, inputFile, options...)
	if err != nil {
		return "", mapAppwriteError(err)
	}

	if created == nil || created.Id == "" {
		return objectID, nil
	}

	return created.Id, nil
}

func stageUpload(data []byte) (string, error) {
	staged, err := os.CreateTemp("", "woundfn-upload-*")
	if err != nil {
		return "", fmt.Errorf("cannot stage upload: %w", err)
	}

	if _, err := staged.Write(data); err != nil {
		staged.Close()
		os.Remove(staged.Name())
		return "", fmt.Errorf("cannot stage upload: %w", err)
	}

	if err := staged.Close(); err != nil {
		os.Remove(staged.Name())
		return "", fmt.Errorf("cannot stage upload: %w", err)
	}

	return staged.Name(), nil
}

func mapAppwriteError(err error) error {
	var appwriteErr *client.AppwriteError
	if !errors.As(err, &appwriteErr) {
		return err
	}

	if appwriteErr.GetStatusCode() == 404 {
		return ErrObjectNotFound
	}

	return fmt.Errorf("%w: %d %s", ErrResponseStatusNotOK, appwriteErr.GetStatusCode(), strings.TrimSpace(appwriteErr.GetMessage()))
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	default:
		return ""
	}
}
