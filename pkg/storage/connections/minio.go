package storageconnections

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioBlockStorageConnectionConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Location  string
	UseSSL    bool
}

type MinioBlockStorageConnection struct {
	config MinioBlockStorageConnectionConfig
	client *minio.Client
}

var _ BlockStorageConnection = (*MinioBlockStorageConnection)(nil)

func NewMinioBlockStorageConnection(config MinioBlockStorageConnectionConfig) (*MinioBlockStorageConnection, error) {
	client, err := minio.New(minioHost(config.Endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
		Region: config.Location,
	})
	if err != nil {
		return nil, err
	}

	return &MinioBlockStorageConnection{config, client}, nil
}

func (c *MinioBlockStorageConnection) GetObject(ctx context.Context, bucketID, objectID string) ([]byte, error) {
	object, err := c.client.GetObject(ctx, bucketID, objectID, minio.GetObjectOptions{})
	if err != nil {
		return nil, convertMinioError(err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, convertMinioError(err)
	}

	return data, nil
}

func (c *MinioBlockStorageConnection) PutObject(
	ctx context.Context,
	bucketID, objectID string,
	data []byte,
	contentType string,
	permissions []string,
) (string, error) {
	options := minio.PutObjectOptions{ContentType: contentType}
	if hasPermission(permissions, PermissionPublicRead) {
		options.UserMetadata = map[string]string{"x-amz-acl": "public-read"}
	}

	info, err := c.client.PutObject(ctx, bucketID, objectID, bytes.NewReader(data), int64(len(data)), options)
	if err != nil {
		return "", err
	}

	return info.Key, nil
}

func convertMinioError(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrObjectNotFound
	}

	return err
}

// minioHost strips scheme and path, minio.New only accepts host[:port].
func minioHost(endpoint string) string {
	if !strings.Contains(endpoint, "://") {
		return strings.TrimRight(endpoint, "/")
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}

	return parsed.Host
}

func hasPermission(permissions []string, permission string) bool {
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
