package storageconnections

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

type MinioBlockStorageTestingConnection struct {
	*MinioBlockStorageConnection
	Bucket string
}

// NewMinioBlockStorageTestingConnection connects to the integration MinIO
// server and creates a random bucket that is removed on test cleanup.
func NewMinioBlockStorageTestingConnection(t *testing.T) *MinioBlockStorageTestingConnection {
	conn, err := NewMinioBlockStorageConnection(MinioBlockStorageConnectionConfig{
		Endpoint:  getEnvOrDefault("WOUNDFN_TEST_MINIO_ENDPOINT", testingServerEndpoint),
		AccessKey: getEnvOrDefault("WOUNDFN_TEST_MINIO_ACCESS_KEY", testingServerAccessKey),
		SecretKey: getEnvOrDefault("WOUNDFN_TEST_MINIO_SECRET_KEY", testingServerSecretKey),
		Location:  "us-east-1",
		UseSSL:    false,
	})
	if err != nil {
		t.Fatalf("Error when connecting to minio block storage: %s", err)
	}

	bucket := uuid.New().String() + "-testing-bucket"
	ctx := context.Background()
	if err := conn.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: "us-east-1"}); err != nil {
		t.Fatalf("Error when creating test bucket: %s", err)
	}

	testingConn := &MinioBlockStorageTestingConnection{conn, bucket}
	t.Cleanup(testingConn.dropTestBucket)

	return testingConn
}

func (c *MinioBlockStorageTestingConnection) dropTestBucket() {
	ctx := context.Background()
	for object := range c.client.ListObjects(ctx, c.Bucket, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			continue
		}
		c.client.RemoveObject(ctx, c.Bucket, object.Key, minio.RemoveObjectOptions{})
	}

	c.client.RemoveBucket(ctx, c.Bucket)
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

const testingServerEndpoint = "IntegrationTests.Woundfn.Minio:9000"
const testingServerAccessKey = "minio"
const testingServerSecretKey = "minio123"
