package storageconnections

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RecordsDBTestingConnection struct {
	testDBName string
	client     *mongo.Client
}

var _ RecordsDBConnection = (*RecordsDBTestingConnection)(nil)

func NewRecordsDBTestingConnection(t *testing.T) *RecordsDBTestingConnection {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(os.Getenv("WOUNDFN_TEST_MONGO_CONNECTION_STRING")))
	if err != nil {
		t.Fatalf("Cannot connect to mongodb: %s", err)
	}

	conn := &RecordsDBTestingConnection{generateTestDBName(t, client), client}
	t.Cleanup(conn.cleanup)

	return conn
}

func (c *RecordsDBTestingConnection) Collection(name string) *mongo.Collection {
	return c.client.Database(c.testDBName).Collection(name)
}

func (c *RecordsDBTestingConnection) Close(ctx context.Context) error {
	return nil
}

func (c *RecordsDBTestingConnection) cleanup() {
	ctx := context.Background()
	c.client.Database(c.testDBName).Drop(ctx)
	c.client.Disconnect(ctx)
}

func generateTestDBName(t *testing.T, client *mongo.Client) string {
	databases, err := client.ListDatabaseNames(context.Background(), bson.M{})
	if err != nil {
		t.Fatalf("Cannot fetch database names list: %s", err)
	}

	for i := 0; i < 10; i++ {
		id := uuid.New().String()
		if !contains(databases, id) {
			return id
		}
	}

	t.Fatalf("Cannot generate unique test DB name")
	return ""
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}

	return false
}
