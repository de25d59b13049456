package storageconnections

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RecordsDBConfig struct {
	ConnectionString string
	Database         string
}

type RecordsDBProductionConnection struct {
	config RecordsDBConfig
	client *mongo.Client
}

var _ RecordsDBConnection = (*RecordsDBProductionConnection)(nil)

func NewRecordsDBProductionConnection(ctx context.Context, config RecordsDBConfig) (RecordsDBConnection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))
	if err != nil {
		return nil, err
	}

	return &RecordsDBProductionConnection{
		config: config,
		client: client,
	}, nil
}

func (c *RecordsDBProductionConnection) Collection(collectionName string) *mongo.Collection {
	return c.client.Database(c.config.Database).Collection(collectionName)
}

func (c *RecordsDBProductionConnection) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
