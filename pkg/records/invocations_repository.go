package records

import (
	"context"
	"errors"
	"time"

	storageconnections "github.com/thebartekbanach/woundfn/pkg/storage/connections"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const invocationsCollection = "invocations"

type InvocationRecord struct {
	InvocationID string `json:"invocationId" bson:"invocationId"`
	Source       string `json:"source" bson:"source"`
	FileID       string `json:"fileId,omitempty" bson:"fileId,omitempty"`
	FileName     string `json:"fileName,omitempty" bson:"fileName,omitempty"`

	EntryPoint  string `json:"entryPoint,omitempty" bson:"entryPoint,omitempty"`
	Passthrough bool   `json:"passthrough" bson:"passthrough"`

	Success          bool   `json:"success" bson:"success"`
	Status           int    `json:"status" bson:"status"`
	Message          string `json:"message" bson:"message"`
	ProcessedImageID string `json:"processedImageId,omitempty" bson:"processedImageId,omitempty"`

	StartedAt  time.Time `json:"startedAt" bson:"startedAt"`
	FinishedAt time.Time `json:"finishedAt" bson:"finishedAt"`
}

type invocationsRepository struct {
	conn storageconnections.RecordsDBConnection
}

var _ InvocationsRepository = (*invocationsRepository)(nil)

func NewInvocationsRepository(conn storageconnections.RecordsDBConnection) InvocationsRepository {
	return &invocationsRepository{conn}
}

func (repo *invocationsRepository) Create(ctx context.Context, record InvocationRecord) error {
	if record.InvocationID == "" {
		return ErrEmptyInvocationID
	}

	collection := repo.conn.Collection(invocationsCollection)

	result := collection.FindOne(ctx, bson.M{"invocationId": record.InvocationID})
	if result.Err() != mongo.ErrNoDocuments {
		if result.Err() != nil {
			return result.Err()
		}
		return ErrRecordAlreadyExists
	}

	_, err := collection.InsertOne(ctx, record)
	return err
}

func (repo *invocationsRepository) Get(ctx context.Context, invocationID string) (InvocationRecord, error) {
	collection := repo.conn.Collection(invocationsCollection)

	var record InvocationRecord
	if err := collection.FindOne(ctx, bson.M{"invocationId": invocationID}).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return InvocationRecord{}, ErrRecordNotFound
		}

		return InvocationRecord{}, err
	}

	return record, nil
}

// nopInvocationsRepository is used when no records database is configured.
type nopInvocationsRepository struct{}

var _ InvocationsRepository = (*nopInvocationsRepository)(nil)

func NewNopInvocationsRepository() InvocationsRepository {
	return &nopInvocationsRepository{}
}

func (nopInvocationsRepository) Create(ctx context.Context, record InvocationRecord) error {
	return nil
}

func (nopInvocationsRepository) Get(ctx context.Context, invocationID string) (InvocationRecord, error) {
	return InvocationRecord{}, ErrRecordNotFound
}

var (
	ErrRecordNotFound      = errors.New("invocation record not found")
	ErrRecordAlreadyExists = errors.New("invocation record already exists")
	ErrEmptyInvocationID   = errors.New("invocation id is empty")
)
