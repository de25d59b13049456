package records

import "context"

type InvocationsRepository interface {
	Create(ctx context.Context, record InvocationRecord) error
	Get(ctx context.Context, invocationID string) (InvocationRecord, error)
}
