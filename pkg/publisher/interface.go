package publisher

import (
	"context"
	"image"
)

type Publisher interface {
	Publish(ctx context.Context, img image.Image) (fileID string, err error)
}
