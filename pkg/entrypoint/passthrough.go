package entrypoint

import (
	"context"
	"image"

	"go.uber.org/zap"
)

// Passthrough returns its input unchanged. It stands in when the external
// code exposes no usable entry point.
type Passthrough struct {
	logger *zap.Logger
}

var _ Processor = (*Passthrough)(nil)

func NewPassthrough(logger *zap.Logger) *Passthrough {
	return &Passthrough{logger}
}

func (p *Passthrough) Process(ctx context.Context, img image.Image, metadata Metadata) (image.Image, error) {
	p.logger.Info("no entry point found, returning image unchanged")
	return img, nil
}
