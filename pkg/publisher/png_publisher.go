package publisher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/thebartekbanach/woundfn/pkg/storage"
	storageconnections "github.com/thebartekbanach/woundfn/pkg/storage/connections"
)

const ContentTypePNG = "image/png"

type pngPublisher struct {
	fileStorage storage.FileStorage
}

var _ Publisher = (*pngPublisher)(nil)

// NewPNGPublisher stores results as publicly readable PNG files.
func NewPNGPublisher(fileStorage storage.FileStorage) Publisher {
	return &pngPublisher{fileStorage}
}

func (p *pngPublisher) Publish(ctx context.Context, img image.Image) (string, error) {
	if img == nil {
		return "", ErrNoImage
	}

	encoded := bytes.Buffer{}
	if err := png.Encode(&encoded, img); err != nil {
		return "", fmt.Errorf("cannot encode result as png: %w", err)
	}

	permissions := []string{storageconnections.PermissionPublicRead}
	fileID, err := p.fileStorage.Upload(ctx, encoded.Bytes(), ContentTypePNG, permissions)
	if err != nil {
		return "", err
	}

	return fileID, nil
}

var ErrNoImage = errors.New("no image to publish")
