package input

import (
	"context"
	"errors"
	"fmt"
	"image"
)

type Downloader interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// Resolve turns a normalized request into an in-memory image. Returned
// errors wrap ErrFetchFailed or ErrDecodeFailed.
func Resolve(ctx context.Context, request Request, downloader Downloader) (image.Image, string, error) {
	var data []byte

	switch request.Kind() {
	case KindInline:
		decoded, err := DecodeBase64(request.ImageData)
		if err != nil {
			return nil, "", &ResolveError{ErrDecodeFailed, err}
		}
		data = decoded
	case KindStored:
		downloaded, err := downloader.Download(ctx, request.FileID)
		if err != nil {
			return nil, "", &ResolveError{ErrFetchFailed, err}
		}
		data = downloaded
	}

	img, format, err := DecodeImage(data)
	if err != nil {
		return nil, "", &ResolveError{ErrDecodeFailed, err}
	}

	return img, format, nil
}

type ResolveError struct {
	Kind  error
	Cause error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

func (e *ResolveError) Is(target error) bool {
	return target == e.Kind
}

func (e *ResolveError) Unwrap() error {
	return e.Cause
}

var (
	ErrFetchFailed  = errors.New("failed to fetch image")
	ErrDecodeFailed = errors.New("failed to decode image")
)
