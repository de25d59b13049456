package input

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"strings"
	"unicode"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const dataURLMarker = ";base64,"

var base64Encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeBase64 decodes inline image data, with or without a
// data:<mime>;base64, prefix. Line breaks and spaces are ignored.
func DecodeBase64(data string) ([]byte, error) {
	if strings.HasPrefix(data, "data:") {
		idx := strings.Index(data, dataURLMarker)
		if idx < 0 {
			return nil, ErrInvalidDataURL
		}
		data = data[idx+len(dataURLMarker):]
	}

	data = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if data == "" {
		return nil, ErrEmptyImageData
	}

	var lastErr error
	for _, encoding := range base64Encodings {
		decoded, err := encoding.DecodeString(data)
		if err == nil {
			return decoded, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

// DecodeImage decodes png, jpeg, gif, bmp, tiff and webp data.
func DecodeImage(data []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(data))
}

var (
	ErrInvalidDataURL = errors.New("data url is missing base64 marker")
	ErrEmptyImageData = errors.New("image data is empty")
)
