package input

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/golang/mock/gomock"
	mock_storage "github.com/thebartekbanach/woundfn/pkg/storage/mocks"
)

func redSquarePNG(t *testing.T, size int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}

	buff := bytes.Buffer{}
	if err := png.Encode(&buff, img); err != nil {
		t.Fatal(err)
	}

	return buff.Bytes()
}

func TestDecodeBase64_PrefixIsIrrelevant(t *testing.T) {
	raw := redSquarePNG(t, 10)
	encoded := base64.StdEncoding.EncodeToString(raw)

	inputs := []string{
		encoded,
		"data:image/png;base64," + encoded,
		"data:image/jpeg;base64," + encoded,
		"data:application/octet-stream;base64," + encoded[:40] + "\n" + encoded[40:],
		base64.RawStdEncoding.EncodeToString(raw),
	}

	for _, in := range inputs {
		decoded, err := DecodeBase64(in)
		if err != nil {
			t.Fatalf("Unexpected error for %q: %v", in[:30], err)
		}
		if !bytes.Equal(decoded, raw) {
			t.Errorf("Decoded data differs from direct decoding for %q", in[:30])
		}
	}
}

func TestDecodeBase64_Errors(t *testing.T) {
	if _, err := DecodeBase64("data:image/png,AAAA"); err != ErrInvalidDataURL {
		t.Errorf("Expected ErrInvalidDataURL, got %v", err)
	}

	if _, err := DecodeBase64("data:image/png;base64,"); err != ErrEmptyImageData {
		t.Errorf("Expected ErrEmptyImageData, got %v", err)
	}

	if _, err := DecodeBase64("!!!not-base64!!!"); err == nil {
		t.Errorf("Expected error for invalid base64")
	}
}

func TestResolve_InlineImage(t *testing.T) {
	raw := redSquarePNG(t, 10)
	request := Request{kind: KindInline, ImageData: "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)}

	img, format, err := Resolve(context.Background(), request, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if format != "png" {
		t.Errorf("Expected png format, got %s", format)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("Unexpected bounds: %v", img.Bounds())
	}
}

func TestResolve_InlineGarbageIsDecodeError(t *testing.T) {
	request := Request{kind: KindInline, ImageData: base64.StdEncoding.EncodeToString([]byte("not an image"))}

	_, _, err := Resolve(context.Background(), request, nil)
	if !errors.Is(err, ErrDecodeFailed) {
		t.Errorf("Expected ErrDecodeFailed, got %v", err)
	}
}

func TestResolve_StoredImageUsesDownloader(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	downloader := mock_storage.NewMockFileStorage(mockCtrl)
	downloader.EXPECT().Download(gomock.Any(), "abc123").Return(redSquarePNG(t, 4), nil)

	img, _, err := Resolve(context.Background(), Request{kind: KindStored, FileID: "abc123"}, downloader)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if img.Bounds().Dx() != 4 {
		t.Errorf("Unexpected bounds: %v", img.Bounds())
	}
}

func TestResolve_DownloadFailureIsFetchError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	downloadErr := errors.New("bucket unavailable")
	downloader := mock_storage.NewMockFileStorage(mockCtrl)
	downloader.EXPECT().Download(gomock.Any(), "abc123").Return(nil, downloadErr)

	_, _, err := Resolve(context.Background(), Request{kind: KindStored, FileID: "abc123"}, downloader)
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("Expected ErrFetchFailed, got %v", err)
	}
	if !errors.Is(err, downloadErr) {
		t.Errorf("Expected cause to be preserved, got %v", err)
	}
}
