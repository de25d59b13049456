package input

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator"
	"github.com/tidwall/gjson"
)

type Kind int

const (
	KindInline Kind = iota
	KindStored
)

func (k Kind) String() string {
	if k == KindStored {
		return "fileId"
	}
	return "inline"
}

type Metadata struct {
	FileName       string                 `json:"fileName" validate:"omitempty,max=255"`
	FileType       string                 `json:"fileType" validate:"omitempty,startswith=image/"`
	AdditionalInfo map[string]interface{} `json:"additionalInfo"`
}

type payload struct {
	FileID    string    `json:"fileId"`
	ImageData string    `json:"imageData"`
	Metadata  *Metadata `json:"metadata"`
}

// Request is the normalized invocation input. Exactly one of FileID and
// ImageData is meaningful, as reported by Kind.
type Request struct {
	kind      Kind
	FileID    string
	ImageData string
	Metadata  Metadata
}

func (r Request) Kind() Kind {
	return r.kind
}

// ProcessingMetadata is the mapping handed to the entry point unmodified.
func (r Request) ProcessingMetadata() map[string]interface{} {
	additionalInfo := r.Metadata.AdditionalInfo
	if additionalInfo == nil {
		additionalInfo = map[string]interface{}{}
	}

	metadata := map[string]interface{}{
		"fileName":       r.Metadata.FileName,
		"fileType":       r.Metadata.FileType,
		"additionalInfo": additionalInfo,
	}

	if r.kind == KindStored {
		metadata["fileId"] = r.FileID
	}

	return metadata
}

var payloadPaths = []string{"req.payload", "payload"}

var metadataValidator = validator.New()

// Normalize accepts the request body in any of the shapes callers send:
// {"req":{"payload":...}}, {"payload":...} or the payload itself. A payload
// encoded as a JSON string is decoded once more.
func Normalize(body []byte) (Request, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	if !gjson.ValidBytes(body) {
		return Request{}, ErrInvalidBody
	}

	located, err := locatePayload(gjson.ParseBytes(body))
	if err != nil {
		return Request{}, err
	}

	var p payload
	if err := sonic.UnmarshalString(located.Raw, &p); err != nil {
		return Request{}, fmt.Errorf("%w: %s", ErrInvalidBody, err)
	}

	request := Request{
		FileID:    p.FileID,
		ImageData: p.ImageData,
	}
	if p.Metadata != nil {
		request.Metadata = *p.Metadata
	}

	switch {
	case request.ImageData != "":
		request.kind = KindInline
	case request.FileID != "":
		request.kind = KindStored
	default:
		return Request{}, ErrMissingImageData
	}

	if err := metadataValidator.Struct(request.Metadata); err != nil {
		return Request{}, fmt.Errorf("%w: %s", ErrInvalidMetadata, err)
	}

	return request, nil
}

func locatePayload(root gjson.Result) (gjson.Result, error) {
	located := root
	for _, path := range payloadPaths {
		if result := root.Get(path); result.Exists() {
			located = result
			break
		}
	}

	if located.Type == gjson.String {
		if !gjson.Valid(located.Str) {
			return gjson.Result{}, ErrInvalidBody
		}
		located = gjson.Parse(located.Str)
	}

	if !located.IsObject() {
		return gjson.Result{}, ErrInvalidBody
	}

	return located, nil
}

var (
	ErrInvalidBody      = errors.New("invalid request body")
	ErrMissingImageData = errors.New("missing required field: imageData")
	ErrInvalidMetadata  = errors.New("invalid metadata")
)
