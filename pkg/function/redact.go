package function

import (
	"bytes"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// payloadPaths are where a payload may sit in a body; "" is the root.
var payloadPaths = []string{"", "payload", "req.payload"}

// redactBody returns the body for logging with inline image data replaced
// by its length. Payloads sent as JSON strings are redacted inside the
// string.
func redactBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	if !gjson.ValidBytes(body) {
		return "<invalid json>"
	}

	redacted := body
	for _, path := range payloadPaths {
		redacted = redactPayload(redacted, path)
	}

	return string(redacted)
}

func redactPayload(doc []byte, path string) []byte {
	if path == "" {
		return redactImageData(doc, "imageData")
	}

	value := gjson.GetBytes(doc, path)
	if value.Type != gjson.String {
		return redactImageData(doc, path+".imageData")
	}

	if !gjson.Valid(value.Str) {
		return doc
	}

	inner := redactImageData([]byte(value.Str), "imageData")
	if bytes.Equal(inner, []byte(value.Str)) {
		return doc
	}

	replaced, err := sjson.SetBytes(doc, path, string(inner))
	if err != nil {
		return doc
	}

	return replaced
}

func redactImageData(doc []byte, path string) []byte {
	value := gjson.GetBytes(doc, path)
	if !value.Exists() {
		return doc
	}

	replaced, err := sjson.SetBytes(doc, path, "<redacted "+strconv.Itoa(len(value.String()))+" bytes>")
	if err != nil {
		return doc
	}

	return replaced
}
