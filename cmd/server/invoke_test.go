package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thebartekbanach/woundfn/pkg/config"
	"github.com/thebartekbanach/woundfn/pkg/function"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func writeTestPNG(t *testing.T) string {
	encoded := bytes.Buffer{}
	if err := png.Encode(&encoded, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "wound.png")
	if err := os.WriteFile(path, encoded.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildInvokeBody_StoredFile(t *testing.T) {
	body, err := buildInvokeBody("abc123", "", "")
	if err != nil {
		t.Fatal(err)
	}

	if string(body) != `{"fileId":"abc123"}` {
		t.Errorf("Unexpected body %s", body)
	}
}

func TestBuildInvokeBody_InlineImageWithDerivedMetadata(t *testing.T) {
	path := writeTestPNG(t)

	body, err := buildInvokeBody("", path, "")
	if err != nil {
		t.Fatal(err)
	}

	imageData := gjson.GetBytes(body, "imageData").String()
	if !strings.HasPrefix(imageData, "data:image/png;base64,") {
		t.Errorf("Expected data url, got %.40s", imageData)
	}

	raw, _ := os.ReadFile(path)
	if strings.TrimPrefix(imageData, "data:image/png;base64,") != base64.StdEncoding.EncodeToString(raw) {
		t.Error("Encoded image does not match the file")
	}

	if name := gjson.GetBytes(body, "metadata.fileName").String(); name != "wound.png" {
		t.Errorf("Expected file name wound.png, got %s", name)
	}
	if fileType := gjson.GetBytes(body, "metadata.fileType").String(); fileType != "image/png" {
		t.Errorf("Expected file type image/png, got %s", fileType)
	}
	if !gjson.GetBytes(body, "metadata.additionalInfo").IsObject() {
		t.Error("Expected additionalInfo object")
	}
}

func TestBuildInvokeBody_ExplicitMetadata(t *testing.T) {
	body, err := buildInvokeBody("", writeTestPNG(t), `{"fileName":"scan.png","additionalInfo":{"patient":"p1"}}`)
	if err != nil {
		t.Fatal(err)
	}

	if patient := gjson.GetBytes(body, "metadata.additionalInfo.patient").String(); patient != "p1" {
		t.Errorf("Expected patient p1, got %s", patient)
	}
}

func TestBuildInvokeBody_RejectsInvalidInput(t *testing.T) {
	if _, err := buildInvokeBody("", "", ""); err != errExactlyOneSource {
		t.Errorf("Expected errExactlyOneSource, got %v", err)
	}
	if _, err := buildInvokeBody("abc123", "wound.png", ""); err != errExactlyOneSource {
		t.Errorf("Expected errExactlyOneSource, got %v", err)
	}
	if _, err := buildInvokeBody("", writeTestPNG(t), "{"); err != errInvalidMetadataJSON {
		t.Errorf("Expected errInvalidMetadataJSON, got %v", err)
	}
	if _, err := buildInvokeBody("", filepath.Join(t.TempDir(), "missing.png"), ""); err == nil {
		t.Error("Expected missing image to fail")
	}
}

func TestInitializeApplication_WithoutRecordsDatabase(t *testing.T) {
	cfg := config.Config{
		Repository: config.RepositoryConfig{WorkDir: t.TempDir(), Isolate: true},
		EntryPoint: config.EntryPointConfig{Loader: "exec"},
	}

	app, cleanup, err := InitializeApplication(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	if app.functionService == nil || app.invocations == nil {
		t.Error("Expected application to be fully wired")
	}
}

func TestInitializeApplication_RejectsUnknownLoader(t *testing.T) {
	cfg := config.Config{EntryPoint: config.EntryPointConfig{Loader: "python"}}

	if _, _, err := InitializeApplication(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Error("Expected unknown loader to fail")
	}
}

func TestCliResponseWriter_PrintsJSON(t *testing.T) {
	out := bytes.Buffer{}
	writer := &cliResponseWriter{out: &out}

	writer.JSON(map[string]interface{}{"success": false, "message": "Repository cloning failed"}, 500)

	if writer.status != 500 || writer.err != nil {
		t.Errorf("Unexpected writer state: %d %v", writer.status, writer.err)
	}
	if gjson.Get(out.String(), "message").String() != "Repository cloning failed" {
		t.Errorf("Unexpected output %s", out.String())
	}
}

func TestCliResponseWriter_PrintsProcessedIDOnly(t *testing.T) {
	out := bytes.Buffer{}
	writer := &cliResponseWriter{out: &out, idOnly: true}

	writer.JSON(function.Response{Success: true, Message: function.MessageSuccess, ProcessedImageID: "processed-1"}, 200)

	if writer.status != 200 || writer.err != nil {
		t.Errorf("Unexpected writer state: %d %v", writer.status, writer.err)
	}
	if out.String() != "processed-1\n" {
		t.Errorf("Expected bare id, got %q", out.String())
	}
}

func TestCliResponseWriter_PrintsFailuresAsJSONWithIDOnly(t *testing.T) {
	out := bytes.Buffer{}
	writer := &cliResponseWriter{out: &out, idOnly: true}

	writer.JSON(function.Response{Success: false, Message: "Repository cloning failed"}, 500)

	if writer.status != 500 {
		t.Errorf("Unexpected status %d", writer.status)
	}
	if gjson.Get(out.String(), "message").String() != "Repository cloning failed" {
		t.Errorf("Unexpected output %s", out.String())
	}
}
