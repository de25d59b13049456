package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var invokeOptions struct {
	fileID   string
	image    string
	metadata string
	idOnly   bool
}

var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "Run the function once",
	Long: `Run the function once for a stored file or a local image and print the
response. Exits with a non zero status when the invocation fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := buildInvokeBody(invokeOptions.fileID, invokeOptions.image, invokeOptions.metadata)
		if err != nil {
			return err
		}

		cfg, log, err := loadEnvironment()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := context.Background()
		app, cleanup, err := InitializeApplication(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer cleanup()

		writer := &cliResponseWriter{out: cmd.OutOrStdout(), idOnly: invokeOptions.idOnly}
		app.functionService.Handle(ctx, body, writer)
		if writer.err != nil {
			return writer.err
		}

		if writer.status != http.StatusOK {
			return fmt.Errorf("%w with status %d", errInvocationFailed, writer.status)
		}

		return nil
	},
}

func setupInvokeCmd() {
	rootCmd.AddCommand(invokeCmd)

	invokeCmd.Flags().StringVar(&invokeOptions.fileID, "file-id", "", "id of a file already in storage")
	invokeCmd.Flags().StringVar(&invokeOptions.image, "image", "", "path of a local image sent inline")
	invokeCmd.Flags().StringVar(&invokeOptions.metadata, "metadata", "", "metadata JSON sent with the inline image")
	invokeCmd.Flags().BoolVar(&invokeOptions.idOnly, "id-only", false, "print only the processed image id on success")
}

// buildInvokeBody builds the request payload the way function callers send
// it. Local images are sent as data URLs with metadata derived from the file
// unless given explicitly.
func buildInvokeBody(fileID, imagePath, metadata string) ([]byte, error) {
	if (fileID == "") == (imagePath == "") {
		return nil, errExactlyOneSource
	}

	body := []byte("{}")
	if fileID != "" {
		return sjson.SetBytes(body, "fileId", fileID)
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("cannot read image: %w", err)
	}

	contentType := http.DetectContentType(data)
	imageData := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	if body, err = sjson.SetBytes(body, "imageData", imageData); err != nil {
		return nil, err
	}

	if metadata == "" {
		metadataBody := []byte(`{"additionalInfo":{}}`)
		if metadataBody, err = sjson.SetBytes(metadataBody, "fileName", filepath.Base(imagePath)); err != nil {
			return nil, err
		}
		if metadataBody, err = sjson.SetBytes(metadataBody, "fileType", contentType); err != nil {
			return nil, err
		}
		metadata = string(metadataBody)
	}

	if !gjson.Valid(metadata) {
		return nil, errInvalidMetadataJSON
	}

	return sjson.SetRawBytes(body, "metadata", []byte(metadata))
}

var (
	errInvocationFailed    = errors.New("invocation failed")
	errExactlyOneSource    = errors.New("exactly one of --file-id and --image is required")
	errInvalidMetadataJSON = errors.New("--metadata is not valid JSON")
)
