package entrypoint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
)

const MetadataEnvVariable = "ENTRYPOINT_METADATA"

// ExecLoader exposes executables of the checkout as entry points. A name
// resolves to <dir>/<name>, <dir>/bin/<name> or the same with any
// extension, e.g. process_image.py.
type ExecLoader struct{}

var _ Loader = (*ExecLoader)(nil)

func NewExecLoader() *ExecLoader {
	return &ExecLoader{}
}

func (l *ExecLoader) Load(ctx context.Context, dir string) (Module, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	return &execModule{dir}, nil
}

type execModule struct {
	dir string
}

func (m *execModule) Lookup(name string) (Symbol, bool) {
	for _, base := range []string{m.dir, filepath.Join(m.dir, "bin")} {
		candidates := []string{filepath.Join(base, name)}
		if matches, err := filepath.Glob(filepath.Join(base, name+".*")); err == nil {
			candidates = append(candidates, matches...)
		}

		for _, candidate := range candidates {
			if isExecutable(candidate) {
				return &Command{Path: candidate, Dir: m.dir}, true
			}
		}
	}

	return nil, false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	return info.Mode().Perm()&0o111 != 0
}

// Command runs an executable entry point. The image is written to stdin as
// PNG, metadata is passed as JSON in ENTRYPOINT_METADATA and the processed
// image is read from stdout.
type Command struct {
	Path string
	Dir  string
}

var _ Processor = (*Command)(nil)

func (c *Command) Process(ctx context.Context, img image.Image, metadata Metadata) (image.Image, error) {
	input := bytes.Buffer{}
	if err := png.Encode(&input, img); err != nil {
		return nil, fmt.Errorf("cannot encode input image: %w", err)
	}

	encodedMetadata, err := sonic.MarshalString(metadata)
	if err != nil {
		return nil, fmt.Errorf("cannot encode metadata: %w", err)
	}

	stdout := bytes.Buffer{}
	stderr := bytes.Buffer{}

	cmd := exec.CommandContext(ctx, c.Path)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), MetadataEnvVariable+"="+encodedMetadata)
	cmd.Stdin = &input
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			return nil, fmt.Errorf("%s: %w", filepath.Base(c.Path), err)
		}
		return nil, fmt.Errorf("%s: %w: %s", filepath.Base(c.Path), err, message)
	}

	if stdout.Len() == 0 {
		return nil, ErrEmptyOutput
	}

	result, _, err := image.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("cannot decode entry point output: %w", err)
	}

	return result, nil
}

var ErrEmptyOutput = errors.New("entry point produced no output")
