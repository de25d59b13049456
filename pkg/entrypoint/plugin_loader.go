package entrypoint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"plugin"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	pluginOutputName = ".woundfn-entrypoint.so"
	pluginPathPrefix = "woundfn/entrypoint"
)

type commandRunner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

type pluginOpener func(path string) (pluginLookup, error)

type pluginLookup interface {
	Lookup(symName string) (plugin.Symbol, error)
}

// PluginLoader loads Go code as a plugin: a prebuilt *.so in the checkout
// is used as is, otherwise the configured package is built with
// -buildmode=plugin under a plugin path derived from the checkout content.
//
// The runtime refuses to open two plugins with the same plugin path and
// never unloads one, so opened modules are kept per content digest and an
// unchanged checkout is served without building or opening again. The
// plugin path also carries the loader id, so loaders never collide.
type PluginLoader struct {
	id   string
	pkg  string
	run  commandRunner
	open pluginOpener

	mu      sync.Mutex
	modules map[string]Module
}

var _ Loader = (*PluginLoader)(nil)

func NewPluginLoader(pkg string) *PluginLoader {
	if pkg == "" {
		pkg = "."
	}

	return &PluginLoader{
		id:      strings.ReplaceAll(uuid.NewString(), "-", ""),
		pkg:     pkg,
		run:     runInDir,
		open:    openPlugin,
		modules: map[string]Module{},
	}
}

func (l *PluginLoader) Load(ctx context.Context, dir string) (Module, error) {
	digest, err := checkoutDigest(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read checkout %s: %w", dir, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.modules == nil {
		l.modules = map[string]Module{}
	}

	if module, ok := l.modules[digest]; ok {
		return module, nil
	}

	library, err := l.findPrebuilt(dir)
	if err != nil {
		return nil, err
	}

	if library == "" {
		library = filepath.Join(dir, pluginOutputName)
		output, err := l.run(ctx, dir, "go", "build",
			"-buildmode=plugin",
			"-ldflags=-pluginpath="+path.Join(pluginPathPrefix, l.id, digest),
			"-o", library,
			l.pkg,
		)
		if err != nil {
			return nil, &unavailableError{fmt.Errorf("%w: %s: %s", ErrPluginBuildFailed, err, strings.TrimSpace(string(output)))}
		}
	}

	opened, err := l.open(library)
	if err != nil {
		return nil, fmt.Errorf("cannot open plugin %s: %w", library, err)
	}

	module := &pluginModule{opened}
	l.modules[digest] = module

	return module, nil
}

func (l *PluginLoader) findPrebuilt(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.so"))
	if err != nil {
		return "", err
	}

	for _, match := range matches {
		if filepath.Base(match) != pluginOutputName {
			return match, nil
		}
	}

	return "", nil
}

// checkoutDigest hashes relative paths and contents of every file in dir,
// skipping .git and the build output.
func checkoutDigest(dir string) (string, error) {
	hash := sha256.New()

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if entry.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Name() == pluginOutputName {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		io.WriteString(hash, filepath.ToSlash(rel))
		hash.Write([]byte{0})

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			io.WriteString(hash, target)
		} else if entry.Type().IsRegular() {
			file, err := os.Open(path)
			if err != nil {
				return err
			}
			_, err = io.Copy(hash, file)
			file.Close()
			if err != nil {
				return err
			}
		}

		hash.Write([]byte{0})
		return nil
	})
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)[:16]), nil
}

type pluginModule struct {
	plugin pluginLookup
}

func (m *pluginModule) Lookup(name string) (Symbol, bool) {
	symbol, err := m.plugin.Lookup(exportedName(name))
	if err != nil {
		return nil, false
	}

	return symbol, true
}

// exportedName maps snake_case entry point names to exported Go
// identifiers: process_image -> ProcessImage.
func exportedName(name string) string {
	parts := strings.Split(name, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}

	return strings.Join(parts, "")
}

func openPlugin(path string) (pluginLookup, error) {
	return plugin.Open(path)
}

func runInDir(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	return cmd.CombinedOutput()
}

var ErrPluginBuildFailed = errors.New("plugin build failed")
