package entrypoint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// AutoLoader picks the plugin loader for Go checkouts (go.mod or a prebuilt
// *.so present) and the exec loader for everything else.
type AutoLoader struct {
	plugin Loader
	exec   Loader
}

var _ Loader = (*AutoLoader)(nil)

func NewAutoLoader(plugin, exec Loader) *AutoLoader {
	return &AutoLoader{plugin, exec}
}

func (l *AutoLoader) Load(ctx context.Context, dir string) (Module, error) {
	if isGoCheckout(dir) {
		return l.plugin.Load(ctx, dir)
	}

	return l.exec.Load(ctx, dir)
}

func isGoCheckout(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
		return true
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.so"))
	return err == nil && len(matches) > 0
}

// NewLoader returns the loader registered under kind: plugin, exec or auto.
func NewLoader(kind, pkg string) (Loader, error) {
	switch kind {
	case "plugin":
		return NewPluginLoader(pkg), nil
	case "exec":
		return NewExecLoader(), nil
	case "", "auto":
		return NewAutoLoader(NewPluginLoader(pkg), NewExecLoader()), nil
	default:
		return nil, fmt.Errorf("unknown entry point loader: %s", kind)
	}
}
