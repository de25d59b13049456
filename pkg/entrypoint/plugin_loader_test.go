package entrypoint

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"os/exec"
	"path/filepath"
	"plugin"
	"runtime"
	"strings"
	"testing"

	"github.com/franela/goblin"
	"go.uber.org/zap"
)

type fakePlugin map[string]plugin.Symbol

func (p fakePlugin) Lookup(symName string) (plugin.Symbol, error) {
	symbol, ok := p[symName]
	if !ok {
		return nil, errors.New("symbol " + symName + " not found")
	}
	return symbol, nil
}

func TestPluginLoader(t *testing.T) {
	g := goblin.Goblin(t)

	g.Describe("PluginLoader", func() {
		g.It("Should build the package and open the output", func() {
			dir := t.TempDir()
			var builtArgs []string
			var openedPath string

			loader := &PluginLoader{
				pkg: "./wound",
				run: func(ctx context.Context, runDir, name string, args ...string) ([]byte, error) {
					g.Assert(runDir).Equal(dir)
					g.Assert(name).Equal("go")
					builtArgs = args
					return nil, nil
				},
				open: func(path string) (pluginLookup, error) {
					openedPath = path
					return fakePlugin{"ProcessImage": func(img image.Image) image.Image { return img }}, nil
				},
			}

			digest, err := checkoutDigest(dir)
			g.Assert(err).IsNil()

			module, err := loader.Load(context.Background(), dir)

			g.Assert(err).IsNil()
			g.Assert(builtArgs).Equal([]string{
				"build",
				"-buildmode=plugin",
				"-ldflags=-pluginpath=" + pluginPathPrefix + "/" + digest,
				"-o", filepath.Join(dir, pluginOutputName),
				"./wound",
			})
			g.Assert(openedPath).Equal(filepath.Join(dir, pluginOutputName))

			_, found := module.Lookup("process_image")
			g.Assert(found).IsTrue()
			_, found = module.Lookup("main")
			g.Assert(found).IsFalse()
		})

		g.It("Should open a prebuilt plugin without building", func() {
			dir := t.TempDir()
			prebuilt := filepath.Join(dir, "wound.so")
			g.Assert(os.WriteFile(prebuilt, []byte{}, 0o644)).IsNil()

			loader := &PluginLoader{
				pkg: ".",
				run: func(ctx context.Context, runDir, name string, args ...string) ([]byte, error) {
					g.Fail("build must not run")
					return nil, nil
				},
				open: func(path string) (pluginLookup, error) {
					g.Assert(path).Equal(prebuilt)
					return fakePlugin{}, nil
				},
			}

			_, err := loader.Load(context.Background(), dir)

			g.Assert(err).IsNil()
		})

		g.It("Should report build failures with output", func() {
			loader := &PluginLoader{
				pkg: ".",
				run: func(ctx context.Context, runDir, name string, args ...string) ([]byte, error) {
					return []byte("main.go:3: syntax error\n"), errors.New("exit status 1")
				},
				open: func(path string) (pluginLookup, error) {
					g.Fail("open must not run")
					return nil, nil
				},
			}

			_, err := loader.Load(context.Background(), t.TempDir())

			g.Assert(errors.Is(err, ErrPluginBuildFailed)).IsTrue()
			g.Assert(errors.Is(err, ErrModuleUnavailable)).IsTrue()
			g.Assert(err.Error()).Equal("plugin build failed: exit status 1: main.go:3: syntax error")
		})

		g.It("Should reuse the opened module for identical checkouts", func() {
			first := writeCheckout(t, identityPlugin)
			second := writeCheckout(t, identityPlugin)
			builds, opens := 0, 0

			loader := &PluginLoader{
				pkg: ".",
				run: func(ctx context.Context, runDir, name string, args ...string) ([]byte, error) {
					builds++
					return nil, nil
				},
				open: func(path string) (pluginLookup, error) {
					opens++
					return fakePlugin{"ProcessImage": func(img image.Image) image.Image { return img }}, nil
				},
			}

			firstModule, err := loader.Load(context.Background(), first)
			g.Assert(err).IsNil()
			secondModule, err := loader.Load(context.Background(), second)
			g.Assert(err).IsNil()

			g.Assert(builds).Equal(1)
			g.Assert(opens).Equal(1)
			g.Assert(secondModule == firstModule).IsTrue()
		})

		g.It("Should build changed checkouts under a new plugin path", func() {
			first := writeCheckout(t, identityPlugin)
			second := writeCheckout(t, shrinkingPlugin)
			var pluginPaths []string

			loader := &PluginLoader{
				pkg: ".",
				run: func(ctx context.Context, runDir, name string, args ...string) ([]byte, error) {
					for _, arg := range args {
						if strings.HasPrefix(arg, "-ldflags=") {
							pluginPaths = append(pluginPaths, arg)
						}
					}
					return nil, nil
				},
				open: func(path string) (pluginLookup, error) {
					return fakePlugin{}, nil
				},
			}

			_, err := loader.Load(context.Background(), first)
			g.Assert(err).IsNil()
			_, err = loader.Load(context.Background(), second)
			g.Assert(err).IsNil()

			g.Assert(len(pluginPaths)).Equal(2)
			g.Assert(pluginPaths[0] != pluginPaths[1]).IsTrue()
		})

		g.It("Should not cache modules that failed to open", func() {
			dir := writeCheckout(t, identityPlugin)
			opens := 0

			loader := &PluginLoader{
				pkg: ".",
				run: func(ctx context.Context, runDir, name string, args ...string) ([]byte, error) {
					return nil, nil
				},
				open: func(path string) (pluginLookup, error) {
					opens++
					if opens == 1 {
						return nil, errors.New("plugin already loaded")
					}
					return fakePlugin{}, nil
				},
			}

			_, err := loader.Load(context.Background(), dir)
			g.Assert(err == nil).IsFalse()
			g.Assert(errors.Is(err, ErrModuleUnavailable)).IsFalse()

			_, err = loader.Load(context.Background(), dir)
			g.Assert(err).IsNil()
			g.Assert(opens).Equal(2)
		})
	})
}

func TestCheckoutDigest(t *testing.T) {
	first := writeCheckout(t, identityPlugin)
	second := writeCheckout(t, identityPlugin)
	changed := writeCheckout(t, shrinkingPlugin)

	if err := os.MkdirAll(filepath.Join(second, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(second, ".git", "HEAD"), []byte("ref: refs/heads/main\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(second, pluginOutputName), []byte("stale build"), 0o644); err != nil {
		t.Fatal(err)
	}

	digest := func(dir string) string {
		value, err := checkoutDigest(dir)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		return value
	}

	if digest(first) != digest(second) {
		t.Errorf("Expected .git and build output to be ignored")
	}
	if digest(first) == digest(changed) {
		t.Errorf("Expected changed sources to change the digest")
	}
}

// TestPluginLoader_BuildsAndOpensRepeatedly builds real plugins, which needs
// the go tool matching the test binary and cgo.
func TestPluginLoader_BuildsAndOpensRepeatedly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping plugin build in short mode")
	}

	goTool, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go tool not available")
	}

	env, err := exec.Command(goTool, "env", "CGO_ENABLED", "GOVERSION").Output()
	if err != nil {
		t.Skipf("cannot read go env: %v", err)
	}
	fields := strings.Fields(string(env))
	if len(fields) != 2 || fields[0] != "1" {
		t.Skip("plugins need cgo")
	}
	if fields[1] != runtime.Version() {
		t.Skipf("go tool %s does not match test binary %s", fields[1], runtime.Version())
	}

	loader := NewPluginLoader(".")
	builds := 0
	run := loader.run
	loader.run = func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		builds++
		return run(ctx, dir, name, args...)
	}

	resolver := NewResolver(true, zap.NewNop())
	img := newTestImage(color.RGBA{255, 0, 0, 255})

	for i := 0; i < 2; i++ {
		resolution, err := resolver.LoadAndResolve(context.Background(), loader, writeCheckout(t, identityPlugin))
		if err != nil {
			t.Fatalf("Load %d failed: %v", i+1, err)
		}

		result, err := Invoke(context.Background(), resolution.Processor, img, Metadata{})
		if err != nil {
			t.Fatalf("Invoke %d failed: %v", i+1, err)
		}
		if result.Bounds() != img.Bounds() {
			t.Errorf("Invoke %d: expected unchanged bounds, got %v", i+1, result.Bounds())
		}
	}

	if builds != 1 {
		t.Errorf("Expected identical checkouts to build once, built %d times", builds)
	}

	resolution, err := resolver.LoadAndResolve(context.Background(), loader, writeCheckout(t, shrinkingPlugin))
	if err != nil {
		t.Fatalf("Load of changed checkout failed: %v", err)
	}

	result, err := Invoke(context.Background(), resolution.Processor, img, Metadata{})
	if err != nil {
		t.Fatalf("Invoke of changed checkout failed: %v", err)
	}
	if result.Bounds().Dx() != 1 {
		t.Errorf("Expected the changed entry point to run, got bounds %v", result.Bounds())
	}
	if builds != 2 {
		t.Errorf("Expected the changed checkout to build, built %d times", builds)
	}
}

const identityPlugin = `package main

import "image"

func ProcessImage(img image.Image) image.Image {
	return img
}
`

const shrinkingPlugin = `package main

import "image"

func ProcessImage(img image.Image) image.Image {
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}
`

func writeCheckout(t *testing.T, source string) string {
	dir := t.TempDir()

	files := map[string]string{
		"go.mod":  "module example.com/wound\n\ngo 1.21\n",
		"main.go": source,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return dir
}

func TestExportedName(t *testing.T) {
	cases := map[string]string{
		"main":          "Main",
		"process_image": "ProcessImage",
		"analyze":       "Analyze",
		"run":           "Run",
		"_private":      "Private",
	}

	for name, expected := range cases {
		if actual := exportedName(name); actual != expected {
			t.Errorf("exportedName(%q) = %q, expected %q", name, actual, expected)
		}
	}
}
