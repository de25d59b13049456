package provisioner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/franela/goblin"
)

const (
	woundSizeURL = "https://github.com/Skymero/WoundSize.git"
	unknownURL   = "https://github.com/unknown/repo.git"
	attackerURL  = "https://github.com/attacker/payload.git"
)

type recordedCommand struct {
	name string
	args []string
}

// fakeGit records invocations and creates the clone target when succeeding.
func fakeGit(calls *[]recordedCommand, output string, err error) commandRunner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, recordedCommand{name, args})
		if err != nil {
			return []byte(output), err
		}

		target := args[len(args)-1]
		if mkErr := os.MkdirAll(target, 0o755); mkErr != nil {
			return nil, mkErr
		}
		return []byte(output), nil
	}
}

func TestGitProvisioner(t *testing.T) {
	g := goblin.Goblin(t)

	g.Describe("GitProvisioner", func() {
		g.It("Should shallow clone into an isolated workspace", func() {
			workDir := t.TempDir()
			var calls []recordedCommand
			p := &gitProvisioner{
				Config{WorkDir: workDir, Isolate: true},
				fakeGit(&calls, "", nil),
				func() string { return "invocation-1" },
			}

			ws, err := p.Provision(context.Background(), woundSizeURL, p.Workspace(woundSizeURL))

			g.Assert(err).IsNil()
			g.Assert(ws.Root).Equal(filepath.Join(workDir, "invocation-1"))
			g.Assert(ws.Dir).Equal(filepath.Join(workDir, "invocation-1", "WoundSize"))
			g.Assert(ws.Created).IsTrue()
			g.Assert(len(calls)).Equal(1)
			g.Assert(calls[0].name).Equal("git")
			g.Assert(calls[0].args).Equal([]string{
				"clone", "--depth", "1", woundSizeURL, ws.Dir,
			})
		})

		g.It("Should not fetch again when the shared directory exists", func() {
			workDir := t.TempDir()
			existing := filepath.Join(workDir, "WoundSize")
			g.Assert(os.MkdirAll(existing, 0o755)).IsNil()

			var calls []recordedCommand
			p := &gitProvisioner{Config{WorkDir: workDir, Isolate: false}, fakeGit(&calls, "", nil), nil}

			ws, err := p.Provision(context.Background(), woundSizeURL, p.Workspace(woundSizeURL))

			g.Assert(err).IsNil()
			g.Assert(ws.Dir).Equal(existing)
			g.Assert(ws.Created).IsFalse()
			g.Assert(len(calls)).Equal(0)
		})

		g.It("Should return CloneError with output when git exits non zero", func() {
			workDir := t.TempDir()
			var calls []recordedCommand
			exitErr := errors.New("exit status 128")
			p := &gitProvisioner{
				Config{WorkDir: workDir, Isolate: true},
				fakeGit(&calls, "fatal: repository not found\n", exitErr),
				func() string { return "invocation-2" },
			}

			ws, err := p.Provision(context.Background(), unknownURL, p.Workspace(unknownURL))

			g.Assert(errors.Is(err, ErrCloneFailed)).IsTrue()
			g.Assert(errors.Is(err, exitErr)).IsTrue()

			var cloneErr *CloneError
			g.Assert(errors.As(err, &cloneErr)).IsTrue()
			g.Assert(cloneErr.Output).Equal("fatal: repository not found")
			g.Assert(ws.Root).Equal(filepath.Join(workDir, "invocation-2"))
		})

		g.It("Should reject repositories outside of the allow list", func() {
			var calls []recordedCommand
			p := &gitProvisioner{
				Config{WorkDir: t.TempDir(), AllowedRepositories: []string{"https://github.com/Skymero/*"}},
				fakeGit(&calls, "", nil),
				func() string { return "id" },
			}

			_, err := p.Provision(context.Background(), attackerURL, p.Workspace(attackerURL))

			g.Assert(errors.Is(err, ErrRepositoryNotAllowed)).IsTrue()
			g.Assert(len(calls)).Equal(0)
		})

		g.It("Should remove workspace root recursively", func() {
			workDir := t.TempDir()
			var calls []recordedCommand
			p := &gitProvisioner{
				Config{WorkDir: workDir, Isolate: true},
				fakeGit(&calls, "", nil),
				func() string { return "invocation-3" },
			}

			ws, err := p.Provision(context.Background(), woundSizeURL, p.Workspace(woundSizeURL))
			g.Assert(err).IsNil()
			g.Assert(os.WriteFile(filepath.Join(ws.Dir, "wound_analysis.py"), []byte("x"), 0o644)).IsNil()

			g.Assert(p.Remove(ws)).IsNil()

			_, statErr := os.Stat(ws.Root)
			g.Assert(os.IsNotExist(statErr)).IsTrue()
		})

		g.It("Should plan a shared workspace without generating ids", func() {
			workDir := t.TempDir()
			p := &gitProvisioner{Config{WorkDir: workDir}, nil, nil}

			ws := p.Workspace(woundSizeURL)

			g.Assert(ws.Root).Equal(filepath.Join(workDir, "WoundSize"))
			g.Assert(ws.Dir).Equal(ws.Root)
			g.Assert(ws.Created).IsFalse()
		})

		g.It("Should refuse to clone without a target directory", func() {
			var calls []recordedCommand
			p := &gitProvisioner{Config{WorkDir: t.TempDir()}, fakeGit(&calls, "", nil), nil}

			_, err := p.Provision(context.Background(), woundSizeURL, Workspace{})

			g.Assert(err).Equal(ErrEmptyWorkspace)
			g.Assert(len(calls)).Equal(0)
		})

		g.It("Should ignore removal of empty workspace", func() {
			p := NewGitProvisioner(Config{WorkDir: t.TempDir()})
			g.Assert(p.Remove(Workspace{})).IsNil()
		})
	})
}

func TestRepositoryName(t *testing.T) {
	cases := map[string]string{
		"https://github.com/Skymero/WoundSize.git":  "WoundSize",
		"https://github.com/Skymero/WoundSize":      "WoundSize",
		"https://github.com/Skymero/WoundSize.git/": "WoundSize",
		"git@github.com:Skymero/WoundSize.git":      "WoundSize",
		"/srv/repos/analysis":                       "analysis",
		"":                                          "repository",
	}

	for input, expected := range cases {
		if got := repositoryName(input); got != expected {
			t.Errorf("repositoryName(%q) = %q, expected %q", input, got, expected)
		}
	}
}
