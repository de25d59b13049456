package provisioner

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
)

type Config struct {
	WorkDir             string
	Isolate             bool
	AllowedRepositories []string
}

type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

type gitProvisioner struct {
	config     Config
	run        commandRunner
	generateID func() string
}

var _ CodeProvisioner = (*gitProvisioner)(nil)

func NewGitProvisioner(config Config) CodeProvisioner {
	return &gitProvisioner{config, runCommand, uuid.NewString}
}

// Provision makes a shallow clone of the repository into the workspace
// unless its directory already exists.
func (p *gitProvisioner) Provision(ctx context.Context, repositoryURL string, workspace Workspace) (Workspace, error) {
	if !p.isAllowedRepository(repositoryURL) {
		return workspace, fmt.Errorf("%w: %s", ErrRepositoryNotAllowed, repositoryURL)
	}

	if workspace.Dir == "" {
		return workspace, ErrEmptyWorkspace
	}

	if _, err := os.Stat(workspace.Dir); err == nil {
		return workspace, nil
	}

	if err := os.MkdirAll(filepath.Dir(workspace.Dir), 0o755); err != nil {
		return workspace, fmt.Errorf("cannot create workspace: %w", err)
	}

	workspace.Created = true
	output, err := p.run(ctx, "git", "clone", "--depth", "1", repositoryURL, workspace.Dir)
	if err != nil {
		return workspace, &CloneError{Output: strings.TrimSpace(string(output)), Err: err}
	}

	return workspace, nil
}

func (p *gitProvisioner) Remove(workspace Workspace) error {
	if workspace.Root == "" {
		return nil
	}

	return os.RemoveAll(workspace.Root)
}

// Workspace returns where the repository is checked out: a fresh
// <workDir>/<id>/<name> when isolated, <workDir>/<name> otherwise.
func (p *gitProvisioner) Workspace(repositoryURL string) Workspace {
	name := repositoryName(repositoryURL)

	if !p.config.Isolate {
		dir := filepath.Join(p.config.WorkDir, name)
		return Workspace{Root: dir, Dir: dir}
	}

	root := filepath.Join(p.config.WorkDir, p.generateID())
	return Workspace{Root: root, Dir: filepath.Join(root, name)}
}

func (p *gitProvisioner) isAllowedRepository(repositoryURL string) bool {
	if len(p.config.AllowedRepositories) == 0 {
		return true
	}

	for _, allowed := range p.config.AllowedRepositories {
		if glob.Glob(allowed, repositoryURL) {
			return true
		}
	}

	return false
}

// repositoryName returns the last path element without the .git suffix,
// e.g. "WoundSize" for https://github.com/Skymero/WoundSize.git.
func repositoryName(repositoryURL string) string {
	raw := repositoryURL
	if parsed, err := url.Parse(repositoryURL); err == nil && parsed.Path != "" {
		raw = parsed.Path
	}

	if idx := strings.LastIndex(raw, ":"); idx >= 0 {
		raw = raw[idx+1:]
	}

	name := strings.TrimSuffix(path.Base(strings.TrimRight(raw, "/")), ".git")
	if name == "" || name == "." || name == "/" {
		return "repository"
	}

	return name
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	return cmd.CombinedOutput()
}

type CloneError struct {
	Output string
	Err    error
}

func (e *CloneError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s: %s", ErrCloneFailed, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", ErrCloneFailed, e.Err, e.Output)
}

func (e *CloneError) Is(target error) bool {
	return target == ErrCloneFailed
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

var (
	ErrCloneFailed          = errors.New("repository cloning failed")
	ErrRepositoryNotAllowed = errors.New("repository is not allowed")
	ErrEmptyWorkspace       = errors.New("workspace directory is empty")
)
