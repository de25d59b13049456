package provisioner

import "context"

// Workspace describes a local checkout of the external processing code.
// Root is what gets removed on cleanup, Dir is the checkout itself.
type Workspace struct {
	Root    string
	Dir     string
	Created bool
}

// CodeProvisioner plans a workspace up front so cleanup can be scheduled
// before anything is fetched.
type CodeProvisioner interface {
	Workspace(repositoryURL string) Workspace
	Provision(ctx context.Context, repositoryURL string, workspace Workspace) (Workspace, error)
	Remove(workspace Workspace) error
}
