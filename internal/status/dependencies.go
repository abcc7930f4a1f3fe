package status

import (
	"context"

	"github.com/temirov/repostat/internal/execshell"
)

// RepositorySearcher returns metadata directory entries beneath root in discovery order.
type RepositorySearcher interface {
	Search(executionContext context.Context, root string) ([]string, error)
	ToolName() string
}

// RepositoryPathResolver maps a search entry to the repository working directory.
type RepositoryPathResolver interface {
	Resolve(entry string) (string, error)
}

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}
