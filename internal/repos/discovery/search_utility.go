package discovery

import (
	"context"
	"strings"
	"time"

	"github.com/temirov/repostat/internal/execshell"
)

const (
	// DefaultMetadataPattern is the directory name that marks a repository root.
	DefaultMetadataPattern = ".git"
	// DefaultSearchCommand is the search utility invoked when none is configured.
	DefaultSearchCommand = execshell.CommandFd

	searchDirectoryTypeFlagConstant = "-td"
	searchHiddenFlagConstant        = "-H"
)

// CommandExecutor runs a shell command and reports typed failures.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// SearchUtilityConfiguration describes how the external search utility is invoked.
type SearchUtilityConfiguration struct {
	Command         execshell.CommandName
	MetadataPattern string
	Timeout         time.Duration
}

// SearchUtilityDiscoverer finds metadata directories by running an fd-compatible search utility.
type SearchUtilityDiscoverer struct {
	executor      CommandExecutor
	configuration SearchUtilityConfiguration
}

// NewSearchUtilityDiscoverer constructs a discoverer that runs the configured utility through executor.
func NewSearchUtilityDiscoverer(executor CommandExecutor, configuration SearchUtilityConfiguration) *SearchUtilityDiscoverer {
	if len(strings.TrimSpace(string(configuration.Command))) == 0 {
		configuration.Command = DefaultSearchCommand
	}
	if len(strings.TrimSpace(configuration.MetadataPattern)) == 0 {
		configuration.MetadataPattern = DefaultMetadataPattern
	}
	return &SearchUtilityDiscoverer{executor: executor, configuration: configuration}
}

// Search runs the utility in root, restricted to directories and including hidden entries.
// Launch failures surface as execshell.CommandExecutionError; non-zero exits as execshell.CommandFailedError.
func (discoverer *SearchUtilityDiscoverer) Search(executionContext context.Context, root string) ([]string, error) {
	searchCommand := discoverer.BuildCommand(root)
	executionResult, executionError := discoverer.executor.Execute(executionContext, searchCommand)
	if executionError != nil {
		return nil, executionError
	}
	return ParseEntries(executionResult.StandardOutput), nil
}

// BuildCommand assembles the search invocation for root.
func (discoverer *SearchUtilityDiscoverer) BuildCommand(root string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: discoverer.configuration.Command,
		Details: execshell.CommandDetails{
			Arguments:        []string{discoverer.configuration.MetadataPattern, searchDirectoryTypeFlagConstant, searchHiddenFlagConstant},
			WorkingDirectory: root,
			Timeout:          discoverer.configuration.Timeout,
		},
	}
}

// ToolName reports the configured search utility.
func (discoverer *SearchUtilityDiscoverer) ToolName() string {
	return string(discoverer.configuration.Command)
}
