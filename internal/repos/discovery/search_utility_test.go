package discovery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repostat/internal/execshell"
	"github.com/temirov/repostat/internal/repos/discovery"
)

const (
	testSearchRootConstant = "/home/user/projects"
)

type recordingCommandExecutor struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
}

func (executor *recordingCommandExecutor) Execute(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, command)
	return executor.executionResult, executor.executionError
}

func TestParseEntries(testInstance *testing.T) {
	testCases := []struct {
		name            string
		output          string
		expectedEntries []string
	}{
		{name: "empty_output", output: "", expectedEntries: nil},
		{name: "whitespace_output", output: " \n\t\n", expectedEntries: nil},
		{name: "ordered_entries", output: "repoA/.git/\nrepoB/.git/\n", expectedEntries: []string{"repoA/.git/", "repoB/.git/"}},
		{name: "entries_trimmed", output: "  repoB/.git/ \r\n\n repoA/.git/\n", expectedEntries: []string{"repoB/.git/", "repoA/.git/"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedEntries, discovery.ParseEntries(testCase.output))
		})
	}
}

func TestSearchUtilityDiscovererBuildsFdInvocation(testInstance *testing.T) {
	executor := &recordingCommandExecutor{executionResult: execshell.ExecutionResult{StandardOutput: "repoA/.git/\nrepoB/.git/\n"}}
	discoverer := discovery.NewSearchUtilityDiscoverer(executor, discovery.SearchUtilityConfiguration{Timeout: time.Minute})

	entries, searchError := discoverer.Search(context.Background(), testSearchRootConstant)
	require.NoError(testInstance, searchError)
	require.Equal(testInstance, []string{"repoA/.git/", "repoB/.git/"}, entries)

	require.Len(testInstance, executor.recordedCommands, 1)
	recordedCommand := executor.recordedCommands[0]
	require.Equal(testInstance, execshell.CommandFd, recordedCommand.Name)
	require.Equal(testInstance, []string{".git", "-td", "-H"}, recordedCommand.Details.Arguments)
	require.Equal(testInstance, testSearchRootConstant, recordedCommand.Details.WorkingDirectory)
	require.Equal(testInstance, time.Minute, recordedCommand.Details.Timeout)
	require.False(testInstance, recordedCommand.Details.Streaming())
	require.Equal(testInstance, "fd", discoverer.ToolName())
}

func TestSearchUtilityDiscovererHonorsConfiguredCommand(testInstance *testing.T) {
	executor := &recordingCommandExecutor{}
	discoverer := discovery.NewSearchUtilityDiscoverer(executor, discovery.SearchUtilityConfiguration{
		Command:         execshell.CommandName("fdfind"),
		MetadataPattern: ".hg",
	})

	entries, searchError := discoverer.Search(context.Background(), testSearchRootConstant)
	require.NoError(testInstance, searchError)
	require.Empty(testInstance, entries)
	require.Equal(testInstance, execshell.CommandName("fdfind"), executor.recordedCommands[0].Name)
	require.Equal(testInstance, ".hg", executor.recordedCommands[0].Details.Arguments[0])
}

func TestSearchUtilityDiscovererPropagatesFailures(testInstance *testing.T) {
	failedError := execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 1, StandardError: "[fd error]"}}
	executor := &recordingCommandExecutor{executionError: failedError}
	discoverer := discovery.NewSearchUtilityDiscoverer(executor, discovery.SearchUtilityConfiguration{})

	entries, searchError := discoverer.Search(context.Background(), testSearchRootConstant)
	require.Nil(testInstance, entries)

	var commandFailedError execshell.CommandFailedError
	require.True(testInstance, errors.As(searchError, &commandFailedError))
	require.Equal(testInstance, "[fd error]", commandFailedError.Result.StandardError)
}
