package execshell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/repostat/internal/execshell"
)

const (
	testExecutionSuccessCaseNameConstant         = "success"
	testExecutionFailureCaseNameConstant         = "failure_exit_code"
	testExecutionRunnerErrorCaseNameConstant     = "runner_error"
	testGitWrapperCaseNameConstant               = "git_wrapper"
	testFdWrapperCaseNameConstant                = "fd_wrapper"
	testCommandArgumentConstant                  = "--version"
	testWorkingDirectoryConstant                 = "."
	testStandardErrorOutputConstant              = "failure"
	testLoggerInitializationCaseNameConstant     = "logger_validation"
	testRunnerInitializationCaseNameConstant     = "runner_validation"
	testSuccessfulInitializationCaseNameConstant = "successful_initialization"
	testTimeoutDurationConstant                  = 10 * time.Millisecond
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
	recordedDeadline bool
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	_, runner.recordedDeadline = executionContext.Deadline()
	return runner.executionResult, runner.executionError
}

type blockingCommandRunner struct{}

func (blockingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	<-executionContext.Done()
	return execshell.ExecutionResult{}, executionContext.Err()
}

type recordingEventObserver struct {
	started   int
	completed int
	failed    int
}

func (observer *recordingEventObserver) CommandStarted(execshell.ShellCommand) {
	observer.started++
}

func (observer *recordingEventObserver) CommandCompleted(execshell.ShellCommand, execshell.ExecutionResult) {
	observer.completed++
}

func (observer *recordingEventObserver) CommandExecutionFailed(execshell.ShellCommand, error) {
	observer.failed++
}

func TestShellExecutorInitializationValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		runner        execshell.CommandRunner
		expectError   error
		expectSuccess bool
	}{
		{
			name:        testLoggerInitializationCaseNameConstant,
			logger:      nil,
			runner:      &recordingCommandRunner{},
			expectError: execshell.ErrLoggerNotConfigured,
		},
		{
			name:        testRunnerInitializationCaseNameConstant,
			logger:      zap.NewNop(),
			runner:      nil,
			expectError: execshell.ErrCommandRunnerNotConfigured,
		},
		{
			name:          testSuccessfulInitializationCaseNameConstant,
			logger:        zap.NewNop(),
			runner:        &recordingCommandRunner{},
			expectSuccess: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor, creationError := execshell.NewShellExecutor(testCase.logger, testCase.runner)
			if testCase.expectSuccess {
				require.NoError(testInstance, creationError)
				require.NotNil(testInstance, executor)
			} else {
				require.Error(testInstance, creationError)
				require.ErrorIs(testInstance, creationError, testCase.expectError)
			}
		})
	}
}

func TestShellExecutorExecuteBehavior(testInstance *testing.T) {
	testCases := []struct {
		name              string
		runnerResult      execshell.ExecutionResult
		runnerError       error
		expectErrorType   any
		expectedLogCount  int
		expectedCompleted int
		expectedFailed    int
	}{
		{
			name: testExecutionSuccessCaseNameConstant,
			runnerResult: execshell.ExecutionResult{
				StandardOutput: "ok",
				ExitCode:       0,
			},
			expectedLogCount:  2,
			expectedCompleted: 1,
		},
		{
			name: testExecutionFailureCaseNameConstant,
			runnerResult: execshell.ExecutionResult{
				StandardError: testStandardErrorOutputConstant,
				ExitCode:      1,
			},
			expectErrorType:   execshell.CommandFailedError{},
			expectedLogCount:  2,
			expectedCompleted: 1,
		},
		{
			name:             testExecutionRunnerErrorCaseNameConstant,
			runnerError:      errors.New("runner failure"),
			expectErrorType:  execshell.CommandExecutionError{},
			expectedLogCount: 2,
			expectedFailed:   1,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observerLogs := observer.New(zap.DebugLevel)
			logger := zap.New(observerCore)

			recordingRunner := &recordingCommandRunner{
				executionResult: testCase.runnerResult,
				executionError:  testCase.runnerError,
			}
			eventObserver := &recordingEventObserver{}

			shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, recordingRunner, eventObserver)
			require.NoError(testInstance, creationError)

			commandDetails := execshell.CommandDetails{Arguments: []string{testCommandArgumentConstant}, WorkingDirectory: testWorkingDirectoryConstant}
			executionResult, executionError := shellExecutor.ExecuteGit(context.Background(), commandDetails)

			if testCase.expectErrorType != nil {
				require.Error(testInstance, executionError)
				require.IsType(testInstance, testCase.expectErrorType, executionError)
				require.Empty(testInstance, executionResult.StandardOutput)
			} else {
				require.NoError(testInstance, executionError)
				require.Equal(testInstance, testCase.runnerResult.StandardOutput, executionResult.StandardOutput)
			}

			require.Len(testInstance, observerLogs.All(), testCase.expectedLogCount)
			require.Equal(testInstance, 1, eventObserver.started)
			require.Equal(testInstance, testCase.expectedCompleted, eventObserver.completed)
			require.Equal(testInstance, testCase.expectedFailed, eventObserver.failed)
		})
	}
}

func TestShellExecutorFailureErrorsCarryDetails(testInstance *testing.T) {
	runnerFailure := errors.New("executable file not found")
	recordingRunner := &recordingCommandRunner{executionError: runnerFailure}

	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner)
	require.NoError(testInstance, creationError)

	_, executionError := executor.ExecuteFd(context.Background(), execshell.CommandDetails{Arguments: []string{".git"}})

	var commandExecutionError execshell.CommandExecutionError
	require.True(testInstance, errors.As(executionError, &commandExecutionError))
	require.ErrorIs(testInstance, executionError, runnerFailure)
	require.Equal(testInstance, execshell.CommandFd, commandExecutionError.Command.Name)

	recordingRunner.executionError = nil
	recordingRunner.executionResult = execshell.ExecutionResult{ExitCode: 2, StandardError: testStandardErrorOutputConstant}
	_, executionError = executor.ExecuteFd(context.Background(), execshell.CommandDetails{Arguments: []string{".git"}})

	var commandFailedError execshell.CommandFailedError
	require.True(testInstance, errors.As(executionError, &commandFailedError))
	require.Equal(testInstance, 2, commandFailedError.Result.ExitCode)
	require.Equal(testInstance, testStandardErrorOutputConstant, commandFailedError.Result.StandardError)
}

func TestShellExecutorAppliesTimeout(testInstance *testing.T) {
	recordingRunner := &recordingCommandRunner{}
	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner)
	require.NoError(testInstance, creationError)

	_, executionError := executor.ExecuteGit(context.Background(), execshell.CommandDetails{Timeout: time.Minute})
	require.NoError(testInstance, executionError)
	require.True(testInstance, recordingRunner.recordedDeadline)

	_, executionError = executor.ExecuteGit(context.Background(), execshell.CommandDetails{})
	require.NoError(testInstance, executionError)
	require.False(testInstance, recordingRunner.recordedDeadline)

	blockingExecutor, blockingCreationError := execshell.NewShellExecutor(zap.NewNop(), blockingCommandRunner{})
	require.NoError(testInstance, blockingCreationError)

	_, timeoutError := blockingExecutor.ExecuteGit(context.Background(), execshell.CommandDetails{Timeout: testTimeoutDurationConstant})
	require.Error(testInstance, timeoutError)
	require.IsType(testInstance, execshell.CommandExecutionError{}, timeoutError)
	require.ErrorIs(testInstance, timeoutError, context.DeadlineExceeded)
}

func TestShellExecutorWrappersSetCommandNames(testInstance *testing.T) {
	observerCore, _ := observer.New(zap.DebugLevel)
	logger := zap.New(observerCore)

	testCases := []struct {
		name            string
		invoke          func(executor *execshell.ShellExecutor) error
		expectedCommand execshell.CommandName
	}{
		{
			name: testGitWrapperCaseNameConstant,
			invoke: func(executor *execshell.ShellExecutor) error {
				_, executionError := executor.ExecuteGit(context.Background(), execshell.CommandDetails{})
				return executionError
			},
			expectedCommand: execshell.CommandGit,
		},
		{
			name: testFdWrapperCaseNameConstant,
			invoke: func(executor *execshell.ShellExecutor) error {
				_, executionError := executor.ExecuteFd(context.Background(), execshell.CommandDetails{})
				return executionError
			},
			expectedCommand: execshell.CommandFd,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			recordingRunner := &recordingCommandRunner{
				executionResult: execshell.ExecutionResult{ExitCode: 1},
			}

			executor, creationError := execshell.NewShellExecutor(logger, recordingRunner)
			require.NoError(testInstance, creationError)

			executionError := testCase.invoke(executor)
			require.Error(testInstance, executionError)
			require.Len(testInstance, recordingRunner.recordedCommands, 1)
			recordedCommand := recordingRunner.recordedCommands[0]
			require.Equal(testInstance, testCase.expectedCommand, recordedCommand.Name)
		})
	}
}
