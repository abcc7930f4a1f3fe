package execshell

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant        = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant = "shell executor command runner not configured"
	logFieldCommandNameConstant               = "command"
	logFieldArgumentsConstant                 = "arguments"
	logFieldWorkingDirectoryConstant          = "working_directory"
	logFieldExitCodeConstant                  = "exit_code"
	logFieldStreamingConstant                 = "streaming"
	logFieldTimeoutConstant                   = "timeout"
)

var (
	// ErrLoggerNotConfigured indicates a ShellExecutor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates a ShellExecutor was constructed without a runner.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command.
func (failedError CommandFailedError) Error() string {
	return CommandMessageFormatter{}.BuildFailureMessage(failedError.Command, failedError.Result)
}

// CommandExecutionError reports a command that could not be started or did not run to completion.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	return CommandMessageFormatter{}.BuildExecutionFailureMessage(executionError.Command, executionError.Cause)
}

// Unwrap exposes the underlying cause.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutor runs commands through a CommandRunner, applying timeouts and emitting telemetry.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor constructs a ShellExecutor that reports only through the logger.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithObserver(logger, runner, nil)
}

// NewShellExecutorWithObserver constructs a ShellExecutor that also forwards lifecycle events to observer.
func NewShellExecutorWithObserver(logger *zap.Logger, runner CommandRunner, observer CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if observer == nil {
		observer = noopCommandEventObserver{}
	}
	return &ShellExecutor{logger: logger, runner: runner, observer: observer, formatter: CommandMessageFormatter{}}, nil
}

// Execute runs the command. A non-zero exit yields CommandFailedError and a runner
// failure (including timeout or cancellation) yields CommandExecutionError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	commandFields := []zap.Field{
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
		zap.Bool(logFieldStreamingConstant, command.Details.Streaming()),
	}
	if command.Details.Timeout > 0 {
		commandFields = append(commandFields, zap.Duration(logFieldTimeoutConstant, command.Details.Timeout))
	}

	executor.logger.Debug(executor.formatter.BuildStartedMessage(command), commandFields...)
	executor.observer.CommandStarted(command)

	runContext := executionContext
	if command.Details.Timeout > 0 {
		var cancel context.CancelFunc
		runContext, cancel = context.WithTimeout(executionContext, command.Details.Timeout)
		defer cancel()
	}

	executionResult, runError := executor.runner.Run(runContext, command)
	if runError == nil && runContext.Err() != nil {
		runError = runContext.Err()
	}
	if runError != nil {
		executor.logger.Debug(executor.formatter.BuildExecutionFailureMessage(command, runError), append(commandFields, zap.Error(runError))...)
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, executionResult)
	if executionResult.ExitCode != 0 {
		executor.logger.Debug(executor.formatter.BuildFailureMessage(command, executionResult), append(commandFields, zap.Int(logFieldExitCodeConstant, executionResult.ExitCode))...)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(executor.formatter.BuildSuccessMessage(command), append(commandFields, zap.Int(logFieldExitCodeConstant, executionResult.ExitCode))...)
	return executionResult, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// ExecuteFd runs the fd search utility with the provided details.
func (executor *ShellExecutor) ExecuteFd(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandFd, Details: details})
}
