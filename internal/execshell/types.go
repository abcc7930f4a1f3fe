package execshell

import (
	"context"
	"io"
	"time"
)

const (
	commandGitStringConstant = "git"
	commandFdStringConstant  = "fd"
)

// CommandName identifies an external executable.
type CommandName string

// Known executables.
const (
	CommandGit CommandName = CommandName(commandGitStringConstant)
	CommandFd  CommandName = CommandName(commandFdStringConstant)
)

// CommandDetails describes how a single invocation should be performed.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	// StandardOutputWriter and StandardErrorWriter, when set, receive the child's
	// streams directly instead of having them captured into ExecutionResult.
	StandardOutputWriter io.Writer
	StandardErrorWriter  io.Writer
	// Timeout bounds the invocation; zero leaves it bounded only by the caller's context.
	Timeout time.Duration
}

// ShellCommand pairs an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// Streaming reports whether the command writes its output straight to caller-supplied writers.
func (details CommandDetails) Streaming() bool {
	return details.StandardOutputWriter != nil || details.StandardErrorWriter != nil
}

// CommandRunner executes shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandEventObserver receives lifecycle notifications from ShellExecutor.
type CommandEventObserver interface {
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the process has exited, whatever its exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when no exit code was observed, for example on a start failure or timeout.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand)                    {}
func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}
func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error)     {}
