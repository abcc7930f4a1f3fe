package execshell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// wrappedWriter is implemented by writers that decorate another writer.
type wrappedWriter interface {
	Unwrap() io.Writer
}

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run starts the command and waits for it. Streams are captured into the result unless
// the details carry writers, in which case the child writes to them as it runs and the
// corresponding result field stays empty. A writer backed by an *os.File is handed to
// the child as the file itself, so the child inherits the descriptor. A non-zero exit
// is reported through ExecutionResult.ExitCode; the returned error covers start
// failures and cancellation.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executable.Dir = command.Details.WorkingDirectory

	capturedOutput := &bytes.Buffer{}
	capturedError := &bytes.Buffer{}
	executable.Stdout = selectWriter(command.Details.StandardOutputWriter, capturedOutput)
	executable.Stderr = selectWriter(command.Details.StandardErrorWriter, capturedError)

	runError := executable.Run()
	result := ExecutionResult{
		StandardOutput: capturedOutput.String(),
		StandardError:  capturedError.String(),
	}
	if runError == nil {
		return result, nil
	}
	if contextError := executionContext.Err(); contextError != nil {
		return ExecutionResult{}, contextError
	}

	var exitError *exec.ExitError
	if !errors.As(runError, &exitError) {
		return ExecutionResult{}, runError
	}
	result.ExitCode = exitError.ExitCode()
	return result, nil
}

func selectWriter(preferred io.Writer, fallback io.Writer) io.Writer {
	if preferred == nil {
		return fallback
	}
	if file, isFile := underlyingFile(preferred); isFile {
		return file
	}
	return preferred
}

func underlyingFile(writer io.Writer) (*os.File, bool) {
	for writer != nil {
		switch typedWriter := writer.(type) {
		case *os.File:
			return typedWriter, true
		case wrappedWriter:
			writer = typedWriter.Unwrap()
		default:
			return nil, false
		}
	}
	return nil, false
}
