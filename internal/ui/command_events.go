package ui

import (
	"go.uber.org/zap"

	"github.com/temirov/repostat/internal/execshell"
)

// ConsoleCommandEventLogger renders command lifecycle events using a zap logger configured for human-readable output.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter execshell.CommandMessageFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: execshell.CommandMessageFormatter{}}
}

// CommandStarted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Debug(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execshell.CommandEventObserver.
// Every event is logged at debug level; failures already reach stderr through the status report.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Debug(eventLogger.formatter.BuildSuccessMessage(command))
		return
	}
	eventLogger.logger.Debug(eventLogger.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Debug(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}
