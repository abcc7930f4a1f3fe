package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	streamedOutputLabelConstant             = "output streamed to terminal"
)

const (
	gitStatusSubcommandNameConstant = "status"
)

const (
	gitStatusStartTemplateConstant            = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant          = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant          = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant = "Unable to review working tree status in %s: %s"
	searchStartTemplateConstant               = "Searching %s for %s"
	searchSuccessTemplateConstant             = "Searched %s for %s"
	searchFailureTemplateConstant             = "Failed to search %s for %s (exit code %d%s)"
	searchExecutionFailureTemplateConstant    = "Unable to search %s for %s: %s"
)

// CommandMessageFormatter renders human-readable descriptions of command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

// FormatCommandLabel renders the executable and its arguments, e.g. "git status -s".
func (formatter CommandMessageFormatter) FormatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	return strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandFd:
		return formatter.describeSearchMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	if subcommand != gitStatusSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitStatusStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitStatusSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitStatusFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(command, result.StandardError))
	default:
		return fmt.Sprintf(gitStatusExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeSearchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	pattern := formatter.extractFirstNonFlagArgument(command.Details.Arguments)
	if len(pattern) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(searchStartTemplateConstant, workingDirectory, pattern)
	case messageStageSuccess:
		return fmt.Sprintf(searchSuccessTemplateConstant, workingDirectory, pattern)
	case messageStageFailure:
		return fmt.Sprintf(searchFailureTemplateConstant, workingDirectory, pattern, result.ExitCode, formatter.formatStandardErrorSuffix(command, result.StandardError))
	default:
		return fmt.Sprintf(searchExecutionFailureTemplateConstant, workingDirectory, pattern, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := fmt.Sprintf(commandLabelTemplateConstant, formatter.FormatCommandLabel(command), formatter.formatWorkingDirectorySuffix(command))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(command, result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(command ShellCommand, standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) > 0 {
		return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
	}
	if command.Details.StandardErrorWriter != nil {
		return fmt.Sprintf(standardErrorSuffixTemplateConstant, streamedOutputLabelConstant)
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}
