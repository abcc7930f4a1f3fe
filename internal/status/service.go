package status

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temirov/repostat/internal/execshell"
)

const (
	searchExecutionFailureTemplateConstant = "Error executing '%s': %v\n"
	searchExitFailureTemplateConstant      = "Error running '%s': %s\n"
	noEntriesFoundTemplateConstant         = "No folders with '%s' found.\n"
	statusExecutionFailureTemplateConstant = "Error executing '%s' in %q: %v\n"
	statusExitFailureTemplateConstant      = "Error executing '%s' in %q. Status: exit status %d\n"
	statusSuccessTemplateConstant          = "'%s' executed successfully in %q\n"
	resolveEntryErrorTemplateConstant      = "unable to resolve repository path for %q: %w"
	statusLabelSeparatorConstant           = " "
	searchCompletedLogMessageConstant      = "repository search completed"
	sweepCompletedLogMessageConstant       = "status sweep completed"
	logFieldSearchRootConstant             = "search_root"
	logFieldSearchToolConstant             = "search_tool"
	logFieldEntryCountConstant             = "entries"
	logFieldSucceededCountConstant         = "succeeded"
	logFieldFailedCountConstant            = "failed"
	logFieldRunIdentifierConstant          = "run_id"
	searcherNotConfiguredMessageConstant   = "status service repository searcher not configured"
	resolverNotConfiguredMessageConstant   = "status service path resolver not configured"
	executorNotConfiguredMessageConstant   = "status service git executor not configured"
)

var (
	// ErrSearcherNotConfigured indicates the service was constructed without a repository searcher.
	ErrSearcherNotConfigured = errors.New(searcherNotConfiguredMessageConstant)
	// ErrPathResolverNotConfigured indicates the service was constructed without a path resolver.
	ErrPathResolverNotConfigured = errors.New(resolverNotConfiguredMessageConstant)
	// ErrGitExecutorNotConfigured indicates the service was constructed without a git executor.
	ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// CommandOptions configure a single status sweep.
type CommandOptions struct {
	SearchRoot      string
	MetadataPattern string
	StatusArguments []string
	Timeout         time.Duration
}

// SweepSummary counts the outcome of a sweep.
type SweepSummary struct {
	// RunIdentifier correlates the debug log entries of one sweep.
	RunIdentifier string
	Entries       int
	Succeeded     int
	Failed        int
}

// Service searches for repositories and runs git status in each of them sequentially.
type Service struct {
	searcher     RepositorySearcher
	resolver     RepositoryPathResolver
	gitExecutor  GitExecutor
	logger       *zap.Logger
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewService constructs a Service using the provided dependencies.
func NewService(searcher RepositorySearcher, resolver RepositoryPathResolver, gitExecutor GitExecutor, logger *zap.Logger, outputWriter io.Writer, errorWriter io.Writer) (*Service, error) {
	if searcher == nil {
		return nil, ErrSearcherNotConfigured
	}
	if resolver == nil {
		return nil, ErrPathResolverNotConfigured
	}
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if errorWriter == nil {
		errorWriter = io.Discard
	}
	return &Service{
		searcher:     searcher,
		resolver:     resolver,
		gitExecutor:  gitExecutor,
		logger:       logger,
		outputWriter: outputWriter,
		errorWriter:  errorWriter,
	}, nil
}

// Run performs the sweep. Search and per-repository failures are reported to the
// error writer and do not fail the run; only path resolution errors are returned.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	_, runError := service.Sweep(executionContext, options)
	return runError
}

// Sweep performs the sweep and reports how many repositories were processed.
func (service *Service) Sweep(executionContext context.Context, options CommandOptions) (SweepSummary, error) {
	summary := SweepSummary{RunIdentifier: uuid.NewString()}
	sweepLogger := service.logger.With(zap.String(logFieldRunIdentifierConstant, summary.RunIdentifier))
	toolName := service.searcher.ToolName()

	entries, searchError := service.searcher.Search(executionContext, options.SearchRoot)
	if searchError != nil {
		service.reportSearchFailure(toolName, searchError)
		return summary, nil
	}

	summary.Entries = len(entries)
	sweepLogger.Debug(
		searchCompletedLogMessageConstant,
		zap.String(logFieldSearchRootConstant, options.SearchRoot),
		zap.String(logFieldSearchToolConstant, toolName),
		zap.Int(logFieldEntryCountConstant, summary.Entries),
	)

	if len(entries) == 0 {
		fmt.Fprintf(service.outputWriter, noEntriesFoundTemplateConstant, options.MetadataPattern)
		return summary, nil
	}

	statusLabel := buildStatusLabel(options.StatusArguments)
	for _, entry := range entries {
		repositoryPath, resolveError := service.resolver.Resolve(entry)
		if resolveError != nil {
			return summary, fmt.Errorf(resolveEntryErrorTemplateConstant, entry, resolveError)
		}

		if service.reportStatus(executionContext, statusLabel, repositoryPath, options) {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	sweepLogger.Debug(
		sweepCompletedLogMessageConstant,
		zap.Int(logFieldEntryCountConstant, summary.Entries),
		zap.Int(logFieldSucceededCountConstant, summary.Succeeded),
		zap.Int(logFieldFailedCountConstant, summary.Failed),
	)

	return summary, nil
}

func (service *Service) reportSearchFailure(toolName string, searchError error) {
	var failedError execshell.CommandFailedError
	if errors.As(searchError, &failedError) {
		fmt.Fprintf(service.errorWriter, searchExitFailureTemplateConstant, toolName, strings.TrimRight(failedError.Result.StandardError, "\r\n"))
		return
	}

	var executionError execshell.CommandExecutionError
	if errors.As(searchError, &executionError) {
		fmt.Fprintf(service.errorWriter, searchExecutionFailureTemplateConstant, toolName, executionError.Cause)
		return
	}

	fmt.Fprintf(service.errorWriter, searchExecutionFailureTemplateConstant, toolName, searchError)
}

// reportStatus runs the status command in repositoryPath and reports whether it succeeded.
func (service *Service) reportStatus(executionContext context.Context, statusLabel string, repositoryPath string, options CommandOptions) bool {
	details := execshell.CommandDetails{
		Arguments:            append([]string{}, options.StatusArguments...),
		WorkingDirectory:     repositoryPath,
		StandardOutputWriter: service.outputWriter,
		StandardErrorWriter:  service.errorWriter,
		Timeout:              options.Timeout,
	}

	_, statusError := service.gitExecutor.ExecuteGit(executionContext, details)
	if statusError == nil {
		fmt.Fprintf(service.outputWriter, statusSuccessTemplateConstant, statusLabel, repositoryPath)
		return true
	}

	var failedError execshell.CommandFailedError
	if errors.As(statusError, &failedError) {
		fmt.Fprintf(service.errorWriter, statusExitFailureTemplateConstant, statusLabel, repositoryPath, failedError.Result.ExitCode)
		return false
	}

	var executionError execshell.CommandExecutionError
	if errors.As(statusError, &executionError) {
		fmt.Fprintf(service.errorWriter, statusExecutionFailureTemplateConstant, statusLabel, repositoryPath, executionError.Cause)
		return false
	}

	fmt.Fprintf(service.errorWriter, statusExecutionFailureTemplateConstant, statusLabel, repositoryPath, statusError)
	return false
}

func buildStatusLabel(statusArguments []string) string {
	labelParts := []string{string(execshell.CommandGit)}
	if len(statusArguments) > 0 {
		labelParts = append(labelParts, statusArguments[0])
	}
	return strings.Join(labelParts, statusLabelSeparatorConstant)
}
