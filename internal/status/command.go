package status

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repostat/internal/execshell"
	"github.com/temirov/repostat/internal/repos/discovery"
	"github.com/temirov/repostat/internal/ui"
	"github.com/temirov/repostat/internal/utils"
	"github.com/temirov/repostat/internal/utils/flags"
	pathutils "github.com/temirov/repostat/internal/utils/path"
)

const (
	commandUseConstant                   = "status [root]"
	commandShortDescriptionConstant      = "Report git status for every repository under a projects directory"
	commandLongDescriptionConstant       = "status searches the projects directory for .git folders and runs git status -s in each repository it finds, one at a time."
	tooManyArgumentsMessageConstant      = "status accepts at most one root argument"
	flagRootNameConstant                 = "root"
	flagRootDescriptionConstant          = "Directory searched for repositories"
	flagBaseNameConstant                 = "base"
	flagBaseDescriptionConstant          = "Directory search entries are joined onto (defaults to ~/projects)"
	flagPatternNameConstant              = "pattern"
	flagPatternDescriptionConstant       = "Metadata directory name to search for"
	flagMarkerNameConstant               = "marker"
	flagMarkerDescriptionConstant        = "Trailing marker stripped from each search entry"
	flagSearchCommandNameConstant        = "search-command"
	flagSearchCommandDescriptionConstant = "fd-compatible search utility"
	flagBackendNameConstant              = "backend"
	flagBackendDescriptionConstant       = "Search backend; walk scans the filesystem without fd"
	flagTimeoutNameConstant              = "timeout"
	flagTimeoutDescriptionConstant       = "Per-command timeout; 0 disables it"
	flagStatusArgumentNameConstant       = "status-arg"
	flagStatusArgumentDescriptionConst   = "Argument passed to git, repeatable (defaults to status -s)"
	configurationInvalidTemplateConstant = "invalid status configuration: %w"
	searchRootInvalidTemplateConstant    = "unable to resolve search root %s: %w"
)

var errTooManyArguments = errors.New(tooManyArgumentsMessageConstant)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the status cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	CommandRunner                execshell.CommandRunner
	Searcher                     RepositorySearcher
	PathResolver                 RepositoryPathResolver
	GitExecutor                  GitExecutor
	HomeDirectoryProvider        pathutils.HomeDirectoryProvider
}

// Build constructs the cobra command for the status sweep.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.Run,
	}

	command.Flags().String(flagRootNameConstant, "", flagRootDescriptionConstant)
	command.Flags().String(flagBaseNameConstant, "", flagBaseDescriptionConstant)
	command.Flags().String(flagPatternNameConstant, "", flagPatternDescriptionConstant)
	command.Flags().String(flagMarkerNameConstant, "", flagMarkerDescriptionConstant)
	command.Flags().String(flagSearchCommandNameConstant, "", flagSearchCommandDescriptionConstant)
	command.Flags().String(flagBackendNameConstant, "", flags.FormatChoiceUsage(SearchBackendFd, searchBackendChoices, flagBackendDescriptionConstant))
	command.Flags().Duration(flagTimeoutNameConstant, 0, flagTimeoutDescriptionConstant)
	command.Flags().StringArray(flagStatusArgumentNameConstant, nil, flagStatusArgumentDescriptionConst)

	return command, nil
}

// Run executes the sweep for command. Flags that command does not define are
// ignored, so a parent command may delegate to Run with configuration alone.
func (builder *CommandBuilder) Run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 1 {
		return errTooManyArguments
	}

	configuration, configurationError := builder.resolveConfiguration(command, arguments)
	if configurationError != nil {
		return configurationError
	}

	searchRoot, searchRootError := pathutils.NewHomeExpanderWithProvider(builder.HomeDirectoryProvider).Expand(configuration.Root)
	if searchRootError != nil {
		return fmt.Errorf(searchRootInvalidTemplateConstant, configuration.Root, searchRootError)
	}

	logger := builder.resolveLogger()
	shellExecutor, executorError := builder.resolveShellExecutor(logger)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(
		builder.resolveSearcher(configuration, shellExecutor),
		builder.resolvePathResolver(configuration),
		builder.resolveGitExecutor(shellExecutor),
		logger,
		utils.NewFlushingWriter(command.OutOrStdout()),
		utils.NewFlushingWriter(command.ErrOrStderr()),
	)
	if serviceError != nil {
		return serviceError
	}

	options := CommandOptions{
		SearchRoot:      searchRoot,
		MetadataPattern: configuration.MetadataPattern,
		StatusArguments: configuration.StatusArguments,
		Timeout:         configuration.Timeout,
	}

	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command, arguments []string) (CommandConfiguration, error) {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	flagSet := command.Flags()
	if flagSet.Changed(flagRootNameConstant) {
		configuration.Root, _ = flagSet.GetString(flagRootNameConstant)
	}
	if len(arguments) == 1 {
		configuration.Root = arguments[0]
	}
	if flagSet.Changed(flagBaseNameConstant) {
		configuration.BaseDirectory, _ = flagSet.GetString(flagBaseNameConstant)
	}
	if flagSet.Changed(flagPatternNameConstant) {
		configuration.MetadataPattern, _ = flagSet.GetString(flagPatternNameConstant)
	}
	if flagSet.Changed(flagMarkerNameConstant) {
		configuration.MetadataMarker, _ = flagSet.GetString(flagMarkerNameConstant)
	}
	if flagSet.Changed(flagSearchCommandNameConstant) {
		configuration.SearchCommand, _ = flagSet.GetString(flagSearchCommandNameConstant)
	}
	if flagSet.Changed(flagBackendNameConstant) {
		configuration.SearchBackend, _ = flagSet.GetString(flagBackendNameConstant)
	}
	if flagSet.Changed(flagTimeoutNameConstant) {
		configuration.Timeout, _ = flagSet.GetDuration(flagTimeoutNameConstant)
	}
	if flagSet.Changed(flagStatusArgumentNameConstant) {
		configuration.StatusArguments, _ = flagSet.GetStringArray(flagStatusArgumentNameConstant)
	}

	sanitized := configuration.sanitize()
	if validationError := sanitized.validate(); validationError != nil {
		return CommandConfiguration{}, fmt.Errorf(configurationInvalidTemplateConstant, validationError)
	}
	return sanitized, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveShellExecutor(logger *zap.Logger) (*execshell.ShellExecutor, error) {
	commandRunner := builder.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}

	var observer execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		observer = ui.NewConsoleCommandEventLogger(logger)
	}

	return execshell.NewShellExecutorWithObserver(logger, commandRunner, observer)
}

func (builder *CommandBuilder) resolveSearcher(configuration CommandConfiguration, shellExecutor *execshell.ShellExecutor) RepositorySearcher {
	if builder.Searcher != nil {
		return builder.Searcher
	}
	if strings.EqualFold(configuration.SearchBackend, SearchBackendWalk) {
		return discovery.NewFilesystemRepositoryDiscoverer(configuration.MetadataPattern)
	}
	return discovery.NewSearchUtilityDiscoverer(shellExecutor, discovery.SearchUtilityConfiguration{
		Command:         execshell.CommandName(configuration.SearchCommand),
		MetadataPattern: configuration.MetadataPattern,
		Timeout:         configuration.Timeout,
	})
}

func (builder *CommandBuilder) resolvePathResolver(configuration CommandConfiguration) RepositoryPathResolver {
	if builder.PathResolver != nil {
		return builder.PathResolver
	}
	return pathutils.NewRepositoryPathResolverWithProvider(
		pathutils.RepositoryPathResolverConfiguration{
			BaseDirectory:  configuration.BaseDirectory,
			MetadataMarker: configuration.MetadataMarker,
		},
		builder.HomeDirectoryProvider,
	)
}

func (builder *CommandBuilder) resolveGitExecutor(shellExecutor *execshell.ShellExecutor) GitExecutor {
	if builder.GitExecutor != nil {
		return builder.GitExecutor
	}
	return shellExecutor
}
