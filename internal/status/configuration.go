package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/temirov/repostat/internal/execshell"
	"github.com/temirov/repostat/internal/repos/discovery"
	"github.com/temirov/repostat/internal/utils/flags"
	pathutils "github.com/temirov/repostat/internal/utils/path"
)

const (
	// SearchBackendFd runs the external search utility.
	SearchBackendFd = "fd"
	// SearchBackendWalk walks the filesystem in-process.
	SearchBackendWalk = "walk"

	defaultSearchRootConstant             = "~/projects"
	gitStatusSubcommandConstant           = "status"
	gitShortFormatFlagConstant            = "-s"
	configurationRootKeyConstant          = "root"
	configurationBaseDirectoryKeyConstant = "base_directory"
	configurationPatternKeyConstant       = "metadata_pattern"
	configurationMarkerKeyConstant        = "metadata_marker"
	configurationSearchCommandKeyConstant = "search_command"
	configurationSearchBackendKeyConstant = "search_backend"
	configurationStatusArgumentsKey       = "status_arguments"
	configurationTimeoutKeyConstant       = "timeout"
	searchBackendErrorTemplateConstant    = "search backend: %w"
	negativeTimeoutTemplateConstant       = "timeout must not be negative: %s"
)

var searchBackendChoices = []string{SearchBackendFd, SearchBackendWalk}

// CommandConfiguration captures persistent settings for the status command.
type CommandConfiguration struct {
	Root            string        `mapstructure:"root"`
	BaseDirectory   string        `mapstructure:"base_directory"`
	MetadataPattern string        `mapstructure:"metadata_pattern"`
	MetadataMarker  string        `mapstructure:"metadata_marker"`
	SearchCommand   string        `mapstructure:"search_command"`
	SearchBackend   string        `mapstructure:"search_backend"`
	StatusArguments []string      `mapstructure:"status_arguments"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// DefaultCommandConfiguration returns baseline configuration values for the status command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Root:            defaultSearchRootConstant,
		BaseDirectory:   "",
		MetadataPattern: discovery.DefaultMetadataPattern,
		MetadataMarker:  pathutils.DefaultMetadataMarker,
		SearchCommand:   string(execshell.CommandFd),
		SearchBackend:   SearchBackendFd,
		StatusArguments: []string{gitStatusSubcommandConstant, gitShortFormatFlagConstant},
		Timeout:         0,
	}
}

// DefaultConfigurationValues produces Viper defaults for the status command rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationRootKeyConstant:          defaults.Root,
		rootKey + "." + configurationBaseDirectoryKeyConstant: defaults.BaseDirectory,
		rootKey + "." + configurationPatternKeyConstant:       defaults.MetadataPattern,
		rootKey + "." + configurationMarkerKeyConstant:        defaults.MetadataMarker,
		rootKey + "." + configurationSearchCommandKeyConstant: defaults.SearchCommand,
		rootKey + "." + configurationSearchBackendKeyConstant: defaults.SearchBackend,
		rootKey + "." + configurationStatusArgumentsKey:       defaults.StatusArguments,
		rootKey + "." + configurationTimeoutKeyConstant:       defaults.Timeout.String(),
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.Root = firstNonEmpty(configuration.Root, defaults.Root)
	sanitized.BaseDirectory = strings.TrimSpace(configuration.BaseDirectory)
	sanitized.MetadataPattern = firstNonEmpty(configuration.MetadataPattern, defaults.MetadataPattern)
	sanitized.MetadataMarker = firstNonEmpty(configuration.MetadataMarker, defaults.MetadataMarker)
	sanitized.SearchCommand = firstNonEmpty(configuration.SearchCommand, defaults.SearchCommand)
	sanitized.SearchBackend = strings.ToLower(firstNonEmpty(configuration.SearchBackend, defaults.SearchBackend))

	sanitized.StatusArguments = sanitizeArguments(configuration.StatusArguments)
	if len(sanitized.StatusArguments) == 0 {
		sanitized.StatusArguments = defaults.StatusArguments
	}

	return sanitized
}

// validate reports configuration values that cannot be honoured.
func (configuration CommandConfiguration) validate() error {
	if _, choiceError := flags.ResolveChoice(configuration.SearchBackend, searchBackendChoices); choiceError != nil {
		return fmt.Errorf(searchBackendErrorTemplateConstant, choiceError)
	}
	if configuration.Timeout < 0 {
		return fmt.Errorf(negativeTimeoutTemplateConstant, configuration.Timeout)
	}
	return nil
}

func firstNonEmpty(value string, fallback string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallback
	}
	return trimmedValue
}

func sanitizeArguments(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
