package pathutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// DefaultMetadataMarker is the trailing segment the search utility appends to repository metadata directories.
	DefaultMetadataMarker = "/.git/"
	// DefaultProjectsDirectoryName is the home subdirectory used as the base when none is configured.
	DefaultProjectsDirectoryName = "projects"

	homeDirectoryUnavailableMessageConstant   = "unable to determine home directory"
	homeDirectoryUnavailableTemplateConstant  = "%w: %v"
	baseDirectoryResolutionErrorTemplateConst = "unable to resolve base directory %s: %w"
)

// ErrHomeDirectoryUnavailable indicates the base directory could not be derived from the user's home directory.
var ErrHomeDirectoryUnavailable = errors.New(homeDirectoryUnavailableMessageConstant)

// RepositoryPathResolverConfiguration controls how search entries map to repository paths.
type RepositoryPathResolverConfiguration struct {
	// BaseDirectory overrides the default <home>/projects base. A leading ~ is expanded.
	BaseDirectory string
	// MetadataMarker is stripped from the end of each entry, repeatedly. Empty selects DefaultMetadataMarker.
	MetadataMarker string
}

// RepositoryPathResolver converts search utility entries into absolute repository paths.
type RepositoryPathResolver struct {
	homeExpander        *HomeExpander
	configuration       RepositoryPathResolverConfiguration
	baseDirectory       string
	baseDirectoryError  error
	initializationGuard sync.Once
}

// NewRepositoryPathResolver constructs a resolver using the operating system home directory lookup.
func NewRepositoryPathResolver(configuration RepositoryPathResolverConfiguration) *RepositoryPathResolver {
	return NewRepositoryPathResolverWithProvider(configuration, os.UserHomeDir)
}

// NewRepositoryPathResolverWithProvider constructs a resolver with a custom home directory provider.
func NewRepositoryPathResolverWithProvider(configuration RepositoryPathResolverConfiguration, provider HomeDirectoryProvider) *RepositoryPathResolver {
	if len(configuration.MetadataMarker) == 0 {
		configuration.MetadataMarker = DefaultMetadataMarker
	}
	return &RepositoryPathResolver{
		homeExpander:  NewHomeExpanderWithProvider(provider),
		configuration: configuration,
	}
}

// Resolve strips the trailing metadata marker from entry and joins the remainder onto the base directory.
// An absolute remainder replaces the base directory and is returned as is.
// The base directory is determined on first use; failure to determine it is returned on every call.
func (resolver *RepositoryPathResolver) Resolve(entry string) (string, error) {
	baseDirectory, baseDirectoryError := resolver.BaseDirectory()
	if baseDirectoryError != nil {
		return "", baseDirectoryError
	}
	repositoryPath := TrimMetadataMarker(entry, resolver.configuration.MetadataMarker)
	if filepath.IsAbs(repositoryPath) {
		return repositoryPath, nil
	}
	return filepath.Join(baseDirectory, repositoryPath), nil
}

// BaseDirectory reports the directory entries are joined onto.
func (resolver *RepositoryPathResolver) BaseDirectory() (string, error) {
	resolver.initializationGuard.Do(func() {
		resolver.baseDirectory, resolver.baseDirectoryError = resolver.resolveBaseDirectory()
	})
	return resolver.baseDirectory, resolver.baseDirectoryError
}

// TrimMetadataMarker removes every trailing occurrence of marker from entry.
// Entries that do not end with the marker are returned unchanged.
func TrimMetadataMarker(entry string, marker string) string {
	if len(marker) == 0 {
		return entry
	}
	for strings.HasSuffix(entry, marker) {
		entry = strings.TrimSuffix(entry, marker)
	}
	return entry
}

func (resolver *RepositoryPathResolver) resolveBaseDirectory() (string, error) {
	configuredBaseDirectory := strings.TrimSpace(resolver.configuration.BaseDirectory)
	if len(configuredBaseDirectory) == 0 {
		homeDirectory, homeDirectoryError := resolver.homeExpander.HomeDirectory()
		if homeDirectoryError != nil {
			return "", homeDirectoryError
		}
		return filepath.Join(homeDirectory, DefaultProjectsDirectoryName), nil
	}

	expandedBaseDirectory, expansionError := resolver.homeExpander.Expand(configuredBaseDirectory)
	if expansionError != nil {
		return "", expansionError
	}
	absoluteBaseDirectory, absoluteError := filepath.Abs(expandedBaseDirectory)
	if absoluteError != nil {
		return "", fmt.Errorf(baseDirectoryResolutionErrorTemplateConst, expandedBaseDirectory, absoluteError)
	}
	return absoluteBaseDirectory, nil
}
