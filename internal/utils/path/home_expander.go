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
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = tildeSymbolConstant + "/"
	emptyHomeDirectoryMessage       = "home directory is empty"
)

// HomeDirectoryProvider resolves the current user's home directory.
type HomeDirectoryProvider func() (string, error)

// HomeExpander replaces a leading ~ with the home directory, looking it up at most once.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	lookupGuard           sync.Once
}

// NewHomeExpander constructs a HomeExpander using the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand resolves a leading ~ or ~/ and fails with ErrHomeDirectoryUnavailable
// when the path needs the home directory and it cannot be determined. Paths such as
// ~user are returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) (string, error) {
	relativePath, referencesHome := splitHomeReference(candidatePath)
	if expander == nil || !referencesHome {
		return candidatePath, nil
	}

	homeDirectory, homeDirectoryError := expander.HomeDirectory()
	if homeDirectoryError != nil {
		return "", homeDirectoryError
	}
	return filepath.Join(homeDirectory, relativePath), nil
}

// HomeDirectory reports the home directory, wrapping lookup failures in ErrHomeDirectoryUnavailable.
func (expander *HomeExpander) HomeDirectory() (string, error) {
	expander.lookupGuard.Do(func() {
		homeDirectory, lookupError := expander.homeDirectoryProvider()
		if lookupError == nil && len(strings.TrimSpace(homeDirectory)) == 0 {
			lookupError = errors.New(emptyHomeDirectoryMessage)
		}
		if lookupError != nil {
			expander.homeDirectoryError = fmt.Errorf(homeDirectoryUnavailableTemplateConstant, ErrHomeDirectoryUnavailable, lookupError)
			return
		}
		expander.homeDirectory = homeDirectory
	})
	return expander.homeDirectory, expander.homeDirectoryError
}

func splitHomeReference(candidatePath string) (string, bool) {
	switch {
	case candidatePath == tildeSymbolConstant:
		return "", true
	case strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant):
		return strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant), true
	case os.PathSeparator != '/' && strings.HasPrefix(candidatePath, tildeSymbolConstant+string(os.PathSeparator)):
		return strings.TrimPrefix(candidatePath, tildeSymbolConstant+string(os.PathSeparator)), true
	default:
		return "", false
	}
}
