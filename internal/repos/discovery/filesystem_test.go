package discovery_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repostat/internal/repos/discovery"
)

const (
	developerDirectoryName             = "Dev"
	engineeringGroupDirectoryName      = "Group1"
	applicationRepositoryDirectoryName = "Repo1"
	serviceRepositoryDirectoryName     = "Repo2"
	toolsRepositoryDirectoryName       = "Repo3"
	hiddenRepositoryDirectoryName      = ".dotfiles"
	gitMetadataDirectoryName           = ".git"
	githubMetadataDirectoryName        = ".github"
	repositoryDirectoryPermissions     = 0o755
)

type repositoryDefinition struct {
	directorySegments []string
}

func (definition repositoryDefinition) gitMetadataPath(rootDirectory string) string {
	segments := append([]string{rootDirectory}, definition.directorySegments...)
	segments = append(segments, gitMetadataDirectoryName)
	return filepath.Join(segments...)
}

func (definition repositoryDefinition) expectedEntry() string {
	return filepath.ToSlash(filepath.Join(definition.directorySegments...)) + "/" + gitMetadataDirectoryName + "/"
}

func TestFilesystemRepositoryDiscovererRendersSearchUtilityEntries(testInstance *testing.T) {
	repositoryDefinitions := []repositoryDefinition{
		{directorySegments: []string{developerDirectoryName, engineeringGroupDirectoryName, applicationRepositoryDirectoryName}},
		{directorySegments: []string{developerDirectoryName, engineeringGroupDirectoryName, serviceRepositoryDirectoryName}},
		{directorySegments: []string{developerDirectoryName, toolsRepositoryDirectoryName}},
		{directorySegments: []string{hiddenRepositoryDirectoryName}},
	}

	temporaryRootDirectory := testInstance.TempDir()
	expectedEntries := make([]string, 0, len(repositoryDefinitions))
	for _, definition := range repositoryDefinitions {
		creationError := os.MkdirAll(filepath.Join(definition.gitMetadataPath(temporaryRootDirectory), "objects"), repositoryDirectoryPermissions)
		require.NoError(testInstance, creationError)
		expectedEntries = append(expectedEntries, definition.expectedEntry())
	}

	githubDirectoryPath := filepath.Join(temporaryRootDirectory, toolsRepositoryDirectoryName, githubMetadataDirectoryName)
	require.NoError(testInstance, os.MkdirAll(githubDirectoryPath, repositoryDirectoryPermissions))
	gitFilePath := filepath.Join(temporaryRootDirectory, "worktree", gitMetadataDirectoryName)
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(gitFilePath), repositoryDirectoryPermissions))
	require.NoError(testInstance, os.WriteFile(gitFilePath, []byte("gitdir: elsewhere\n"), 0o600))

	discoverer := discovery.NewFilesystemRepositoryDiscoverer("")
	entries, searchError := discoverer.Search(context.Background(), temporaryRootDirectory)
	require.NoError(testInstance, searchError)

	require.ElementsMatch(testInstance, expectedEntries, entries)
	require.IsIncreasing(testInstance, entries)
}

func TestFilesystemRepositoryDiscovererReturnsNoEntriesForEmptyRoot(testInstance *testing.T) {
	discoverer := discovery.NewFilesystemRepositoryDiscoverer(gitMetadataDirectoryName)
	entries, searchError := discoverer.Search(context.Background(), testInstance.TempDir())
	require.NoError(testInstance, searchError)
	require.Empty(testInstance, entries)
}

func TestFilesystemRepositoryDiscovererFailsForMissingRoot(testInstance *testing.T) {
	discoverer := discovery.NewFilesystemRepositoryDiscoverer(gitMetadataDirectoryName)
	_, searchError := discoverer.Search(context.Background(), filepath.Join(testInstance.TempDir(), "missing"))
	require.Error(testInstance, searchError)
}

func TestFilesystemRepositoryDiscovererHonorsCancellation(testInstance *testing.T) {
	temporaryRootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.MkdirAll(filepath.Join(temporaryRootDirectory, applicationRepositoryDirectoryName, gitMetadataDirectoryName), repositoryDirectoryPermissions))

	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	discoverer := discovery.NewFilesystemRepositoryDiscoverer(gitMetadataDirectoryName)
	_, searchError := discoverer.Search(cancelledContext, temporaryRootDirectory)
	require.ErrorIs(testInstance, searchError, context.Canceled)
}
