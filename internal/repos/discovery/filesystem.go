package discovery

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

const filesystemSearchToolNameConstant = "filesystem walk"

// FilesystemRepositoryDiscoverer locates metadata directories on disk without external tools.
type FilesystemRepositoryDiscoverer struct {
	metadataPattern string
}

// NewFilesystemRepositoryDiscoverer constructs a discoverer backed by filepath.WalkDir.
func NewFilesystemRepositoryDiscoverer(metadataPattern string) *FilesystemRepositoryDiscoverer {
	if len(strings.TrimSpace(metadataPattern)) == 0 {
		metadataPattern = DefaultMetadataPattern
	}
	return &FilesystemRepositoryDiscoverer{metadataPattern: metadataPattern}
}

// Search walks root and returns every directory named after the metadata pattern, relative
// to root and terminated by a separator, sorted lexically. Unreadable subtrees are skipped.
func (discoverer *FilesystemRepositoryDiscoverer) Search(executionContext context.Context, root string) ([]string, error) {
	var entries []string

	walkError := filepath.WalkDir(root, func(path string, directoryEntry fs.DirEntry, walkError error) error {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}
		if walkError != nil {
			if path == root {
				return walkError
			}
			return nil
		}

		if !directoryEntry.IsDir() || directoryEntry.Name() != discoverer.metadataPattern || path == root {
			return nil
		}

		relativePath, relativeError := filepath.Rel(root, path)
		if relativeError != nil {
			return nil
		}

		entries = append(entries, filepath.ToSlash(relativePath)+"/")
		return fs.SkipDir
	})
	if walkError != nil {
		return nil, walkError
	}

	sort.Strings(entries)
	return entries, nil
}

// ToolName describes the discoverer in diagnostics.
func (discoverer *FilesystemRepositoryDiscoverer) ToolName() string {
	return filesystemSearchToolNameConstant
}
