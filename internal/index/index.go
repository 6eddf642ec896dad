// Package index enumerates candidate source files under configured roots.
package index

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/apimap/internal/utils"
)

// Filter describes which files a listing keeps.
type Filter struct {
	// Extensions is the allow-list of file extensions, including the leading dot.
	Extensions []string
	// Exclude drops any path containing one of these substrings.
	Exclude []string
	// Include, when non-empty, keeps only paths containing at least one of these substrings.
	Include []string
}

// List walks rootDirectory recursively and returns the paths accepted by the filter,
// in deterministic directory order. A missing root yields an empty listing, not an
// error. Symbolic links to directories are followed once; directory identities are
// tracked so cyclic links cannot recurse forever.
func List(rootDirectory string, filter Filter) ([]string, error) {
	rootInfo, statError := os.Stat(rootDirectory)
	if statError != nil || !rootInfo.IsDir() {
		return nil, nil
	}
	visitedDirectories := map[string]struct{}{}
	var accepted []string
	walkError := listDirectory(rootDirectory, filter, visitedDirectories, &accepted)
	if walkError != nil {
		return nil, walkError
	}
	return accepted, nil
}

func listDirectory(directory string, filter Filter, visitedDirectories map[string]struct{}, accepted *[]string) error {
	directoryIdentity, identityError := filepath.EvalSymlinks(directory)
	if identityError != nil {
		return nil
	}
	if _, alreadyVisited := visitedDirectories[directoryIdentity]; alreadyVisited {
		return nil
	}
	visitedDirectories[directoryIdentity] = struct{}{}

	entries, readError := os.ReadDir(directory)
	if readError != nil {
		return nil
	}
	for _, entry := range entries {
		entryPath := filepath.Join(directory, entry.Name())
		isDirectory := entry.IsDir()
		if !isDirectory && entry.Type()&os.ModeSymlink != 0 {
			if targetInfo, targetError := os.Stat(entryPath); targetError == nil {
				isDirectory = targetInfo.IsDir()
			}
		}
		if isDirectory {
			if descendError := listDirectory(entryPath, filter, visitedDirectories, accepted); descendError != nil {
				return descendError
			}
			continue
		}
		if accepts(entryPath, filter) {
			*accepted = append(*accepted, entryPath)
		}
	}
	return nil
}

// accepts applies the extension allow-list, exclude substrings, and include substrings
// to one candidate path, in that order.
func accepts(path string, filter Filter) bool {
	if len(filter.Extensions) > 0 && !utils.ContainsString(filter.Extensions, filepath.Ext(path)) {
		return false
	}
	normalizedPath := utils.NormalizePathSeparators(path)
	for _, excludeSubstring := range filter.Exclude {
		if excludeSubstring != "" && strings.Contains(normalizedPath, excludeSubstring) {
			return false
		}
	}
	if len(filter.Include) == 0 {
		return true
	}
	for _, includeSubstring := range filter.Include {
		if includeSubstring != "" && strings.Contains(normalizedPath, includeSubstring) {
			return true
		}
	}
	return false
}
