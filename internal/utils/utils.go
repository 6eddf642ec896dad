// Package utils contains general helper functions used across the apimap tool.
package utils

import (
	"path/filepath"
	"strings"
)

const pathSegmentSeparator = "/"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// NormalizePathSeparators converts a platform path to forward-slash form.
func NormalizePathSeparators(path string) string {
	return strings.ReplaceAll(path, string(filepath.Separator), pathSegmentSeparator)
}

// RelativePathOrSelf calculates the relative path from root to fullPath in
// forward-slash form. Returns the cleaned fullPath if relative calculation fails.
func RelativePathOrSelf(fullPath string, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absolutePath, absolutePathError := filepath.Abs(cleanPath)
	if absolutePathError != nil {
		return cleanPath
	}
	absoluteRoot, absoluteRootError := filepath.Abs(root)
	if absoluteRootError != nil {
		return cleanPath
	}
	relativePath, relativeError := filepath.Rel(filepath.Clean(absoluteRoot), absolutePath)
	if relativeError != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// StripExtension removes the final extension from a path, if any.
func StripExtension(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
