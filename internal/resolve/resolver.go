// Package resolve turns raw import specifiers into candidate component file paths.
package resolve

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/apimap/internal/types"
)

const (
	relativeCurrentPrefix = "./"
	relativeParentPrefix  = "../"
)

// Resolver maps import specifiers to component files using the configured alias
// table, the component-root directories, and the pages root. A failed resolution is
// not an error: many specifiers legitimately refer to non-component modules.
type Resolver struct {
	// ComponentExtension is the component file extension, including the leading dot.
	ComponentExtension string
	// ComponentAliases maps an import-prefix string to a component root directory.
	ComponentAliases map[string]string
	// PagesAlias is the import prefix addressing files under the pages root.
	PagesAlias string
	// PagesRootDirectory is the directory holding page entry files.
	PagesRootDirectory string
}

// Resolve returns the candidate component file for the specifier, or the empty string
// when the specifier does not address a component. Resolution order: relative
// specifiers against the importing file's directory, then component-root aliases,
// then the pages-root alias. The first candidate that exists on disk wins.
func (resolver Resolver) Resolve(importSpecifier string, currentFilePath string) string {
	if importSpecifier == "" {
		return ""
	}
	if resolver.isRelativeComponentSpecifier(importSpecifier) {
		return filepath.Join(filepath.Dir(currentFilePath), filepath.FromSlash(importSpecifier))
	}
	for _, aliasPrefix := range resolver.orderedComponentAliases() {
		remainder, matched := matchAlias(importSpecifier, aliasPrefix)
		if !matched {
			continue
		}
		if candidate := resolver.firstExistingCandidate(resolver.ComponentAliases[aliasPrefix], remainder); candidate != "" {
			return candidate
		}
	}
	if resolver.PagesAlias != "" {
		if remainder, matched := matchAlias(importSpecifier, resolver.PagesAlias); matched {
			return resolver.firstExistingCandidate(resolver.PagesRootDirectory, remainder)
		}
	}
	return ""
}

func (resolver Resolver) isRelativeComponentSpecifier(importSpecifier string) bool {
	if !strings.HasPrefix(importSpecifier, relativeCurrentPrefix) && !strings.HasPrefix(importSpecifier, relativeParentPrefix) {
		return false
	}
	return strings.HasSuffix(importSpecifier, resolver.ComponentExtension)
}

// orderedComponentAliases returns alias prefixes longest first so the most specific
// prefix claims a specifier.
func (resolver Resolver) orderedComponentAliases() []string {
	aliasPrefixes := make([]string, 0, len(resolver.ComponentAliases))
	for aliasPrefix := range resolver.ComponentAliases {
		aliasPrefixes = append(aliasPrefixes, aliasPrefix)
	}
	sort.Slice(aliasPrefixes, func(left int, right int) bool {
		if len(aliasPrefixes[left]) != len(aliasPrefixes[right]) {
			return len(aliasPrefixes[left]) > len(aliasPrefixes[right])
		}
		return aliasPrefixes[left] < aliasPrefixes[right]
	})
	return aliasPrefixes
}

// matchAlias reports whether the specifier is the alias itself or a path beneath it,
// returning the remainder after the alias.
func matchAlias(importSpecifier string, aliasPrefix string) (string, bool) {
	if importSpecifier == aliasPrefix {
		return "", true
	}
	withSeparator := aliasPrefix + types.ModuleKeySeparator
	if strings.HasPrefix(importSpecifier, withSeparator) {
		return strings.TrimPrefix(importSpecifier, withSeparator), true
	}
	return "", false
}

// firstExistingCandidate tries an index file inside a directory named after the
// remainder, then the remainder with the component extension appended, then the
// remainder verbatim when it already carries the extension.
func (resolver Resolver) firstExistingCandidate(rootDirectory string, remainder string) string {
	if rootDirectory == "" || remainder == "" {
		return ""
	}
	remainderPath := filepath.FromSlash(remainder)
	candidates := []string{
		filepath.Join(rootDirectory, remainderPath, types.IndexFileStem+resolver.ComponentExtension),
		filepath.Join(rootDirectory, remainderPath+resolver.ComponentExtension),
	}
	if strings.HasSuffix(remainder, resolver.ComponentExtension) {
		candidates = append(candidates, filepath.Join(rootDirectory, remainderPath))
	}
	for _, candidatePath := range candidates {
		if fileInfo, statError := os.Stat(candidatePath); statError == nil && !fileInfo.IsDir() {
			return candidatePath
		}
	}
	return ""
}
