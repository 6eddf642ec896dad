// Package walker implements the recursive dependency walk from page entry files
// over component-import edges. Each file moves through unvisited → visiting →
// completed; visiting membership detects cycles on the active recursion path, while
// completed results are memoized for the whole pass so shared components are
// analyzed once regardless of how many pages import them.
package walker

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/apimap/internal/detect"
	"github.com/temirov/apimap/internal/resolve"
	"github.com/temirov/apimap/internal/types"
)

const (
	unreadableFileMessage = "file contributes no endpoints"
	filePathLogField      = "path"
)

// ReadFileFunc reads one file's content. Tests substitute instrumented readers.
type ReadFileFunc func(filePath string) ([]byte, error)

// Session owns all mutable traversal state for one full pass: the memoization map,
// the visiting set, and the catalog handle. A session is single-threaded and must
// not be shared across concurrent walks.
type Session struct {
	extractor        *detect.Extractor
	resolver         resolve.Resolver
	detectionContext detect.Context
	readFile         ReadFileFunc
	logger           *zap.Logger

	completed map[string]*types.DescriptorSet
	visiting  map[string]struct{}
}

// NewSession constructs a fresh session. A nil reader defaults to os.ReadFile.
func NewSession(extractor *detect.Extractor, resolver resolve.Resolver, detectionContext detect.Context, readFile ReadFileFunc, logger *zap.Logger) *Session {
	if readFile == nil {
		readFile = os.ReadFile
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		extractor:        extractor,
		resolver:         resolver,
		detectionContext: detectionContext,
		readFile:         readFile,
		logger:           logger,
		completed:        map[string]*types.DescriptorSet{},
		visiting:         map[string]struct{}{},
	}
}

// Walk returns every endpoint descriptor reachable from filePath, directly or through
// transitively imported components. The returned set is shared with the memoization
// map and must be treated as read-only.
//
// A cyclic re-entry returns the empty set without writing the memoization map; the
// file's complete result is still written exactly once when its outermost visit
// unwinds. A descriptor reachable only through a cyclic edge may therefore be
// under-counted depending on traversal order. That is the accepted cost of cheap
// cycle breaking; the walk is best-effort reachability, not a fixpoint computation.
func (session *Session) Walk(filePath string) *types.DescriptorSet {
	cleanPath := filepath.Clean(filePath)

	if memoizedSet, isCompleted := session.completed[cleanPath]; isCompleted {
		return memoizedSet
	}
	if _, onCurrentPath := session.visiting[cleanPath]; onCurrentPath {
		return types.NewDescriptorSet()
	}

	fileContent, readError := session.readFile(cleanPath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return types.NewDescriptorSet()
		}
		// Unreadable content: complete with an empty set so later cache hits do
		// not re-attempt a doomed read.
		session.logger.Warn(unreadableFileMessage, zap.String(filePathLogField, cleanPath), zap.Error(readError))
		emptySet := types.NewDescriptorSet()
		session.completed[cleanPath] = emptySet
		return emptySet
	}

	session.visiting[cleanPath] = struct{}{}
	defer delete(session.visiting, cleanPath)

	extraction := session.extractor.Extract(string(fileContent), session.detectionContext)
	reachableSet := types.NewDescriptorSet()
	reachableSet.AddAll(extraction.Descriptors)

	for _, importSpecifier := range extraction.ImportSpecifiers {
		componentPath := session.resolver.Resolve(importSpecifier, cleanPath)
		if componentPath == "" {
			continue
		}
		cleanComponentPath := filepath.Clean(componentPath)
		if _, onCurrentPath := session.visiting[cleanComponentPath]; onCurrentPath {
			continue
		}
		reachableSet.Union(session.Walk(cleanComponentPath))
	}

	session.completed[cleanPath] = reachableSet
	return reachableSet
}

// CompletedCount reports how many files have fully computed results.
func (session *Session) CompletedCount() int {
	return len(session.completed)
}
