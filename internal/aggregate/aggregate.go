// Package aggregate groups per-entry walk results into the hierarchical output tree.
package aggregate

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/apimap/internal/types"
	"github.com/temirov/apimap/internal/utils"
)

// CategoryResult holds one category's endpoints, either as a single flat array or
// nested per page. Exactly one of the two forms is populated.
type CategoryResult struct {
	Flat  []types.EndpointDescriptor
	Pages map[string][]types.EndpointDescriptor
}

// MarshalJSON emits the flat array or the page mapping, matching the artifact shape
// `{category: [...]}` or `{category: {page: [...]}}`.
func (result CategoryResult) MarshalJSON() ([]byte, error) {
	if result.Pages != nil {
		return json.Marshal(result.Pages)
	}
	return json.Marshal(result.Flat)
}

// OutputTree maps category labels to their results.
type OutputTree map[string]CategoryResult

// EntryLabels derives the category and page labels from the entry file's position
// under the pages root. The second return value is false when the entry does not
// reside under the pages root; such entries are silently skipped.
func EntryLabels(pagesRootDirectory string, entryPath string) (string, string, bool) {
	relativePath := utils.RelativePathOrSelf(entryPath, pagesRootDirectory)
	if filepath.IsAbs(relativePath) || strings.HasPrefix(relativePath, "..") {
		return "", "", false
	}
	segments := strings.Split(relativePath, types.ModuleKeySeparator)
	switch {
	case len(segments) == 1:
		fileStem := utils.StripExtension(segments[0])
		category := fileStem
		if fileStem == types.IndexFileStem {
			category = types.RootPageLabel
		}
		return category, types.RootPageLabel, true
	case len(segments) == 2:
		return segments[0], segments[0], true
	default:
		return segments[0], segments[0] + types.ModuleKeySeparator + segments[1], true
	}
}

// Aggregate groups entry results by category, flattens categories whose only pages
// collapse to the root or to the category label, deduplicates serialized identities,
// and sorts every array ascending by (url, method).
func Aggregate(entryResults []types.EntryResult) (OutputTree, types.ScanSummary) {
	categoryPages := map[string]map[string]*types.DescriptorSet{}
	for _, entryResult := range entryResults {
		pages := categoryPages[entryResult.Category]
		if pages == nil {
			pages = map[string]*types.DescriptorSet{}
			categoryPages[entryResult.Category] = pages
		}
		pageSet := pages[entryResult.Page]
		if pageSet == nil {
			pageSet = types.NewDescriptorSet()
			pages[entryResult.Page] = pageSet
		}
		pageSet.Union(entryResult.Descriptors)
	}

	tree := OutputTree{}
	var summary types.ScanSummary
	for category, pages := range categoryPages {
		summary.CategoryCount++
		summary.PageCount += len(pages)
		if shouldFlatten(category, pages) {
			mergedSet := types.NewDescriptorSet()
			for _, pageSet := range pages {
				mergedSet.Union(pageSet)
			}
			flatEndpoints := sortedUniqueEndpoints(mergedSet)
			summary.EndpointCount += len(flatEndpoints)
			tree[category] = CategoryResult{Flat: flatEndpoints}
			continue
		}
		nestedPages := map[string][]types.EndpointDescriptor{}
		for page, pageSet := range pages {
			pageEndpoints := sortedUniqueEndpoints(pageSet)
			summary.EndpointCount += len(pageEndpoints)
			nestedPages[page] = pageEndpoints
		}
		tree[category] = CategoryResult{Pages: nestedPages}
	}
	return tree, summary
}

// shouldFlatten reports whether every page under the category collapses to a single
// flat array: all pages are the root label or repeat the category label.
func shouldFlatten(category string, pages map[string]*types.DescriptorSet) bool {
	for page := range pages {
		if page != types.RootPageLabel && page != category {
			return false
		}
	}
	return true
}

// sortedUniqueEndpoints reduces a descriptor set to its serialized identity
// (url, method), sorted ascending by url then method.
func sortedUniqueEndpoints(descriptorSet *types.DescriptorSet) []types.EndpointDescriptor {
	uniqueByIdentity := map[string]types.EndpointDescriptor{}
	for _, descriptor := range descriptorSet.Members() {
		identity := descriptor.URL + "\x00" + descriptor.Method
		if _, exists := uniqueByIdentity[identity]; !exists {
			uniqueByIdentity[identity] = types.EndpointDescriptor{URL: descriptor.URL, Method: descriptor.Method}
		}
	}
	endpoints := make([]types.EndpointDescriptor, 0, len(uniqueByIdentity))
	for _, descriptor := range uniqueByIdentity {
		endpoints = append(endpoints, descriptor)
	}
	sort.Slice(endpoints, func(left int, right int) bool {
		return endpoints[left].Less(endpoints[right])
	})
	return endpoints
}
