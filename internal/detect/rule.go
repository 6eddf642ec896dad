// Package detect interprets one source file's text into endpoint descriptors and
// import specifiers. Detection rules are pluggable so the traversal algorithm stays
// independent of how a single file's content is read; every rule is textual and
// best-effort by contract.
package detect

import (
	"github.com/temirov/apimap/internal/types"
)

// Context carries the read-only per-pass inputs a rule may consult.
type Context struct {
	// Catalog resolves imported-and-invoked function names to their descriptors.
	Catalog types.Catalog
	// APIRootSegment is the path segment identifying API-module imports, e.g. "api".
	APIRootSegment string
}

// Rule detects endpoint descriptors directly referenced by one file's text.
type Rule interface {
	Name() string
	Detect(fileText string, detectionContext Context) []types.EndpointDescriptor
}

// Extraction is the combined result of running every rule against one file.
type Extraction struct {
	// Descriptors are the endpoints the file references directly.
	Descriptors []types.EndpointDescriptor
	// ImportSpecifiers are every raw import specifier seen in the file.
	ImportSpecifiers []string
}

// Extractor runs a fixed rule list over file text. All rules are additive: a file may
// contribute descriptors from more than one rule.
type Extractor struct {
	rules []Rule
}

// NewExtractor returns an extractor with the standard rule set: URL literals,
// grouped API imports, and single-name API imports.
func NewExtractor() *Extractor {
	return &Extractor{rules: []Rule{
		URLLiteralRule{},
		GroupedImportRule{},
		SingleImportRule{},
	}}
}

// NewExtractorWithRules returns an extractor running exactly the provided rules.
func NewExtractorWithRules(rules ...Rule) *Extractor {
	return &Extractor{rules: rules}
}

// Extract applies every rule to the file text and collects all raw import
// specifiers for the caller to resolve.
func (extractor *Extractor) Extract(fileText string, detectionContext Context) Extraction {
	var result Extraction
	for _, rule := range extractor.rules {
		result.Descriptors = append(result.Descriptors, rule.Detect(fileText, detectionContext)...)
	}
	result.ImportSpecifiers = scanImportSpecifiers(fileText)
	return result
}
