package detect

import (
	"regexp"
	"strings"

	"github.com/temirov/apimap/internal/types"
	"github.com/temirov/apimap/internal/utils"
)

const (
	groupedImportRuleName = "grouped-import"
	singleImportRuleName  = "single-import"
	importAliasKeyword    = "as"
)

var (
	// groupedImportPattern matches `import { a, b as c } from 'specifier'`.
	groupedImportPattern = regexp.MustCompile(`import\s*\{([^}]+)\}\s*from\s*['"]([^'"]+)['"]`)
	// singleImportPattern matches `import name from 'specifier'`.
	singleImportPattern = regexp.MustCompile(`import\s+([A-Za-z_$][\w$]*)\s+from\s*['"]([^'"]+)['"]`)
	// anyImportPattern captures the specifier of any static import with bindings.
	anyImportPattern = regexp.MustCompile(`import\s+[^'";]*?from\s*['"]([^'"]+)['"]`)
	// bareImportPattern captures side-effect imports without bindings.
	bareImportPattern = regexp.MustCompile(`import\s*['"]([^'"]+)['"]`)
)

// importBinding is one name pulled in by an import statement. ImportedName is the
// name as declared by the source module; LocalName is the name used in this file.
type importBinding struct {
	ImportedName string
	LocalName    string
}

// GroupedImportRule resolves names pulled from an API module via a grouped import.
// Only names that are also invoked somewhere in the text contribute descriptors.
type GroupedImportRule struct{}

// Name identifies the rule in logs.
func (GroupedImportRule) Name() string { return groupedImportRuleName }

// Detect looks up imported-and-invoked names in the catalog.
func (GroupedImportRule) Detect(fileText string, detectionContext Context) []types.EndpointDescriptor {
	var descriptors []types.EndpointDescriptor
	for _, match := range groupedImportPattern.FindAllStringSubmatch(fileText, -1) {
		moduleKey, isAPIImport := moduleKeyFromSpecifier(match[2], detectionContext.APIRootSegment)
		if !isAPIImport {
			continue
		}
		for _, binding := range parseImportBindings(match[1]) {
			descriptors = appendInvokedBinding(descriptors, fileText, binding, moduleKey, detectionContext.Catalog)
		}
	}
	return descriptors
}

// SingleImportRule resolves a default-imported API function name, under the same
// invocation requirement as grouped imports.
type SingleImportRule struct{}

// Name identifies the rule in logs.
func (SingleImportRule) Name() string { return singleImportRuleName }

// Detect looks up the single imported name in the catalog when it is invoked.
func (SingleImportRule) Detect(fileText string, detectionContext Context) []types.EndpointDescriptor {
	var descriptors []types.EndpointDescriptor
	for _, match := range singleImportPattern.FindAllStringSubmatch(fileText, -1) {
		moduleKey, isAPIImport := moduleKeyFromSpecifier(match[2], detectionContext.APIRootSegment)
		if !isAPIImport {
			continue
		}
		binding := importBinding{ImportedName: match[1], LocalName: match[1]}
		descriptors = appendInvokedBinding(descriptors, fileText, binding, moduleKey, detectionContext.Catalog)
	}
	return descriptors
}

// appendInvokedBinding appends the catalog descriptor for a binding when the local
// name is invoked in the text. Importing without calling contributes nothing.
func appendInvokedBinding(descriptors []types.EndpointDescriptor, fileText string, binding importBinding, moduleKey string, moduleCatalog types.Catalog) []types.EndpointDescriptor {
	if !isNameInvoked(fileText, binding.LocalName) {
		return descriptors
	}
	descriptor, found := moduleCatalog.Lookup(moduleKey, binding.ImportedName)
	if !found {
		return descriptors
	}
	return append(descriptors, descriptor)
}

// parseImportBindings splits the body of a grouped import into bindings, honoring
// `original as local` renames.
func parseImportBindings(groupBody string) []importBinding {
	var bindings []importBinding
	for _, rawBinding := range strings.Split(groupBody, ",") {
		fields := strings.Fields(rawBinding)
		switch {
		case len(fields) == 1:
			bindings = append(bindings, importBinding{ImportedName: fields[0], LocalName: fields[0]})
		case len(fields) == 3 && fields[1] == importAliasKeyword:
			bindings = append(bindings, importBinding{ImportedName: fields[0], LocalName: fields[2]})
		}
	}
	return bindings
}

// isNameInvoked reports whether the name appears as a function call in the text.
func isNameInvoked(fileText string, localName string) bool {
	if localName == "" {
		return false
	}
	invocationPattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(localName) + `\s*\(`)
	return invocationPattern.MatchString(fileText)
}

// moduleKeyFromSpecifier derives the catalog module key from an import path that
// contains the API-root segment: everything after the first occurrence of that
// segment, extension stripped.
func moduleKeyFromSpecifier(importSpecifier string, apiRootSegment string) (string, bool) {
	if apiRootSegment == "" {
		return "", false
	}
	segments := strings.Split(importSpecifier, types.ModuleKeySeparator)
	for segmentIndex, segment := range segments {
		if segment != apiRootSegment || segmentIndex+1 >= len(segments) {
			continue
		}
		moduleKey := strings.Join(segments[segmentIndex+1:], types.ModuleKeySeparator)
		return utils.StripExtension(moduleKey), true
	}
	return "", false
}

// regexImportSpecifiers collects every raw import specifier in the text, including
// side-effect imports, preserving first-seen order without duplicates.
func regexImportSpecifiers(fileText string) []string {
	seenSpecifiers := map[string]struct{}{}
	var specifiers []string
	appendSpecifier := func(specifier string) {
		if specifier == "" {
			return
		}
		if _, exists := seenSpecifiers[specifier]; exists {
			return
		}
		seenSpecifiers[specifier] = struct{}{}
		specifiers = append(specifiers, specifier)
	}
	for _, match := range anyImportPattern.FindAllStringSubmatch(fileText, -1) {
		appendSpecifier(match[1])
	}
	for _, match := range bareImportPattern.FindAllStringSubmatch(fileText, -1) {
		appendSpecifier(match[1])
	}
	return specifiers
}
