// Package catalog builds the per-pass mapping from API module keys to the endpoint
// descriptors those modules declare. Detection is textual and best-effort: it finds
// exported declarations whose body contains a request({...}) call and reads the url
// and method fields out of the call's argument object.
package catalog

import (
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/apimap/internal/types"
	"github.com/temirov/apimap/internal/utils"
)

const (
	requestCallMarker     = "request("
	readFailureMessage    = "skipping unreadable API module"
	filePathLogField      = "path"
	concurrentReadLimit   = 8
	placeholderOpenBrace  = "{"
	placeholderCloseBrace = "}"
)

var (
	// exportedConstantPattern matches a top-level exported name bound to an expression.
	exportedConstantPattern = regexp.MustCompile(`(?m)^\s*export\s+(?:const|let|var)\s+([A-Za-z_$][\w$]*)`)
	// exportedFunctionPattern matches a top-level exported function declaration.
	exportedFunctionPattern = regexp.MustCompile(`(?m)^\s*export\s+(?:default\s+)?(?:async\s+)?function\s+([A-Za-z_$][\w$]*)`)
	// urlFieldPattern captures a quoted url field and an optional trailing identifier concatenation.
	urlFieldPattern = regexp.MustCompile("url\\s*:\\s*['\"`]([^'\"`]*)['\"`]\\s*(?:\\+\\s*([A-Za-z_$][\\w$]*))?")
	// methodFieldPattern captures a quoted method field.
	methodFieldPattern = regexp.MustCompile("method\\s*:\\s*['\"`]([A-Za-z]+)['\"`]")
)

// exportedDeclaration is one exported name with the source region it owns.
type exportedDeclaration struct {
	functionName string
	bodyStart    int
}

// Build parses every listed API definition file and returns the resulting catalog.
// Files that fail to read are logged and skipped; files declaring no endpoints are
// omitted. Reads run concurrently; the walk that later consults the catalog does not.
func Build(apiRootDirectory string, filePaths []string, logger *zap.Logger) (types.Catalog, error) {
	builtCatalog := types.Catalog{}
	var catalogMutex sync.Mutex

	var group errgroup.Group
	group.SetLimit(concurrentReadLimit)
	for _, filePath := range filePaths {
		group.Go(func() error {
			fileContent, readError := os.ReadFile(filePath)
			if readError != nil {
				if logger != nil {
					logger.Warn(readFailureMessage, zap.String(filePathLogField, filePath), zap.Error(readError))
				}
				return nil
			}
			descriptors := ExtractDescriptors(string(fileContent))
			if len(descriptors) == 0 {
				return nil
			}
			moduleKey := ModuleKey(apiRootDirectory, filePath)
			catalogMutex.Lock()
			builtCatalog[moduleKey] = descriptors
			catalogMutex.Unlock()
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}
	return builtCatalog, nil
}

// ModuleKey derives the catalog key for an API definition file: its path relative to
// the API root, extension stripped, separators normalized to forward slashes.
func ModuleKey(apiRootDirectory string, filePath string) string {
	relativePath := utils.RelativePathOrSelf(filePath, apiRootDirectory)
	return utils.StripExtension(utils.NormalizePathSeparators(relativePath))
}

// ExtractDescriptors applies both declaration patterns to one file's text and returns
// the descriptors found, in declaration order. A request call without a url field
// yields nothing; a missing method defaults to GET.
func ExtractDescriptors(fileText string) []types.EndpointDescriptor {
	declarations := collectExportedDeclarations(fileText)
	var descriptors []types.EndpointDescriptor
	for declarationIndex, declaration := range declarations {
		bodyEnd := len(fileText)
		if declarationIndex+1 < len(declarations) {
			bodyEnd = declarations[declarationIndex+1].bodyStart
		}
		declarationBody := fileText[declaration.bodyStart:bodyEnd]
		for _, callArgument := range requestCallArguments(declarationBody) {
			descriptor, found := descriptorFromCallArgument(callArgument, declaration.functionName)
			if found {
				descriptors = append(descriptors, descriptor)
			}
		}
	}
	return descriptors
}

// collectExportedDeclarations finds every exported constant or function declaration
// and orders them by position so each owns the text up to the next declaration.
func collectExportedDeclarations(fileText string) []exportedDeclaration {
	var declarations []exportedDeclaration
	for _, match := range exportedConstantPattern.FindAllStringSubmatchIndex(fileText, -1) {
		declarations = append(declarations, exportedDeclaration{
			functionName: fileText[match[2]:match[3]],
			bodyStart:    match[0],
		})
	}
	for _, match := range exportedFunctionPattern.FindAllStringSubmatchIndex(fileText, -1) {
		declarations = append(declarations, exportedDeclaration{
			functionName: fileText[match[2]:match[3]],
			bodyStart:    match[0],
		})
	}
	sort.Slice(declarations, func(left int, right int) bool {
		return declarations[left].bodyStart < declarations[right].bodyStart
	})
	return declarations
}

// requestCallArguments returns the brace-balanced object argument of every
// request({...}) call inside the declaration body.
func requestCallArguments(declarationBody string) []string {
	var callArguments []string
	searchOffset := 0
	for {
		markerIndex := indexFrom(declarationBody, requestCallMarker, searchOffset)
		if markerIndex < 0 {
			return callArguments
		}
		objectStart := markerIndex + len(requestCallMarker)
		for objectStart < len(declarationBody) && isInsignificantByte(declarationBody[objectStart]) {
			objectStart++
		}
		if objectStart >= len(declarationBody) || declarationBody[objectStart] != '{' {
			searchOffset = objectStart
			continue
		}
		objectEnd := matchingBraceEnd(declarationBody, objectStart)
		if objectEnd < 0 {
			return callArguments
		}
		callArguments = append(callArguments, declarationBody[objectStart+1:objectEnd])
		searchOffset = objectEnd + 1
	}
}

func indexFrom(text string, marker string, offset int) int {
	if offset >= len(text) {
		return -1
	}
	foundIndex := strings.Index(text[offset:], marker)
	if foundIndex < 0 {
		return -1
	}
	return offset + foundIndex
}

func isInsignificantByte(candidate byte) bool {
	return candidate == ' ' || candidate == '\t' || candidate == '\n' || candidate == '\r'
}

// matchingBraceEnd scans from an opening brace to its balanced closing brace,
// skipping braces inside single, double, or backtick quoted strings.
func matchingBraceEnd(text string, openIndex int) int {
	depth := 0
	var activeQuote byte
	for position := openIndex; position < len(text); position++ {
		currentByte := text[position]
		if activeQuote != 0 {
			if currentByte == '\\' {
				position++
				continue
			}
			if currentByte == activeQuote {
				activeQuote = 0
			}
			continue
		}
		switch currentByte {
		case '\'', '"', '`':
			activeQuote = currentByte
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return position
			}
		}
	}
	return -1
}

// descriptorFromCallArgument reads the url and method fields out of one request call
// argument. A trailing identifier concatenation on the url is rewritten to a
// placeholder segment named after the identifier.
func descriptorFromCallArgument(callArgument string, functionName string) (types.EndpointDescriptor, bool) {
	urlMatch := urlFieldPattern.FindStringSubmatch(callArgument)
	if urlMatch == nil || urlMatch[1] == "" {
		return types.EndpointDescriptor{}, false
	}
	url := urlMatch[1]
	if urlMatch[2] != "" {
		url += placeholderOpenBrace + urlMatch[2] + placeholderCloseBrace
	}
	method := types.MethodGet
	if methodMatch := methodFieldPattern.FindStringSubmatch(callArgument); methodMatch != nil {
		method = types.NormalizeMethod(methodMatch[1])
	}
	return types.EndpointDescriptor{URL: url, Method: method, FunctionName: functionName}, true
}
