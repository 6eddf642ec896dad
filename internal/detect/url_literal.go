package detect

import (
	"regexp"

	"github.com/temirov/apimap/internal/types"
)

const urlLiteralRuleName = "url-literal"

// urlLiteralPattern matches a quoted url field anywhere in the text.
var urlLiteralPattern = regexp.MustCompile("url\\s*:\\s*['\"`]([^'\"`]+)['\"`]")

// URLLiteralRule detects literal url fields. The surrounding call is unknown to the
// rule, so the method is always reported as UNKNOWN.
type URLLiteralRule struct{}

// Name identifies the rule in logs.
func (URLLiteralRule) Name() string { return urlLiteralRuleName }

// Detect returns one descriptor per url literal occurrence.
func (URLLiteralRule) Detect(fileText string, detectionContext Context) []types.EndpointDescriptor {
	var descriptors []types.EndpointDescriptor
	for _, match := range urlLiteralPattern.FindAllStringSubmatch(fileText, -1) {
		descriptors = append(descriptors, types.EndpointDescriptor{
			URL:    match[1],
			Method: types.MethodUnknown,
		})
	}
	return descriptors
}
