// Package types defines every cross-package data structure used by the apimap CLI.
package types

import "strings"

const (
	// MethodUnknown marks a descriptor whose HTTP method could not be determined.
	MethodUnknown = "UNKNOWN"
	// MethodGet is the default method applied when a request omits one.
	MethodGet = "GET"

	// IndexFileStem is the file stem treated as a directory index.
	IndexFileStem = "index"
	// RootPageLabel labels the page of a top-level entry file.
	RootPageLabel = "/"

	// ModuleKeySeparator joins segments of a catalog module key.
	ModuleKeySeparator = "/"
)

// knownHTTPMethods enumerates the verbs a descriptor may carry besides MethodUnknown.
var knownHTTPMethods = map[string]struct{}{
	"GET":     {},
	"POST":    {},
	"PUT":     {},
	"PATCH":   {},
	"DELETE":  {},
	"HEAD":    {},
	"OPTIONS": {},
}

// EndpointDescriptor records one detected backend call. FunctionName identifies the
// API-module function that declares the call; it is internal and never serialized.
type EndpointDescriptor struct {
	URL          string `json:"url"`
	Method       string `json:"method"`
	FunctionName string `json:"-"`
}

// Key returns the structural identity used for deduplication.
func (descriptor EndpointDescriptor) Key() string {
	return descriptor.URL + "\x00" + descriptor.Method + "\x00" + descriptor.FunctionName
}

// Less orders descriptors ascending by URL, then by method.
func (descriptor EndpointDescriptor) Less(other EndpointDescriptor) bool {
	if descriptor.URL != other.URL {
		return descriptor.URL < other.URL
	}
	return descriptor.Method < other.Method
}

// NormalizeMethod uppercases a raw method string and substitutes MethodUnknown for
// values outside the known verb set. An empty method defaults to MethodGet.
func NormalizeMethod(rawMethod string) string {
	trimmedMethod := strings.TrimSpace(rawMethod)
	if trimmedMethod == "" {
		return MethodGet
	}
	upperMethod := strings.ToUpper(trimmedMethod)
	if _, known := knownHTTPMethods[upperMethod]; !known {
		return MethodUnknown
	}
	return upperMethod
}

// DescriptorSet accumulates endpoint descriptors with structural deduplication.
type DescriptorSet struct {
	members map[string]EndpointDescriptor
}

// NewDescriptorSet returns an empty descriptor set.
func NewDescriptorSet() *DescriptorSet {
	return &DescriptorSet{members: map[string]EndpointDescriptor{}}
}

// Add inserts a descriptor, keeping the first occurrence of each structural identity.
func (set *DescriptorSet) Add(descriptor EndpointDescriptor) {
	if _, exists := set.members[descriptor.Key()]; exists {
		return
	}
	set.members[descriptor.Key()] = descriptor
}

// AddAll inserts every descriptor from the slice.
func (set *DescriptorSet) AddAll(descriptors []EndpointDescriptor) {
	for _, descriptor := range descriptors {
		set.Add(descriptor)
	}
}

// Union inserts every member of the other set.
func (set *DescriptorSet) Union(other *DescriptorSet) {
	if other == nil {
		return
	}
	for _, descriptor := range other.members {
		set.Add(descriptor)
	}
}

// Len reports the number of distinct descriptors.
func (set *DescriptorSet) Len() int {
	return len(set.members)
}

// Members returns the descriptors in unspecified order.
func (set *DescriptorSet) Members() []EndpointDescriptor {
	descriptors := make([]EndpointDescriptor, 0, len(set.members))
	for _, descriptor := range set.members {
		descriptors = append(descriptors, descriptor)
	}
	return descriptors
}

// Catalog maps an API module key to the endpoint descriptors it declares, in
// declaration order. Built once per pass and read-only during the walk.
type Catalog map[string][]EndpointDescriptor

// Lookup finds the descriptor declared by functionName inside moduleKey. Within one
// module the first matching function name wins.
func (catalog Catalog) Lookup(moduleKey string, functionName string) (EndpointDescriptor, bool) {
	for _, descriptor := range catalog[moduleKey] {
		if descriptor.FunctionName == functionName {
			return descriptor, true
		}
	}
	return EndpointDescriptor{}, false
}

// EntryResult ties one page entry file to its labels and reachable descriptors.
type EntryResult struct {
	EntryPath   string
	Category    string
	Page        string
	Descriptors *DescriptorSet
}

// ScanSummary captures aggregate counts produced alongside the output tree.
type ScanSummary struct {
	CategoryCount  int    `json:"categories"`
	PageCount      int    `json:"pages"`
	EndpointCount  int    `json:"endpoints"`
	ArtifactTokens int    `json:"artifactTokens,omitempty"`
	TokenizerModel string `json:"tokenizerModel,omitempty"`
}
