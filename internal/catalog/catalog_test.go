package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/temirov/apimap/internal/catalog"
	"github.com/temirov/apimap/internal/types"
)

// userModuleSource declares one function endpoint and one constant endpoint.
const userModuleSource = `import request from '@/utils/request'

export function getUser() {
  return request({
    url: '/user/' + id,
    method: 'get'
  })
}

export const removeUser = (userId) => request({
  url: '/user/remove',
  method: 'DELETE'
})
`

// plainModuleSource contains no request calls at all.
const plainModuleSource = `export const formatName = (user) => user.first + ' ' + user.last
`

// missingURLModuleSource has a request call without a url field.
const missingURLModuleSource = `export function ping() {
  return request({ method: 'POST' })
}
`

// defaultMethodModuleSource omits the method field.
const defaultMethodModuleSource = `export function listRoles() {
  return request({
    url: '/roles'
  })
}
`

func TestExtractDescriptors(t *testing.T) {
	testCases := []struct {
		name     string
		fileText string
		expected []types.EndpointDescriptor
	}{
		{
			name:     "function_and_constant_declarations",
			fileText: userModuleSource,
			expected: []types.EndpointDescriptor{
				{URL: "/user/{id}", Method: "GET", FunctionName: "getUser"},
				{URL: "/user/remove", Method: "DELETE", FunctionName: "removeUser"},
			},
		},
		{
			name:     "no_request_calls",
			fileText: plainModuleSource,
			expected: nil,
		},
		{
			name:     "missing_url_discards_match",
			fileText: missingURLModuleSource,
			expected: nil,
		},
		{
			name:     "missing_method_defaults_to_get",
			fileText: defaultMethodModuleSource,
			expected: []types.EndpointDescriptor{
				{URL: "/roles", Method: "GET", FunctionName: "listRoles"},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			descriptors := catalog.ExtractDescriptors(testCase.fileText)
			if len(descriptors) != len(testCase.expected) {
				t.Fatalf("expected %d descriptors, got %d: %+v", len(testCase.expected), len(descriptors), descriptors)
			}
			for descriptorIndex, expectedDescriptor := range testCase.expected {
				if descriptors[descriptorIndex] != expectedDescriptor {
					t.Errorf("descriptor %d: expected %+v, got %+v", descriptorIndex, expectedDescriptor, descriptors[descriptorIndex])
				}
			}
		})
	}
}

func TestModuleKeyStripsExtensionAndNormalizesSeparators(t *testing.T) {
	apiRoot := filepath.Join("project", "src", "api")
	filePath := filepath.Join(apiRoot, "admin", "user.js")
	moduleKey := catalog.ModuleKey(apiRoot, filePath)
	if moduleKey != "admin/user" {
		t.Fatalf("expected module key admin/user, got %s", moduleKey)
	}
}

func TestBuildOmitsModulesWithoutDescriptors(t *testing.T) {
	apiRoot := t.TempDir()
	userModulePath := filepath.Join(apiRoot, "user.js")
	plainModulePath := filepath.Join(apiRoot, "format.js")
	if writeError := os.WriteFile(userModulePath, []byte(userModuleSource), 0o644); writeError != nil {
		t.Fatalf("write user module: %v", writeError)
	}
	if writeError := os.WriteFile(plainModulePath, []byte(plainModuleSource), 0o644); writeError != nil {
		t.Fatalf("write plain module: %v", writeError)
	}

	builtCatalog, buildError := catalog.Build(apiRoot, []string{userModulePath, plainModulePath}, zap.NewNop())
	if buildError != nil {
		t.Fatalf("build catalog: %v", buildError)
	}
	if len(builtCatalog) != 1 {
		t.Fatalf("expected one catalog module, got %d", len(builtCatalog))
	}
	descriptor, found := builtCatalog.Lookup("user", "getUser")
	if !found {
		t.Fatalf("expected getUser in module user")
	}
	if descriptor.URL != "/user/{id}" || descriptor.Method != "GET" {
		t.Errorf("unexpected descriptor: %+v", descriptor)
	}
}
