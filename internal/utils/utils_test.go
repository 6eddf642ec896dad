package utils_test

import (
	"path/filepath"
	"testing"

	"github.com/temirov/apimap/internal/utils"
)

func TestDeduplicatePatternsKeepsFirstOccurrence(t *testing.T) {
	deduplicated := utils.DeduplicatePatterns([]string{"a", "b", "a", "c", "b"})
	expected := []string{"a", "b", "c"}
	if len(deduplicated) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, deduplicated)
	}
	for patternIndex, pattern := range expected {
		if deduplicated[patternIndex] != pattern {
			t.Errorf("position %d: expected %s, got %s", patternIndex, pattern, deduplicated[patternIndex])
		}
	}
}

func TestRelativePathOrSelf(t *testing.T) {
	rootDirectory := t.TempDir()
	nestedPath := filepath.Join(rootDirectory, "views", "orders", "list.vue")
	relativePath := utils.RelativePathOrSelf(nestedPath, rootDirectory)
	if relativePath != "views/orders/list.vue" {
		t.Errorf("expected forward-slash relative path, got %s", relativePath)
	}
}

func TestStripExtension(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "user.js", expected: "user"},
		{input: "admin/user.js", expected: "admin/user"},
		{input: "noextension", expected: "noextension"},
	}
	for _, testCase := range testCases {
		if stripped := utils.StripExtension(testCase.input); stripped != testCase.expected {
			t.Errorf("StripExtension(%s): expected %s, got %s", testCase.input, testCase.expected, stripped)
		}
	}
}
