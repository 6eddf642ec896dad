package index_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/apimap/internal/index"
)

func writeListedFile(t *testing.T, root string, relativePath string) string {
	t.Helper()
	fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
	if mkdirError := os.MkdirAll(filepath.Dir(fullPath), 0o755); mkdirError != nil {
		t.Fatalf("create directory: %v", mkdirError)
	}
	if writeError := os.WriteFile(fullPath, []byte("content\n"), 0o644); writeError != nil {
		t.Fatalf("write file: %v", writeError)
	}
	return fullPath
}

func TestListFiltersByExtensionExcludeAndInclude(t *testing.T) {
	rootDirectory := t.TempDir()
	keptFile := writeListedFile(t, rootDirectory, "views/orders/list.vue")
	writeListedFile(t, rootDirectory, "views/orders/helper.js")
	writeListedFile(t, rootDirectory, "views/node_modules/dep/Widget.vue")
	writeListedFile(t, rootDirectory, "admin/dashboard.vue")

	listedPaths, listError := index.List(rootDirectory, index.Filter{
		Extensions: []string{".vue"},
		Exclude:    []string{"node_modules"},
		Include:    []string{"views"},
	})
	if listError != nil {
		t.Fatalf("list: %v", listError)
	}
	if len(listedPaths) != 1 || listedPaths[0] != keptFile {
		t.Errorf("expected only %s, got %v", keptFile, listedPaths)
	}
}

func TestListWithoutIncludeKeepsEverythingNotExcluded(t *testing.T) {
	rootDirectory := t.TempDir()
	writeListedFile(t, rootDirectory, "a.vue")
	writeListedFile(t, rootDirectory, "nested/b.vue")

	listedPaths, listError := index.List(rootDirectory, index.Filter{Extensions: []string{".vue"}})
	if listError != nil {
		t.Fatalf("list: %v", listError)
	}
	if len(listedPaths) != 2 {
		t.Errorf("expected two files, got %v", listedPaths)
	}
}

func TestListMissingRootYieldsEmptySequence(t *testing.T) {
	missingRoot := filepath.Join(t.TempDir(), "does-not-exist")
	listedPaths, listError := index.List(missingRoot, index.Filter{Extensions: []string{".vue"}})
	if listError != nil {
		t.Fatalf("expected no error for missing root, got %v", listError)
	}
	if len(listedPaths) != 0 {
		t.Errorf("expected empty listing, got %v", listedPaths)
	}
}

func TestListTerminatesOnCyclicSymlinks(t *testing.T) {
	rootDirectory := t.TempDir()
	writeListedFile(t, rootDirectory, "inner/page.vue")
	cycleLink := filepath.Join(rootDirectory, "inner", "loop")
	if symlinkError := os.Symlink(rootDirectory, cycleLink); symlinkError != nil {
		t.Skipf("symlinks unavailable: %v", symlinkError)
	}

	listedPaths, listError := index.List(rootDirectory, index.Filter{Extensions: []string{".vue"}})
	if listError != nil {
		t.Fatalf("list: %v", listError)
	}
	if len(listedPaths) != 1 {
		t.Errorf("expected the single real file, got %v", listedPaths)
	}
}
