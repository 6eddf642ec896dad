package resolve_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/apimap/internal/resolve"
)

const componentExtension = ".vue"

func writeComponentFile(t *testing.T, pathSegments ...string) string {
	t.Helper()
	filePath := filepath.Join(pathSegments...)
	if mkdirError := os.MkdirAll(filepath.Dir(filePath), 0o755); mkdirError != nil {
		t.Fatalf("create fixture directory: %v", mkdirError)
	}
	if writeError := os.WriteFile(filePath, []byte("<template/>\n"), 0o644); writeError != nil {
		t.Fatalf("write fixture file: %v", writeError)
	}
	return filePath
}

func TestResolveRelativeSpecifier(t *testing.T) {
	projectDirectory := t.TempDir()
	currentFile := filepath.Join(projectDirectory, "views", "Page.vue")
	resolver := resolve.Resolver{ComponentExtension: componentExtension}

	resolved := resolver.Resolve("./widgets/Chart.vue", currentFile)
	expected := filepath.Join(projectDirectory, "views", "widgets", "Chart.vue")
	if resolved != expected {
		t.Errorf("expected %s, got %s", expected, resolved)
	}
}

func TestResolveAliasPrefersIndexFile(t *testing.T) {
	componentsDirectory := t.TempDir()
	indexFile := writeComponentFile(t, componentsDirectory, "Chart", "index.vue")
	writeComponentFile(t, componentsDirectory, "Chart.vue")

	resolver := resolve.Resolver{
		ComponentExtension: componentExtension,
		ComponentAliases:   map[string]string{"@/components": componentsDirectory},
	}

	resolved := resolver.Resolve("@/components/Chart", "irrelevant.vue")
	if resolved != indexFile {
		t.Errorf("expected index file %s, got %s", indexFile, resolved)
	}
}

func TestResolveAliasFallsBackToDirectFile(t *testing.T) {
	componentsDirectory := t.TempDir()
	directFile := writeComponentFile(t, componentsDirectory, "Toolbar.vue")

	resolver := resolve.Resolver{
		ComponentExtension: componentExtension,
		ComponentAliases:   map[string]string{"@/components": componentsDirectory},
	}

	resolved := resolver.Resolve("@/components/Toolbar", "irrelevant.vue")
	if resolved != directFile {
		t.Errorf("expected direct file %s, got %s", directFile, resolved)
	}
}

func TestResolvePagesAlias(t *testing.T) {
	pagesDirectory := t.TempDir()
	pageFile := writeComponentFile(t, pagesDirectory, "orders", "list.vue")

	resolver := resolve.Resolver{
		ComponentExtension: componentExtension,
		PagesAlias:         "@/views",
		PagesRootDirectory: pagesDirectory,
	}

	resolved := resolver.Resolve("@/views/orders/list", "irrelevant.vue")
	if resolved != pageFile {
		t.Errorf("expected page file %s, got %s", pageFile, resolved)
	}
}

func TestResolveNonComponentSpecifierReturnsEmpty(t *testing.T) {
	resolver := resolve.Resolver{
		ComponentExtension: componentExtension,
		ComponentAliases:   map[string]string{"@/components": t.TempDir()},
	}

	testSpecifiers := []string{"vuex", "@/api/user", "lodash/debounce", ""}
	for _, specifier := range testSpecifiers {
		if resolved := resolver.Resolve(specifier, "irrelevant.vue"); resolved != "" {
			t.Errorf("expected empty resolution for %s, got %s", specifier, resolved)
		}
	}
}
