package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/apimap/internal/utils"
)

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	globalContent := "scan:\n  api_root: lib/api\n  output: global-map.json\n  clipboard: true\n"
	localContent := "scan:\n  output: local-map.json\n  aliases:\n    \"@\": src\n  paths:\n    exclude:\n      - node_modules\n      - node_modules\n"

	homeDirectory := t.TempDir()
	workingDirectory := t.TempDir()
	globalConfigDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
	if mkdirError := os.MkdirAll(globalConfigDirectory, 0o755); mkdirError != nil {
		t.Fatalf("create global config dir: %v", mkdirError)
	}
	if writeError := os.WriteFile(filepath.Join(globalConfigDirectory, utils.ConfigFileName), []byte(globalContent), 0o644); writeError != nil {
		t.Fatalf("write global config: %v", writeError)
	}
	if writeError := os.WriteFile(filepath.Join(workingDirectory, utils.ConfigFileName), []byte(localContent), 0o644); writeError != nil {
		t.Fatalf("write local config: %v", writeError)
	}

	t.Setenv("HOME", homeDirectory)

	loaded, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		t.Fatalf("load configuration: %v", loadError)
	}

	if loaded.Scan.APIRoot != "lib/api" {
		t.Errorf("expected global api_root to survive, got %s", loaded.Scan.APIRoot)
	}
	if loaded.Scan.Output != "local-map.json" {
		t.Errorf("expected local output to win, got %s", loaded.Scan.Output)
	}
	if loaded.Scan.Clipboard == nil || !*loaded.Scan.Clipboard {
		t.Errorf("expected global clipboard setting to survive")
	}
	if len(loaded.Scan.Paths.Exclude) != 1 || loaded.Scan.Paths.Exclude[0] != "node_modules" {
		t.Errorf("expected deduplicated exclude list, got %v", loaded.Scan.Paths.Exclude)
	}
	if loaded.Scan.Aliases["@"] != "src" {
		t.Errorf("expected alias table entry, got %v", loaded.Scan.Aliases)
	}
}

func TestMergeOverlaysScanConfiguration(t *testing.T) {
	base := ApplicationConfiguration{Scan: ScanConfiguration{
		APIRoot:   "src/api",
		Output:    "base.json",
		Clipboard: boolPointer(false),
		Aliases:   map[string]string{"@": "src"},
	}}
	override := ApplicationConfiguration{Scan: ScanConfiguration{
		Output:  "override.json",
		Aliases: map[string]string{"@widgets": "src/widgets"},
		Tokens:  TokenConfiguration{Enabled: boolPointer(true), Model: "custom"},
	}}

	merged := base.Merge(override)

	if merged.Scan.APIRoot != "src/api" {
		t.Errorf("expected base api_root to survive, got %s", merged.Scan.APIRoot)
	}
	if merged.Scan.Output != "override.json" {
		t.Errorf("expected override output, got %s", merged.Scan.Output)
	}
	if merged.Scan.Aliases["@"] != "src" || merged.Scan.Aliases["@widgets"] != "src/widgets" {
		t.Errorf("expected alias tables to merge, got %v", merged.Scan.Aliases)
	}
	if merged.Scan.Tokens.Enabled == nil || !*merged.Scan.Tokens.Enabled {
		t.Errorf("expected tokens enabled after merge")
	}
	if merged.Scan.Tokens.Model != "custom" {
		t.Errorf("expected token model custom, got %s", merged.Scan.Tokens.Model)
	}
}

func TestResolveAppliesDefaultsAndRootsPaths(t *testing.T) {
	projectRoot := t.TempDir()
	settings := ScanConfiguration{}.Resolve(projectRoot)

	if settings.APIRootDirectory != filepath.Join(projectRoot, DefaultAPIRoot) {
		t.Errorf("unexpected api root %s", settings.APIRootDirectory)
	}
	if settings.PagesRootDirectory != filepath.Join(projectRoot, DefaultPagesRoot) {
		t.Errorf("unexpected pages root %s", settings.PagesRootDirectory)
	}
	if settings.ComponentExtension != DefaultComponentExtension {
		t.Errorf("unexpected component extension %s", settings.ComponentExtension)
	}
	if len(settings.APIExtensions) != 1 || settings.APIExtensions[0] != DefaultAPIExtension {
		t.Errorf("unexpected api extensions %v", settings.APIExtensions)
	}
	if settings.APIRootSegment != "api" {
		t.Errorf("expected derived api segment, got %s", settings.APIRootSegment)
	}
	if settings.OutputPath != filepath.Join(projectRoot, DefaultOutputPath) {
		t.Errorf("unexpected output path %s", settings.OutputPath)
	}
}

func TestMergeAliasTablePrefersHostEntries(t *testing.T) {
	projectRoot := t.TempDir()
	settings := ScanConfiguration{
		Aliases: map[string]string{"@widgets": "src/widgets"},
	}.Resolve(projectRoot)

	settings.MergeAliasTable(map[string]string{"@widgets": "lib/widgets", "@shared": "src/shared"})

	if settings.ComponentAliases["@widgets"] != filepath.Join(projectRoot, "lib/widgets") {
		t.Errorf("expected host alias to win, got %s", settings.ComponentAliases["@widgets"])
	}
	if settings.ComponentAliases["@shared"] != filepath.Join(projectRoot, "src/shared") {
		t.Errorf("expected host alias to be added, got %v", settings.ComponentAliases)
	}
}
