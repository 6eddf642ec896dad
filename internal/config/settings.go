package config

import (
	"path/filepath"
)

// Default values applied when configuration files leave a field empty.
const (
	DefaultAPIRoot            = "src/api"
	DefaultPagesRoot          = "src/views"
	DefaultPagesAlias         = "@/views"
	DefaultComponentExtension = ".vue"
	DefaultAPIExtension       = ".js"
	DefaultOutputPath         = "api-map.json"
	DefaultTokenizerModel     = "gpt-4o"
)

// Settings is the fully resolved scan configuration: defaults applied and every
// directory made absolute against the project root.
type Settings struct {
	ProjectRoot        string
	APIRootDirectory   string
	APIExtensions      []string
	APIRootSegment     string
	PagesRootDirectory string
	PagesAlias         string
	ComponentExtension string
	// ComponentAliases merges the component-root list with the extra alias table.
	ComponentAliases map[string]string
	Exclude          []string
	Include          []string
	OutputPath       string
	Clipboard        bool
	TokensEnabled    bool
	TokenizerModel   string
}

// Resolve applies defaults and roots every relative path at projectRoot.
func (configuration ScanConfiguration) Resolve(projectRoot string) Settings {
	settings := Settings{
		ProjectRoot:        projectRoot,
		APIRootDirectory:   absoluteAgainst(projectRoot, valueOrDefault(configuration.APIRoot, DefaultAPIRoot)),
		APIExtensions:      configuration.APIExtensions,
		APIRootSegment:     configuration.APIRootSegment,
		PagesRootDirectory: absoluteAgainst(projectRoot, valueOrDefault(configuration.PagesRoot, DefaultPagesRoot)),
		PagesAlias:         valueOrDefault(configuration.PagesAlias, DefaultPagesAlias),
		ComponentExtension: valueOrDefault(configuration.ComponentExtension, DefaultComponentExtension),
		ComponentAliases:   map[string]string{},
		Exclude:            configuration.Paths.Exclude,
		Include:            configuration.Paths.Include,
		OutputPath:         absoluteAgainst(projectRoot, valueOrDefault(configuration.Output, DefaultOutputPath)),
		TokenizerModel:     valueOrDefault(configuration.Tokens.Model, DefaultTokenizerModel),
	}
	if len(settings.APIExtensions) == 0 {
		settings.APIExtensions = []string{DefaultAPIExtension}
	}
	if settings.APIRootSegment == "" {
		settings.APIRootSegment = filepath.Base(settings.APIRootDirectory)
	}
	for aliasPrefix, directory := range configuration.Aliases {
		settings.ComponentAliases[aliasPrefix] = absoluteAgainst(projectRoot, directory)
	}
	for _, componentRoot := range configuration.ComponentRoots {
		if componentRoot.Alias == "" || componentRoot.Directory == "" {
			continue
		}
		settings.ComponentAliases[componentRoot.Alias] = absoluteAgainst(projectRoot, componentRoot.Directory)
	}
	if configuration.Clipboard != nil {
		settings.Clipboard = *configuration.Clipboard
	}
	if configuration.Tokens.Enabled != nil {
		settings.TokensEnabled = *configuration.Tokens.Enabled
	}
	return settings
}

// MergeAliasTable overlays an externally provided alias table, as delivered by the
// host build's configuration-resolved hook. Host entries win over file entries.
func (settings *Settings) MergeAliasTable(aliasTable map[string]string) {
	for aliasPrefix, directory := range aliasTable {
		settings.ComponentAliases[aliasPrefix] = absoluteAgainst(settings.ProjectRoot, directory)
	}
}

func valueOrDefault(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func absoluteAgainst(projectRoot string, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(projectRoot, path)
}
