// Package config loads and merges apimap configuration from global and local files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/apimap/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds the scan configuration as read from files.
type ApplicationConfiguration struct {
	Scan ScanConfiguration `mapstructure:"scan"`
}

// ScanConfiguration defines the inputs of one full scan pass. String fields left
// empty and nil pointers fall back to defaults when resolved.
type ScanConfiguration struct {
	APIRoot            string             `mapstructure:"api_root"`
	APIExtensions      []string           `mapstructure:"api_extensions"`
	APIRootSegment     string             `mapstructure:"api_segment"`
	PagesRoot          string             `mapstructure:"pages_root"`
	PagesAlias         string             `mapstructure:"pages_alias"`
	ComponentExtension string             `mapstructure:"component_extension"`
	ComponentRoots     []ComponentRoot    `mapstructure:"component_roots"`
	Aliases            map[string]string  `mapstructure:"aliases"`
	Paths              PathConfiguration  `mapstructure:"paths"`
	Output             string             `mapstructure:"output"`
	Clipboard          *bool              `mapstructure:"clipboard"`
	Tokens             TokenConfiguration `mapstructure:"tokens"`
}

// ComponentRoot associates an import alias with a component root directory.
type ComponentRoot struct {
	Alias     string `mapstructure:"alias"`
	Directory string `mapstructure:"directory"`
}

// PathConfiguration configures inclusion and exclusion rules for file enumeration.
type PathConfiguration struct {
	Exclude []string `mapstructure:"exclude"`
	Include []string `mapstructure:"include"`
}

// TokenConfiguration controls artifact token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from global and local files,
// overlaying local values on global ones. Missing files are not errors.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		localConfiguration, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfiguration)
	}

	merged.Scan.Paths.Exclude = utils.DeduplicatePatterns(merged.Scan.Paths.Exclude)
	merged.Scan.Paths.Include = utils.DeduplicatePatterns(merged.Scan.Paths.Include)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory string, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	pathInfo, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if pathInfo.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Scan = result.Scan.merge(override.Scan)
	return result
}

func (configuration ScanConfiguration) merge(override ScanConfiguration) ScanConfiguration {
	result := configuration
	if override.APIRoot != "" {
		result.APIRoot = override.APIRoot
	}
	if len(override.APIExtensions) > 0 {
		result.APIExtensions = append([]string{}, override.APIExtensions...)
	}
	if override.APIRootSegment != "" {
		result.APIRootSegment = override.APIRootSegment
	}
	if override.PagesRoot != "" {
		result.PagesRoot = override.PagesRoot
	}
	if override.PagesAlias != "" {
		result.PagesAlias = override.PagesAlias
	}
	if override.ComponentExtension != "" {
		result.ComponentExtension = override.ComponentExtension
	}
	if len(override.ComponentRoots) > 0 {
		result.ComponentRoots = append([]ComponentRoot{}, override.ComponentRoots...)
	}
	if len(override.Aliases) > 0 {
		mergedAliases := map[string]string{}
		for aliasPrefix, directory := range result.Aliases {
			mergedAliases[aliasPrefix] = directory
		}
		for aliasPrefix, directory := range override.Aliases {
			mergedAliases[aliasPrefix] = directory
		}
		result.Aliases = mergedAliases
	}
	result.Paths = result.Paths.merge(override.Paths)
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (configuration PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := configuration
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if len(override.Include) > 0 {
		result.Include = append([]string{}, utils.DeduplicatePatterns(override.Include)...)
	}
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
