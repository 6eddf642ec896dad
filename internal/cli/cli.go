// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/apimap/internal/config"
	"github.com/temirov/apimap/internal/scan"
	"github.com/temirov/apimap/internal/utils"
)

const (
	configFlagName       = "config"
	outputFlagName       = "output"
	clipboardFlagName    = "clipboard"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	versionFlagName      = "version"
	versionTemplate      = "apimap version: %s\n"
	defaultProjectPath   = "."
	rootUse              = "apimap"
	rootShortDescription = "apimap command line interface"
	rootLongDescription  = `apimap statically maps UI pages to the backend endpoints they depend on.
It walks component imports from each page entry file, attributes detected API calls
to the owning page, and writes the result as a JSON artifact.`
	versionFlagDescription = "display application version"

	scanUse              = "scan [path]"
	scanAlias            = "s"
	scanShortDescription = "scan a project and write the api map (" + scanAlias + ")"
	scanLongDescription  = `Run one full scan pass over the project at the given path (default ".").
Configuration is read from ~/.apimap/apimap.yaml and ./apimap.yaml; flags win over files.`
	scanUsageExample = `  # Scan the current project
  apimap scan

  # Scan another project and choose the artifact path
  apimap scan ../shop --output build/api-map.json

  # Copy the artifact to the clipboard and report its token count
  apimap scan --clipboard --tokens`

	configFlagDescription    = "configuration file path"
	outputFlagDescription    = "artifact output path"
	clipboardFlagDescription = "copy the artifact to the system clipboard"
	tokensFlagDescription    = "include artifact token count in the summary"
	modelFlagDescription     = "tokenizer model for token counting"

	errorAbsolutePathFormat = "abs failed for '%s': %w"
	errorPathMissingFormat  = "path '%s' does not exist"
	errorNotDirectoryFormat = "path '%s' is not a directory"
)

// Execute runs the apimap application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(createScanCommand(logger))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// scanOptions stores flag values for the scan command.
type scanOptions struct {
	configPath       string
	outputPath       string
	clipboardEnabled bool
	tokensEnabled    bool
	tokenizerModel   string
}

// createScanCommand returns the scan subcommand.
func createScanCommand(logger *zap.Logger) *cobra.Command {
	var options scanOptions

	scanCommand := &cobra.Command{
		Use:     scanUse,
		Aliases: []string{scanAlias},
		Short:   scanShortDescription,
		Long:    scanLongDescription,
		Example: scanUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			projectPath := defaultProjectPath
			if len(arguments) == 1 {
				projectPath = arguments[0]
			}
			return runScan(projectPath, options, command, logger)
		},
	}

	scanCommand.Flags().StringVar(&options.configPath, configFlagName, utils.EmptyString, configFlagDescription)
	scanCommand.Flags().StringVar(&options.outputPath, outputFlagName, utils.EmptyString, outputFlagDescription)
	scanCommand.Flags().BoolVar(&options.clipboardEnabled, clipboardFlagName, false, clipboardFlagDescription)
	scanCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	scanCommand.Flags().StringVar(&options.tokenizerModel, modelFlagName, config.DefaultTokenizerModel, modelFlagDescription)
	return scanCommand
}

// runScan resolves configuration for the project and executes one full pass.
func runScan(projectPath string, options scanOptions, command *cobra.Command, logger *zap.Logger) error {
	projectRoot, validateError := resolveProjectRoot(projectPath)
	if validateError != nil {
		return validateError
	}

	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: projectRoot,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return loadError
	}

	settings := applicationConfiguration.Scan.Resolve(projectRoot)
	applyFlagOverrides(&settings, options, command)

	_, runError := scan.NewRunner(settings, logger).RunAndWrite()
	return runError
}

// applyFlagOverrides overlays explicitly set flags onto the resolved settings.
func applyFlagOverrides(settings *config.Settings, options scanOptions, command *cobra.Command) {
	if command.Flags().Changed(outputFlagName) && options.outputPath != "" {
		if filepath.IsAbs(options.outputPath) {
			settings.OutputPath = filepath.Clean(options.outputPath)
		} else {
			settings.OutputPath = filepath.Join(settings.ProjectRoot, options.outputPath)
		}
	}
	if command.Flags().Changed(clipboardFlagName) {
		settings.Clipboard = options.clipboardEnabled
	}
	if command.Flags().Changed(tokensFlagName) {
		settings.TokensEnabled = options.tokensEnabled
	}
	if command.Flags().Changed(modelFlagName) && options.tokenizerModel != "" {
		settings.TokenizerModel = options.tokenizerModel
	}
}

// resolveProjectRoot converts the project path to absolute form and validates it.
func resolveProjectRoot(projectPath string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(projectPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, projectPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	pathInfo, statError := os.Stat(cleanPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(errorPathMissingFormat, projectPath)
		}
		return "", statError
	}
	if !pathInfo.IsDir() {
		return "", fmt.Errorf(errorNotDirectoryFormat, projectPath)
	}
	return cleanPath, nil
}
