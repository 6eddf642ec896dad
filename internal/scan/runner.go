// Package scan orchestrates one full pass: build the catalog, walk every page entry
// file, aggregate the results, and write the JSON artifact.
package scan

import (
	"go.uber.org/zap"

	"github.com/temirov/apimap/internal/aggregate"
	"github.com/temirov/apimap/internal/catalog"
	"github.com/temirov/apimap/internal/config"
	"github.com/temirov/apimap/internal/detect"
	"github.com/temirov/apimap/internal/index"
	"github.com/temirov/apimap/internal/report"
	"github.com/temirov/apimap/internal/resolve"
	"github.com/temirov/apimap/internal/services/clipboard"
	"github.com/temirov/apimap/internal/tokenizer"
	"github.com/temirov/apimap/internal/types"
	"github.com/temirov/apimap/internal/walker"
)

const (
	scanSummaryMessage       = "scan complete"
	clipboardFailureMessage  = "copy artifact to clipboard failed"
	tokenCountFailureMessage = "count artifact tokens failed"
	categoriesLogField       = "categories"
	pagesLogField            = "pages"
	endpointsLogField        = "endpoints"
	artifactLogField         = "artifact"
)

// Runner executes full scan passes against one resolved configuration. Every pass
// rebuilds the catalog and all traversal state from empty, so repeated passes over
// an unchanged tree are idempotent and produce byte-identical artifacts.
type Runner struct {
	settings config.Settings
	logger   *zap.Logger
	readFile walker.ReadFileFunc
	copier   clipboard.Copier
}

// NewRunner constructs a runner for the resolved settings.
func NewRunner(settings config.Settings, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{settings: settings, logger: logger, copier: clipboard.NewService()}
}

// SetFileReader overrides the file reader used by walk sessions. Tests use this to
// instrument read counts.
func (runner *Runner) SetFileReader(readFile walker.ReadFileFunc) {
	runner.readFile = readFile
}

// Run executes one full pass and returns the aggregated output tree and summary
// without writing the artifact.
func (runner *Runner) Run() (aggregate.OutputTree, types.ScanSummary, error) {
	settings := runner.settings

	apiFiles, apiListError := index.List(settings.APIRootDirectory, index.Filter{
		Extensions: settings.APIExtensions,
		Exclude:    settings.Exclude,
		Include:    settings.Include,
	})
	if apiListError != nil {
		return nil, types.ScanSummary{}, apiListError
	}
	moduleCatalog, catalogError := catalog.Build(settings.APIRootDirectory, apiFiles, runner.logger)
	if catalogError != nil {
		return nil, types.ScanSummary{}, catalogError
	}

	entryFiles, entryListError := index.List(settings.PagesRootDirectory, index.Filter{
		Extensions: []string{settings.ComponentExtension},
		Exclude:    settings.Exclude,
		Include:    settings.Include,
	})
	if entryListError != nil {
		return nil, types.ScanSummary{}, entryListError
	}

	componentResolver := resolve.Resolver{
		ComponentExtension: settings.ComponentExtension,
		ComponentAliases:   settings.ComponentAliases,
		PagesAlias:         settings.PagesAlias,
		PagesRootDirectory: settings.PagesRootDirectory,
	}
	detectionContext := detect.Context{
		Catalog:        moduleCatalog,
		APIRootSegment: settings.APIRootSegment,
	}
	session := walker.NewSession(detect.NewExtractor(), componentResolver, detectionContext, runner.readFile, runner.logger)

	var entryResults []types.EntryResult
	for _, entryPath := range entryFiles {
		category, page, underPagesRoot := aggregate.EntryLabels(settings.PagesRootDirectory, entryPath)
		if !underPagesRoot {
			continue
		}
		entryResults = append(entryResults, types.EntryResult{
			EntryPath:   entryPath,
			Category:    category,
			Page:        page,
			Descriptors: session.Walk(entryPath),
		})
	}

	tree, summary := aggregate.Aggregate(entryResults)
	return tree, summary, nil
}

// RunAndWrite executes one full pass and writes the JSON artifact, overwriting any
// previous artifact at the configured path. A write failure is propagated.
func (runner *Runner) RunAndWrite() (types.ScanSummary, error) {
	tree, summary, runError := runner.Run()
	if runError != nil {
		return types.ScanSummary{}, runError
	}
	renderedArtifact, renderError := report.Render(tree)
	if renderError != nil {
		return types.ScanSummary{}, renderError
	}
	if runner.settings.TokensEnabled {
		runner.countArtifactTokens(renderedArtifact, &summary)
	}
	if writeError := report.Write(renderedArtifact, runner.settings.OutputPath); writeError != nil {
		return types.ScanSummary{}, writeError
	}
	if runner.settings.Clipboard && runner.copier != nil {
		if copyError := runner.copier.Copy(string(renderedArtifact)); copyError != nil {
			runner.logger.Warn(clipboardFailureMessage, zap.Error(copyError))
		}
	}
	runner.logger.Info(scanSummaryMessage,
		zap.Int(categoriesLogField, summary.CategoryCount),
		zap.Int(pagesLogField, summary.PageCount),
		zap.Int(endpointsLogField, summary.EndpointCount),
		zap.String(artifactLogField, runner.settings.OutputPath),
	)
	return summary, nil
}

func (runner *Runner) countArtifactTokens(renderedArtifact []byte, summary *types.ScanSummary) {
	tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(runner.settings.TokenizerModel)
	if counterError != nil {
		runner.logger.Warn(tokenCountFailureMessage, zap.Error(counterError))
		return
	}
	tokenCount, countError := tokenCounter.CountString(string(renderedArtifact))
	if countError != nil {
		runner.logger.Warn(tokenCountFailureMessage, zap.Error(countError))
		return
	}
	summary.ArtifactTokens = tokenCount
	summary.TokenizerModel = resolvedModel
}
