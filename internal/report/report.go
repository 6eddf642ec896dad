// Package report renders the aggregated output tree into the JSON artifact.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/apimap/internal/aggregate"
)

const (
	jsonIndent               = "  "
	artifactFilePermissions  = 0o644
	artifactDirPermissions   = 0o755
	renderFailureFormat      = "render api map: %w"
	createDirectoryFormat    = "create artifact directory %s: %w"
	writeArtifactErrorFormat = "write artifact %s: %w"
)

// Render serializes the tree to indented JSON. Category and page keys marshal in
// sorted order, so identical trees always render byte-identically.
func Render(tree aggregate.OutputTree) ([]byte, error) {
	renderedJSON, marshalError := json.MarshalIndent(tree, "", jsonIndent)
	if marshalError != nil {
		return nil, fmt.Errorf(renderFailureFormat, marshalError)
	}
	return append(renderedJSON, '\n'), nil
}

// Write stores the rendered artifact at outputPath, creating parent directories.
// A write failure is fatal for the pass and is propagated to the caller.
func Write(renderedArtifact []byte, outputPath string) error {
	parentDirectory := filepath.Dir(outputPath)
	if mkdirError := os.MkdirAll(parentDirectory, artifactDirPermissions); mkdirError != nil {
		return fmt.Errorf(createDirectoryFormat, parentDirectory, mkdirError)
	}
	if writeError := os.WriteFile(outputPath, renderedArtifact, artifactFilePermissions); writeError != nil {
		return fmt.Errorf(writeArtifactErrorFormat, outputPath, writeError)
	}
	return nil
}
