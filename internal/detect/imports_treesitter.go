//go:build cgo

package detect

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	javascript "github.com/smacker/go-tree-sitter/javascript"
)

const (
	importStatementNodeType = "import_statement"
	importSourceFieldName   = "source"
)

// scriptBlockPattern extracts the script block of a single-file component so the
// JavaScript grammar only sees JavaScript.
var scriptBlockPattern = regexp.MustCompile(`(?s)<script[^>]*>(.*?)</script>`)

// scanImportSpecifiers collects import specifiers from the file's script content
// using the JavaScript grammar. When the grammar finds no import statements the
// textual scan decides, so plain-text detection is never weaker than on non-cgo
// builds.
func scanImportSpecifiers(fileText string) []string {
	scriptSource := fileText
	if blockMatch := scriptBlockPattern.FindStringSubmatch(fileText); blockMatch != nil {
		scriptSource = blockMatch[1]
	}
	parsedSpecifiers := treeSitterImportSpecifiers(scriptSource)
	if len(parsedSpecifiers) == 0 {
		return regexImportSpecifiers(fileText)
	}
	return parsedSpecifiers
}

func treeSitterImportSpecifiers(scriptSource string) []string {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree := parser.Parse(nil, []byte(scriptSource))
	if tree == nil {
		return nil
	}
	rootNode := tree.RootNode()
	seenSpecifiers := map[string]struct{}{}
	var specifiers []string
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node.Type() == importStatementNodeType {
			sourceNode := node.ChildByFieldName(importSourceFieldName)
			if sourceNode != nil {
				specifier := strings.Trim(scriptSource[sourceNode.StartByte():sourceNode.EndByte()], `'"`)
				if _, exists := seenSpecifiers[specifier]; !exists && specifier != "" {
					seenSpecifiers[specifier] = struct{}{}
					specifiers = append(specifiers, specifier)
				}
			}
		}
		for childIndex := 0; childIndex < int(node.ChildCount()); childIndex++ {
			walk(node.Child(childIndex))
		}
	}
	walk(rootNode)
	return specifiers
}
