//go:build !cgo

package detect

// scanImportSpecifiers falls back to the textual scan on builds without cgo.
func scanImportSpecifiers(fileText string) []string {
	return regexImportSpecifiers(fileText)
}
