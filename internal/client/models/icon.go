package models

import (
	"path/filepath"
	"strings"
)

// FileKind is a display hint derived from a file extension. It never gates
// submission: the backend decides what it can parse.
type FileKind struct {
	Icon     string
	Language string
}

const (
	IconNoFile  = "fas fa-upload"
	IconDefault = "fas fa-file-code"
)

var kinds = map[string]FileKind{
	"py":   {Icon: "fab fa-python", Language: "Python"},
	"js":   {Icon: "fab fa-js", Language: "JavaScript"},
	"jsx":  {Icon: "fab fa-js", Language: "JavaScript"},
	"java": {Icon: "fab fa-java", Language: "Java"},
	"go":   {Icon: "fas fa-code", Language: "Go"},
	"rb":   {Icon: "fas fa-gem", Language: "Ruby"},
	"php":  {Icon: "fab fa-php", Language: "PHP"},
	"ts":   {Icon: "fab fa-react", Language: "TypeScript"},
	"tsx":  {Icon: "fab fa-react", Language: "TypeScript"},
}

// SupportedExtensions is the picker accept-list, in display order.
var SupportedExtensions = []string{".py", ".js", ".java", ".go", ".rb", ".php", ".ts", ".jsx", ".tsx"}

// KindFor returns the display hint for name. Unknown extensions map to a
// generic code icon; an empty name maps to the upload icon.
func KindFor(name string) FileKind {
	if name == "" {
		return FileKind{Icon: IconNoFile}
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if k, ok := kinds[ext]; ok {
		return k
	}
	return FileKind{Icon: IconDefault, Language: "Code"}
}

// IconFor is a shortcut for KindFor(name).Icon.
func IconFor(name string) string {
	return KindFor(name).Icon
}

// AcceptList joins SupportedExtensions for an HTML file input.
func AcceptList() string {
	return strings.Join(SupportedExtensions, ",")
}
