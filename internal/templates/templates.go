// Package templates loads scaffolding stubs and interpolates variables into them.
//
// Stubs use {{ key }} placeholders and nothing else: there are no sections,
// loops, or conditionals. A placeholder whose key has no value renders empty.
package templates

import (
	"embed"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

//go:embed stubs/*.stub
var stubs embed.FS

// Embedded stub names.
const (
	StubModel              = "model"
	StubMigration          = "migration"
	StubController         = "controller"
	StubControllerResource = "controller_resource"
)

var placeholder = regexp.MustCompile(`\{\{\s*([^{}]*?)\s*\}\}`)

// TemplateReadError is returned when a stub cannot be located or read.
type TemplateReadError struct {
	Template string
	Err      error
}

func (e *TemplateReadError) Error() string {
	return fmt.Sprintf("failed to read template %s: %v", e.Template, e.Err)
}

func (e *TemplateReadError) Unwrap() error {
	return e.Err
}

// Loader resolves stub names to stub source.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a Loader that reads custom stubs from fs.
// If fs is nil, the OS filesystem is used.
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// Load returns the source of a stub. Names containing a path separator or a
// file extension are read from the filesystem; anything else is looked up in
// the embedded stub set.
func (l *Loader) Load(name string) (string, error) {
	if isPath(name) {
		content, err := afero.ReadFile(l.fs, name)
		if err != nil {
			return "", &TemplateReadError{Template: name, Err: err}
		}
		return string(content), nil
	}

	content, err := stubs.ReadFile("stubs/" + name + ".stub")
	if err != nil {
		return "", &TemplateReadError{Template: name, Err: err}
	}
	return string(content), nil
}

// LoadAndRender loads a stub and renders it with vars.
func (l *Loader) LoadAndRender(name string, vars map[string]string) (string, error) {
	source, err := l.Load(name)
	if err != nil {
		return "", err
	}
	return Render(source, vars), nil
}

// Render replaces every {{ key }} in source with vars[key].
func Render(source string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(source, func(token string) string {
		key := placeholder.FindStringSubmatch(token)[1]
		return vars[key]
	})
}

func isPath(name string) bool {
	return strings.ContainsRune(name, '/') ||
		strings.ContainsRune(name, filepath.Separator) ||
		filepath.Ext(name) != ""
}
