// Package scaffold writes generated source files into a project.
package scaffold

import (
	"errors"
	"fmt"

	"github.com/abelorian/lucid/internal/naming"
)

// GenerationRequest describes one file to generate. It is built once per
// invocation and passed to Generator.Generate by value.
type GenerationRequest struct {
	Identifier string         // raw user supplied name: "blog_posts"
	Pattern    naming.Pattern // file name pattern: snake+singular -> "blog_post"
	Prefix     string         // prepended to the file name: "1700000000_"
	Suffix     string         // appended before the extension: "_controller"
	Extension  string         // ".go"

	TemplatePath string // embedded stub name or a path to a custom stub

	DestinationDir string // explicit directory, wins over everything else
	Namespace      string // directory kind looked up through the resolver
	FallbackDir    string // used when neither of the above yields a directory
	AppRoot        string // base for relative directories

	Variables map[string]string // extra template variables, override name variants
}

// GeneratedFile reports a file written by Generate.
type GeneratedFile struct {
	Path        string // absolute path
	Overwritten bool
}

// OverwriteFunc decides whether an existing file at path may be replaced.
type OverwriteFunc func(path string) (bool, error)

// AlwaysOverwrite is the default OverwriteFunc.
func AlwaysOverwrite(string) (bool, error) { return true, nil }

// ErrOverwriteDeclined is returned when the overwrite hook refuses to replace a file.
var ErrOverwriteDeclined = errors.New("existing file was not overwritten")

// DestinationUnwritableError is returned when the destination directory is
// missing, is not a directory, or the file cannot be written.
type DestinationUnwritableError struct {
	Path string
	Err  error
}

func (e *DestinationUnwritableError) Error() string {
	return fmt.Sprintf("cannot write to %s: %v", e.Path, e.Err)
}

func (e *DestinationUnwritableError) Unwrap() error {
	return e.Err
}
