package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/abelorian/lucid/internal/naming"
	"github.com/abelorian/lucid/internal/ports/secondary"
	"github.com/abelorian/lucid/internal/templates"
)

// Generator renders stubs and writes them to the project.
type Generator struct {
	fs        afero.Fs
	loader    *templates.Loader
	resolver  secondary.DirectoryResolver
	overwrite OverwriteFunc
	logger    *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithFs sets the filesystem used for reading directories and writing files.
func WithFs(fs afero.Fs) Option {
	return func(g *Generator) { g.fs = fs }
}

// WithResolver sets the namespace directory resolver.
func WithResolver(r secondary.DirectoryResolver) Option {
	return func(g *Generator) { g.resolver = r }
}

// WithOverwrite sets the hook consulted before replacing an existing file.
func WithOverwrite(fn OverwriteFunc) Option {
	return func(g *Generator) { g.overwrite = fn }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator creates a new Generator. Defaults: OS filesystem, no resolver,
// always overwrite, no-op logger.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		fs:        afero.NewOsFs(),
		overwrite: AlwaysOverwrite,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.loader = templates.NewLoader(g.fs)
	return g
}

// With returns a copy of g with opts applied.
func (g *Generator) With(opts ...Option) *Generator {
	c := *g
	for _, opt := range opts {
		opt(&c)
	}
	c.loader = templates.NewLoader(c.fs)
	return &c
}

// Generate renders req.TemplatePath and writes it into the resolved directory.
func (g *Generator) Generate(req GenerationRequest) (*GeneratedFile, error) {
	base, err := naming.Transform(req.Identifier, req.Pattern)
	if err != nil {
		return nil, err
	}
	fileName := req.Prefix + base + req.Suffix + req.Extension

	variants, err := naming.NewVariants(req.Identifier)
	if err != nil {
		return nil, err
	}
	vars := variants.Map()
	vars["fileName"] = fileName
	for k, v := range req.Variables {
		vars[k] = v
	}

	content, err := g.loader.LoadAndRender(req.TemplatePath, vars)
	if err != nil {
		return nil, err
	}

	dir, err := g.destinationDir(req)
	if err != nil {
		return nil, err
	}
	if err := g.checkDirectory(dir); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, fileName)
	exists, err := afero.Exists(g.fs, path)
	if err != nil {
		return nil, &DestinationUnwritableError{Path: path, Err: err}
	}
	if exists {
		ok, err := g.overwrite(path)
		if err != nil {
			return nil, fmt.Errorf("failed to confirm overwrite of %s: %w", path, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w", path, ErrOverwriteDeclined)
		}
	}

	if err := afero.WriteFile(g.fs, path, []byte(content), 0o644); err != nil {
		return nil, &DestinationUnwritableError{Path: path, Err: err}
	}

	g.logger.Debug("generated file",
		zap.String("path", path),
		zap.String("template", req.TemplatePath),
		zap.Bool("overwritten", exists))

	return &GeneratedFile{Path: path, Overwritten: exists}, nil
}

// destinationDir resolves the target directory: explicit path, then the
// namespace resolver, then the fallback. Relative results are joined onto AppRoot.
func (g *Generator) destinationDir(req GenerationRequest) (string, error) {
	dir := req.DestinationDir
	if dir == "" && req.Namespace != "" && g.resolver != nil {
		if resolved, ok := g.resolver.ResolveDirectory(req.Namespace); ok && resolved != "" {
			dir = resolved
		}
	}
	if dir == "" {
		dir = req.FallbackDir
	}
	if dir == "" {
		return "", &DestinationUnwritableError{Path: req.AppRoot, Err: fmt.Errorf("no destination directory for %q", req.Namespace)}
	}

	if !filepath.IsAbs(dir) {
		root := req.AppRoot
		if root == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("failed to get working directory: %w", err)
			}
			root = cwd
		}
		dir = filepath.Join(root, dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	return abs, nil
}

// checkDirectory fails unless dir exists and is a directory. Directories are
// never created here.
func (g *Generator) checkDirectory(dir string) error {
	info, err := g.fs.Stat(dir)
	if err != nil {
		return &DestinationUnwritableError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &DestinationUnwritableError{Path: dir, Err: fmt.Errorf("not a directory")}
	}
	return nil
}
