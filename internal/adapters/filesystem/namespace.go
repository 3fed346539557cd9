package filesystem

import (
	"path/filepath"
	"strings"
)

// NamespaceResolver implements secondary.DirectoryResolver from configured
// directory kinds. Relative directories are joined onto the project root.
type NamespaceResolver struct {
	root string
	dirs map[string]string
}

// NewNamespaceResolver creates a resolver rooted at root.
func NewNamespaceResolver(root string, dirs map[string]string) *NamespaceResolver {
	copied := make(map[string]string, len(dirs))
	for kind, dir := range dirs {
		copied[strings.ToLower(kind)] = dir
	}
	return &NamespaceResolver{root: root, dirs: copied}
}

// ResolveDirectory returns the directory configured for kind.
func (r *NamespaceResolver) ResolveDirectory(kind string) (string, bool) {
	dir, ok := r.dirs[strings.ToLower(kind)]
	if !ok || strings.TrimSpace(dir) == "" {
		return "", false
	}
	if filepath.IsAbs(dir) || r.root == "" {
		return filepath.Clean(dir), true
	}
	return filepath.Join(r.root, dir), true
}
