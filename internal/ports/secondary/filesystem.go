package secondary

// DirectoryResolver maps a namespace kind ("models", "migrations",
// "controllers") to a project directory.
type DirectoryResolver interface {
	// ResolveDirectory returns the directory for kind and whether one is configured.
	ResolveDirectory(kind string) (string, bool)
}
