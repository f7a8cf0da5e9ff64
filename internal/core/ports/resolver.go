package ports

//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks

// Resolver maps a module id, requested from a directory, to a file path.
// An empty path with a nil error means the id is not handled and the next
// resolver should be tried.
type Resolver interface {
	Resolve(moduleID, fromDir string, reqCtx any) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(moduleID, fromDir string, reqCtx any) (string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(moduleID, fromDir string, reqCtx any) (string, error) {
	return f(moduleID, fromDir, reqCtx)
}

// Purger is implemented by caches that can be dropped when sources change.
type Purger interface {
	Purge()
}
