package resolver

import (
	"path/filepath"

	"go.trai.ch/bagel/internal/core/ports"
)

// Chain tries each resolver in order and returns the first non-empty path.
// An error from any resolver stops the chain.
func Chain(resolvers ...ports.Resolver) ports.Resolver {
	return ports.ResolverFunc(func(id, fromDir string, reqCtx any) (string, error) {
		for _, r := range resolvers {
			if r == nil {
				continue
			}
			p, err := r.Resolve(id, fromDir, reqCtx)
			if err != nil {
				return "", err
			}
			if p != "" {
				return p, nil
			}
		}
		return "", nil
	})
}

// Aliases resolves exact module ids to fixed files. Relative targets are
// taken from baseDir.
func Aliases(baseDir string, aliases map[string]string) ports.Resolver {
	targets := make(map[string]string, len(aliases))
	for id, target := range aliases {
		if !filepath.IsAbs(target) {
			target = filepath.Join(baseDir, target)
		}
		targets[id] = filepath.Clean(target)
	}

	return ports.ResolverFunc(func(id, _ string, _ any) (string, error) {
		return targets[id], nil
	})
}
