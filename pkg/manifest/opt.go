package manifest

import (
	// Packages
	tools "github.com/mutablelogic/go-tools"
	zap "go.uber.org/zap"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Generator) error

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// OptLogger sets the logger for loaded and skipped tools
func OptLogger(v *zap.Logger) Opt {
	return func(g *Generator) error {
		if v == nil {
			return tools.ErrBadParameter.With("logger cannot be nil")
		}
		g.log = v
		return nil
	}
}

// OptParallel sets the number of tools which are loaded concurrently
func OptParallel(n int) Opt {
	return func(g *Generator) error {
		if n < 1 {
			return tools.ErrBadParameter.Withf("parallel must be at least 1, got %d", n)
		}
		g.parallel = n
		return nil
	}
}
