/*
manifest builds the published tool manifest from a registry of exports.
Each export is resolved to a tool, and tools which declare both input and
output schemas are converted into tool definitions.
*/
package manifest

import (
	"context"
	"sync"

	// Packages
	tools "github.com/mutablelogic/go-tools"
	schema "github.com/mutablelogic/go-tools/pkg/schema"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
	zap "go.uber.org/zap"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Generator struct {
	resolver Resolver
	log      *zap.Logger
	parallel int
}

// load memoizes a module for a single run
type load struct {
	once   sync.Once
	module Module
	err    error
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a generator which resolves exports with the resolver
func New(resolver Resolver, opts ...Opt) (*Generator, error) {
	g := &Generator{
		resolver: resolver,
		log:      zap.NewNop(),
		parallel: 1,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if g.resolver == nil {
		return nil, tools.ErrBadParameter.With("resolver cannot be nil")
	}
	return g, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Generate returns a manifest with a definition for each export in registry
// order. Exports which cannot be loaded, or which lack a schema, are skipped.
func (g *Generator) Generate(ctx context.Context, registry *Registry) (*Manifest, error) {
	if registry == nil {
		return nil, tools.ErrBadParameter.With("registry cannot be nil")
	}

	// The module cache lives for this run only
	cache := make(map[string]*load, len(registry.Exports))
	for _, export := range registry.Exports {
		if _, exists := cache[export.VirtualPath]; !exists {
			cache[export.VirtualPath] = new(load)
		}
	}

	// Resolve each export into its own slot, so order follows the registry
	definitions := make([]*schema.ToolDefinition, len(registry.Exports))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(g.parallel)
	for i, export := range registry.Exports {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			definitions[i] = g.definition(export, cache[export.VirtualPath])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Collect the definitions
	manifest := &Manifest{
		Tools: make([]schema.ToolDefinition, 0, len(definitions)),
	}
	for _, definition := range definitions {
		if definition != nil {
			manifest.Tools = append(manifest.Tools, *definition)
		}
	}

	// Return success
	return manifest, nil
}

// Run reads the registry, generates the manifest and writes it to the output
// path. A registry which cannot be read or parsed is an error.
func (g *Generator) Run(ctx context.Context, registryPath, outputPath string) (*Manifest, error) {
	registry, err := LoadRegistry(registryPath)
	if err != nil {
		return nil, err
	}
	manifest, err := g.Generate(ctx, registry)
	if err != nil {
		return nil, err
	}
	if err := manifest.Write(outputPath); err != nil {
		return nil, err
	}
	g.log.Sugar().Infof("wrote %d tool schemas to %s", len(manifest.Tools), outputPath)
	return manifest, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// definition returns the definition for an export, or nil if it is skipped
func (g *Generator) definition(export Export, cache *load) *schema.ToolDefinition {
	log := g.log.With(zap.String("tool", export.ID), zap.String("path", export.VirtualPath))
	log.Info("loading tool")

	cache.once.Do(func() {
		cache.module, cache.err = g.resolver.Load(export.VirtualPath)
	})
	if cache.err != nil {
		log.Warn("module could not be loaded", zap.Error(cache.err))
		return nil
	}

	t := cache.module.Lookup(export.ID)
	if t == nil {
		log.Warn("module or function not found")
		return nil
	} else if !tool.HasSchemas(t) {
		log.Debug("tool does not declare an input and output schema, skipping")
		return nil
	}

	definition, err := tool.Definition(export.ID, t)
	if err != nil {
		log.Warn("schema conversion failed", zap.Error(err))
		return nil
	}
	return &definition
}
