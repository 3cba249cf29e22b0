package manifest

import (
	// Packages
	tools "github.com/mutablelogic/go-tools"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Module maps export ids to the tools a load target provides
type Module map[string]tool.Tool

// LoadFunc loads the module for a target
type LoadFunc func() (Module, error)

// Resolver maps a virtual path to the function which loads it
type Resolver map[string]LoadFunc

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Load returns the module for a virtual path
func (r Resolver) Load(target string) (Module, error) {
	fn, exists := r[target]
	if !exists || fn == nil {
		return nil, tools.ErrNotFound.Withf("no module at %q", target)
	}
	return fn()
}

// Lookup returns the tool for an export id, or nil if not exported
func (m Module) Lookup(id string) tool.Tool {
	return m[id]
}
