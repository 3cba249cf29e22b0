package main

import (
	// Packages
	bloomreach "github.com/mutablelogic/go-tools/pkg/bloomreach"
	manifest "github.com/mutablelogic/go-tools/pkg/manifest"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type GenerateToolSchemaCommand struct {
	Registry string `name:"registry" default:"assets/functions.json" help:"Registry of tool exports"`
	Output   string `name:"output" default:"assets/tools.schema.yaml" help:"Manifest output path"`
	Parallel int    `name:"parallel" default:"1" help:"Number of tools to load concurrently"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	bloomreachTarget = "bloomreach/search"
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *GenerateToolSchemaCommand) Run(ctx *Globals) error {
	ctx.log.Info("generating tool schemas")
	generator, err := manifest.New(ctx.Resolver(),
		manifest.OptLogger(ctx.log),
		manifest.OptParallel(cmd.Parallel),
	)
	if err != nil {
		return err
	}
	_, err = generator.Run(ctx.ctx, cmd.Registry, cmd.Output)
	return err
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Resolver returns the load targets which can be named in a registry
func (g *Globals) Resolver() manifest.Resolver {
	return manifest.Resolver{
		bloomreachTarget: func() (manifest.Module, error) {
			exports, err := bloomreach.Exports(g.bloomreachOpts()...)
			if err != nil {
				return nil, err
			}
			return manifest.Module(exports), nil
		},
	}
}
