package main

import (
	"fmt"

	// Packages
	version "github.com/mutablelogic/go-tools/pkg/version"
)

type VersionCommand struct{}

func (cmd *VersionCommand) Run(ctx *Globals) error {
	fmt.Println(version.New(execName()))
	return nil
}
