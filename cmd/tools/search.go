package main

import (
	"encoding/json"
	"fmt"

	// Packages
	bloomreach "github.com/mutablelogic/go-tools/pkg/bloomreach"
	host "github.com/mutablelogic/go-tools/pkg/host"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type SearchCommands struct {
	Search SearchCommand `cmd:"" name:"search" help:"Search for products." group:"TOOL"`
}

type SearchCommand struct {
	Query  string `arg:"" name:"query" help:"Search query"`
	Filter string `name:"filter" help:"Filter query, as comma-separated facet:value pairs"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *SearchCommand) Run(ctx *Globals) error {
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}
	handler, err := host.Handler(toolkit, "bloomreach_search", host.WithLogger(ctx.log))
	if err != nil {
		return err
	}
	input, err := json.Marshal(bloomreach.SearchRequest{
		SearchQuery: cmd.Query,
		FilterQuery: cmd.Filter,
	})
	if err != nil {
		return err
	}

	// Print the result, or the failure
	var output any
	handler(ctx.ctx, host.Input(input), func(failure *tool.Failure, result any) {
		if failure != nil {
			output = failure
		} else {
			output = result
		}
	})
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
