package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolCommands struct {
	ListTools ListToolsCommand `cmd:"" name:"tools" help:"List available tools." group:"TOOL"`
}

type ListToolsCommand struct {
	JSON bool `name:"json" help:"Output as JSON"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCommand) Run(ctx *Globals) error {
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}

	if cmd.JSON {
		type toolInfo struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		output := []toolInfo{}
		for _, t := range toolkit.Tools() {
			output = append(output, toolInfo{
				Name:        t.Name(),
				Description: t.Description(),
			})
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, t := range toolkit.Tools() {
		fmt.Fprintf(w, "%s\t%s\n", t.Name(), t.Description())
	}
	return w.Flush()
}
