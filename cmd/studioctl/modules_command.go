package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studioctl/internal/studio"
)

func newModulesCommand(ctx *commandContext) *cobra.Command {
	var withTypes bool

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List modules in the loaded application",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(sessionCtx context.Context, client *studio.Client) error {
				names, err := client.Modules(sessionCtx)
				if err != nil {
					return err
				}

				if !withTypes {
					if ctx.jsonOutput() {
						return writeJSON(cmd, names)
					}
					for _, name := range names {
						fmt.Fprintln(cmd.OutOrStdout(), name)
					}
					return nil
				}

				type moduleEntry struct {
					Name string `json:"name"`
					Type string `json:"type"`
				}
				entries := make([]moduleEntry, 0, len(names))
				for _, name := range names {
					typ, err := client.ModuleType(sessionCtx, name)
					if err != nil {
						return err
					}
					entries = append(entries, moduleEntry{Name: name, Type: typ})
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, entries)
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{entry.Name, entry.Type})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Module", "Type"},
					rows,
					[]columnAlignment{alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&withTypes, "types", false, "Include each module's type (one extra call per module)")
	return cmd
}

func newModuleTypeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "module-type <module>",
		Short: "Show the type of a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(sessionCtx context.Context, client *studio.Client) error {
				typ, err := client.ModuleType(sessionCtx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), typ)
				return nil
			})
		},
	}
}

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show information about the loaded application",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(sessionCtx context.Context, client *studio.Client) error {
				info, err := client.ApplicationInformation(sessionCtx)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, info)
				}
				for _, key := range sortedKeys(info) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", key, renderValue(info[key]))
				}
				return nil
			})
		},
	}
}

func newShutdownCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shutdown",
		Short: "Ask a running studio instance to exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(sessionCtx context.Context, client *studio.Client) error {
				return client.Shutdown(sessionCtx)
			})
		},
	}
}
