package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"studioctl/internal/studio"
)

func newGraphCommand(ctx *commandContext) *cobra.Command {
	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "Edit the application's module graph",
	}

	graphCmd.AddCommand(newGraphConnectCommand(ctx))
	graphCmd.AddCommand(newGraphDisconnectCommand(ctx))
	graphCmd.AddCommand(newGraphInstanceCommand(ctx))
	graphCmd.AddCommand(newGraphRenameCommand(ctx))
	graphCmd.AddCommand(newGraphDeleteCommand(ctx))
	graphCmd.AddCommand(newGraphPositionCommand(ctx))

	return graphCmd
}

func newGraphConnectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "connect <from-module> <from-port> <to-module> <to-port>",
		Short: "Connect a port of one module to a port of another",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(sessionCtx context.Context, client *studio.Client) error {
				return client.ConnectModules(sessionCtx, args[0], args[1], args[2], args[3])
			})
		},
	}
}

func newGraphDisconnectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <from-module> <from-port> <to-module> <to-port>",
		Short: "Remove a connection between two module ports",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(sessionCtx context.Context, client *studio.Client) error {
				return client.DisconnectModules(sessionCtx, args[0], args[1], args[2], args[3])
			})
		},
	}
}

func newGraphInstanceCommand(ctx *commandContext) *cobra.Command {
	var x, y int
	var name string

	cmd := &cobra.Command{
		Use:   "instance <module-type>",
		Short: "Instantiate a module on the canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(sessionCtx context.Context, client *studio.Client) error {
				assigned, err := client.InstanceModule(sessionCtx, args[0], name, x, y)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), assigned)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&x, "x", 0, "Canvas x coordinate")
	cmd.Flags().IntVar(&y, "y", 0, "Canvas y coordinate")
	cmd.Flags().StringVar(&name, "name", "", "Suggested module name")
	return cmd
}

func newGraphRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <module> <new-name>",
		Short: "Rename a module, printing the name actually assigned",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(sessionCtx context.Context, client *studio.Client) error {
				assigned, err := client.RenameModule(sessionCtx, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), assigned)
				return nil
			})
		},
	}
}

func newGraphDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <module>",
		Short: "Delete a module from the application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(sessionCtx context.Context, client *studio.Client) error {
				return client.DeleteModule(sessionCtx, args[0])
			})
		},
	}
}

func newGraphPositionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "position <module>",
		Short: "Show a module's canvas coordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(sessionCtx context.Context, client *studio.Client) error {
				x, y, err := client.ModulePosition(sessionCtx, args[0])
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]int{"x": x, "y": y})
				}
				fmt.Fprintln(cmd.OutOrStdout(), strconv.Itoa(x)+" "+strconv.Itoa(y))
				return nil
			})
		},
	}
}
