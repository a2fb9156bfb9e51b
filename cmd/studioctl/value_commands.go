package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"studioctl/internal/studio"
)

func newGetCommand(ctx *commandContext) *cobra.Command {
	var port string
	var extended bool

	cmd := &cobra.Command{
		Use:   "get <module> <category> <property>",
		Short: "Read a module or port property",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, category, property := args[0], args[1], args[2]
			return ctx.withStudio(cmd, func(sessionCtx context.Context, client *studio.Client) error {
				var value any
				var err error
				switch {
				case port != "" && extended:
					value, err = client.PortValueExtended(sessionCtx, module, port, category, property)
				case port != "":
					value, err = client.PortValue(sessionCtx, module, port, category, property)
				case extended:
					value, err = client.ModuleValueExtended(sessionCtx, module, category, property)
				default:
					value, err = client.ModuleValue(sessionCtx, module, category, property)
				}
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, value)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderValue(value))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Read from a port of the module instead of the module itself")
	cmd.Flags().BoolVar(&extended, "extended", false, "Read the extended form of the property")
	return cmd
}

func newSetCommand(ctx *commandContext) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "set <module> <category> <property> <value>",
		Short: "Write a module or port property",
		Long: "Write a module or port property. The value is parsed as a JSON literal " +
			"(number, boolean, string, array, object); anything that does not parse is sent as a string.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, category, property := args[0], args[1], args[2]
			value := parseValueLiteral(args[3])
			return ctx.withStudio(cmd, func(sessionCtx context.Context, client *studio.Client) error {
				if port != "" {
					return client.SetPortValue(sessionCtx, module, port, category, property, value)
				}
				return client.SetModuleValue(sessionCtx, module, category, property, value)
			})
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Write to a port of the module instead of the module itself")
	return cmd
}

// parseValueLiteral interprets a command-line value the way the wire wants
// it: JSON literals pass through typed, everything else rides as a string.
func parseValueLiteral(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err == nil {
		return value
	}
	return raw
}

func renderValue(value any) string {
	if value == nil {
		return "<nil>"
	}
	switch v := value.(type) {
	case string:
		return v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
