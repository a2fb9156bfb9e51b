package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studioctl/internal/sessionctl"
	"studioctl/internal/studio"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var loadPath string
	var scriptPath string
	var minimized bool
	var keepOpen bool
	var timeoutSeconds int
	var executable string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Launch a new studio instance, optionally load and execute, then shut it down",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := ctx.runtime()
			if err != nil {
				return err
			}
			defer cleanup()

			opts := sessionctl.DefaultStartOptions(rt.Config)
			opts.AutoShutdown = !keepOpen
			opts.Executable = executable
			if minimized {
				opts.Minimized = true
			}
			if timeoutSeconds > 0 {
				opts.Timeout = time.Duration(timeoutSeconds) * time.Second
			}

			return rt.StartNew(cmd.Context(), opts, func(sessionCtx context.Context, client *studio.Client) error {
				if loadPath != "" {
					if err := client.LoadApplication(sessionCtx, loadPath); err != nil {
						return err
					}
					if err := client.WaitForReady(sessionCtx); err != nil {
						return err
					}
				}
				if scriptPath != "" {
					if err := client.ExecuteScript(sessionCtx, scriptPath); err != nil {
						return err
					}
					if err := client.WaitForReady(sessionCtx); err != nil {
						return err
					}
				}
				if loadPath == "" && scriptPath == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "Studio started and ready")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&loadPath, "load", "", "Application file to load after startup")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Script file to execute after startup")
	cmd.Flags().BoolVar(&minimized, "minimized", false, "Start the studio minimized")
	cmd.Flags().BoolVar(&keepOpen, "keep-open", false, "Leave the studio running after the session")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "Startup readiness timeout in seconds (overrides config)")
	cmd.Flags().StringVar(&executable, "executable", "", "Studio binary to launch (overrides config and installation lookup)")

	return cmd
}

func newScriptCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "script <path>",
		Short: "Execute a script in a running studio instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStudio(cmd, func(sessionCtx context.Context, client *studio.Client) error {
				if err := client.ExecuteScript(sessionCtx, args[0]); err != nil {
					return err
				}
				return client.WaitForReady(sessionCtx)
			})
		},
	}
}
