package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"studioctl/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past automation sessions",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryStatsCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, records)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No sessions recorded")
				return nil
			}

			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					shortID(rec.ID),
					rec.Mode,
					fmt.Sprintf("%d", rec.PID),
					renderStatus(rec.Status, colorize),
					rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
					renderDuration(rec),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Session", "Mode", "PID", "Status", "Started", "Duration"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of sessions to show")
	return cmd
}

func newHistoryStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show session counts per status",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, stats)
			}

			printer := message.NewPrinter(language.English)
			out := cmd.OutOrStdout()
			total := 0
			for _, status := range []string{history.StatusCompleted, history.StatusFailed, history.StatusRunning} {
				printer.Fprintf(out, "%-10s %d\n", status, stats[status])
				total += stats[status]
			}
			printer.Fprintf(out, "%-10s %d\n", "total", total)
			fmt.Fprintf(out, "Database: %s\n", store.Path())
			return nil
		},
	}
}

func openHistory(ctx *commandContext) (*history.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func renderStatus(status string, colorize bool) string {
	if !colorize {
		return status
	}
	switch status {
	case history.StatusCompleted:
		return ansiGreen + status + ansiReset
	case history.StatusFailed:
		return ansiRed + status + ansiReset
	default:
		return status
	}
}

func renderDuration(rec history.Record) string {
	if rec.StartedAt.IsZero() || rec.FinishedAt.IsZero() {
		return "-"
	}
	return rec.FinishedAt.Sub(rec.StartedAt).Round(time.Millisecond).String()
}
