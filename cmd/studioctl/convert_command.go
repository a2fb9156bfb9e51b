package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"studioctl/internal/format"
)

// Studio scripts exchange timestamps as spreadsheet serial dates; these
// helpers convert them without a studio connection.
func newConvertCommand() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:         "convert",
		Short:       "Convert between studio dates and serial date numbers",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	convertCmd.AddCommand(&cobra.Command{
		Use:   "serial <studio-date>",
		Short: "Convert a studio date (e.g. 2024-03-01T12:30:45) to a serial date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serial, err := format.StudioDateToSerial(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(serial, 'f', -1, 64))
			return nil
		},
	})

	convertCmd.AddCommand(&cobra.Command{
		Use:   "date <serial>",
		Short: "Convert a serial date number to a studio date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serial, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse serial %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.SerialToStudioDate(serial))
			return nil
		},
	})

	return convertCmd
}
