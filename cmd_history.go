package main

import (
	"fmt"

	"geofacts/console"

	"github.com/spf13/cobra"
)

var historyPDF string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the persisted search history",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyPDF, "pdf", "", "Also write the history as a PDF report to this file")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.logger.Sync()

	fmt.Fprint(cmd.OutOrStdout(), console.NewRenderer().History(a.controller.History()))
	return writeReport(a, historyPDF)
}
