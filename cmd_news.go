package main

import (
	"fmt"
	"strings"

	"geofacts/console"

	"github.com/spf13/cobra"
)

var newsCmd = &cobra.Command{
	Use:   "news <country>",
	Short: "Summarize recent news about a country",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNews,
}

func runNews(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.logger.Sync()

	country := strings.Join(args, " ")
	summary, err := a.news.Summarize(cmd.Context(), country)
	if err != nil {
		return fmt.Errorf("failed to summarize news for %s: %w", country, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), console.NewRenderer().News(country, summary))
	return nil
}
