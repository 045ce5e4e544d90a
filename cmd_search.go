package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"geofacts/console"
	"geofacts/controller"
	"geofacts/services"

	"github.com/spf13/cobra"
)

var searchPDF string

var searchCmd = &cobra.Command{
	Use:   "search [country]",
	Short: "Look up a country, its fun fact and today's flights",
	Long: `Runs one search for the given country. Without an argument it reads
country names from standard input, one per line, until EOF.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchPDF, "pdf", "", "Write a PDF report of the last search to this file")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	r := console.NewRenderer()

	a, err := setup(ctx, controller.NotifierFunc(func(msg string) {
		fmt.Fprintln(errOut, r.Error(msg))
	}))
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.logger.Sync()

	if len(args) > 0 {
		if err := searchOnce(ctx, a, r, out, strings.Join(args, " ")); err != nil {
			return err
		}
		return writeReport(a, searchPDF)
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprint(out, "country> ")
	for in.Scan() {
		name := strings.TrimSpace(in.Text())
		if name != "" {
			// Failures are already reported through the notifier.
			_ = searchOnce(ctx, a, r, out, name)
		}
		fmt.Fprint(out, "country> ")
	}
	fmt.Fprintln(out)
	if err := in.Err(); err != nil {
		return err
	}
	return writeReport(a, searchPDF)
}

func searchOnce(ctx context.Context, a *app, r *console.Renderer, out io.Writer, name string) error {
	view, err := a.controller.Search(ctx, name)
	if errors.Is(err, controller.ErrEmptyQuery) {
		return fmt.Errorf("country name must not be empty")
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, r.View(view))
	return nil
}

func writeReport(a *app, path string) error {
	if path == "" {
		return nil
	}
	pdf, err := services.GenerateReportPDF(a.controller.View(), a.controller.History(), time.Now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
