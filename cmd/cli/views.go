package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tradejournal/internal/adapters/report"
	"tradejournal/internal/adapters/tui"
	"tradejournal/internal/domain/journal"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the results table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, opts, false, func(env *journalEnv) error {
				rows := env.svc.Trades()
				if asJSON {
					return printJSON(cmd.OutOrStdout(), rows)
				}
				fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTable(rows))
				if n := len(env.loaded.Skipped); n > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "%d malformed row(s) skipped, see `tradejournal skipped`\n", n)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print rows as JSON")
	return cmd
}

func newCalendarCmd(opts *rootOptions) *cobra.Command {
	var (
		month  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month with days colored by net result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, opts, false, func(env *journalEnv) error {
				year, m, err := journal.ParseMonth(month, env.svc.Now())
				if err != nil {
					return fmt.Errorf("--month must be yyyy-MM: %w", err)
				}
				cm := env.svc.Calendar(year, m)
				if asJSON {
					return printJSON(cmd.OutOrStdout(), cm)
				}
				fmt.Fprintln(cmd.OutOrStdout(), tui.RenderMonth(cm))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "month to show as yyyy-MM (default current month)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the month grid as JSON")
	return cmd
}

func newSkippedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "skipped",
		Short: "List persisted rows that were ignored on load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, opts, false, func(env *journalEnv) error {
				out := cmd.OutOrStdout()
				skipped := env.svc.Skipped()
				if len(skipped) == 0 {
					fmt.Fprintln(out, "no malformed rows")
					return nil
				}
				for _, s := range skipped {
					fmt.Fprintf(out, "line %d: %s: %s\n", s.Line, s.Reason, strings.Join(s.Fields, ","))
				}
				return nil
			})
		},
	}
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print journal statistics as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, opts, false, func(env *journalEnv) error {
				return printJSON(cmd.OutOrStdout(), env.svc.Summary())
			})
		},
	}
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		raw   bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a markdown report of the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, opts, false, func(env *journalEnv) error {
				md := report.Markdown(report.Journal{
					Rows:    env.svc.Trades(),
					Days:    env.svc.Aggregate(),
					Summary: env.svc.Summary(),
					Skipped: len(env.svc.Skipped()),
				})
				if raw {
					fmt.Fprint(cmd.OutOrStdout(), md)
					return nil
				}
				out, err := report.Render(md, width)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	cmd.Flags().IntVar(&width, "width", 100, "wrap width")
	return cmd
}

func newUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, opts, true, func(env *journalEnv) error {
				return tui.Run(cmd.Context(), env.svc)
			})
		},
	}
}
