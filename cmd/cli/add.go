package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tradejournal/internal/app"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		in        app.SubmitInput
		exitQuote bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a closed trade dated today",
		Long: `Record a closed trade. Prices accept a comma or a dot as the decimal
separator and are rounded to cents.

With --exit-quote the exit price is the latest AlphaVantage quote for the
ticker (requires ALPHAVANTAGE_API_KEY).

Examples:
  tradejournal add --ticker AAPL --entry 100 --exit 105.50
  tradejournal add --ticker MSFT --entry 412,10 --exit-quote`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if exitQuote && in.Exit != "" {
				return errors.New("--exit and --exit-quote are mutually exclusive")
			}
			return withJournal(cmd, opts, false, func(env *journalEnv) error {
				if exitQuote {
					price, err := env.svc.Quote(cmd.Context(), in.Ticker)
					if errors.Is(err, app.ErrNoQuoteProvider) {
						return errors.New("set ALPHAVANTAGE_API_KEY to use --exit-quote")
					}
					if err != nil {
						return err
					}
					in.Exit = price.StringFixed(2)
				}
				return runAdd(cmd, env.svc, in)
			})
		},
	}

	cmd.Flags().StringVarP(&in.Ticker, "ticker", "t", "", "ticker symbol")
	cmd.Flags().StringVarP(&in.Entry, "entry", "e", "", "entry price")
	cmd.Flags().StringVarP(&in.Exit, "exit", "x", "", "exit price")
	cmd.Flags().BoolVar(&exitQuote, "exit-quote", false, "use the latest quote as the exit price")
	return cmd
}

func runAdd(cmd *cobra.Command, svc *app.JournalService, in app.SubmitInput) error {
	row, err := svc.Submit(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s %s entry %s exit %s result %s (%s)\n",
		row.Date, row.Ticker, row.Entry, row.Exit, row.Result, row.Class)
	return nil
}
