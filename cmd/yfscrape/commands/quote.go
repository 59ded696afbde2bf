package commands

import (
	"yfscrape/internal/scrapers/yahoo"

	"github.com/spf13/cobra"
)

func init() {
	quoteCmd.AddCommand(quoteBenchmarkCmd)
	quoteCmd.AddCommand(quoteCurrencyCmd)
	quoteCmd.AddCommand(quoteETFCmd)
	rootCmd.AddCommand(quoteCmd)
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Prints the quote summary of a benchmark, currency pair or fund.",
}

func quoteFields(q *yahoo.Quote) *fields {
	f := &fields{}
	price, err := q.CurrentPrice()
	f.number("Current price", price, err)
	previous, err := q.PreviousClose()
	f.number("Previous close", previous, err)
	dayRange, err := q.DayRange()
	f.add("Day's range", dayRange, err)
	yearRange, err := q.Last52WeekRange()
	f.add("52 week range", yearRange, err)
	return f
}

var quoteBenchmarkCmd = &cobra.Command{
	Use:   "benchmark <symbol>",
	Short: "Prints the quote of a benchmark index, like GSPC.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := env.client.Benchmark(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return quoteFields(q).render(env.out, args[0])
	},
}

var quoteCurrencyCmd = &cobra.Command{
	Use:   "currency <pair>",
	Short: "Prints the quote of a currency pair, like EURUSD.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := env.client.Currency(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return quoteFields(q).render(env.out, args[0])
	},
}

var quoteETFCmd = &cobra.Command{
	Use:   "etf <ticker>",
	Short: "Prints the quote summary of a fund.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := env.client.ETFSummary(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		f := quoteFields(&e.Quote)
		netAssets, err := e.NetAssets()
		f.add("Net assets", netAssets, err)
		nav, err := e.NAV()
		f.add("NAV", nav, err)
		expenseRatio, err := e.ExpenseRatio()
		f.add("Expense ratio", expenseRatio, err)
		inception, err := e.InceptionDate()
		f.add("Inception date", inception, err)
		return f.render(env.out, args[0])
	},
}
