package commands

import (
	"yfscrape/internal/scrapers/yahoo"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var screenerQuery yahoo.ScreenerQuery

func init() {
	flags := screenerCmd.Flags()
	flags.StringVar(&screenerQuery.Asset, "asset", "stock", "The asset type to list: stock, etf or mutualfund.")
	flags.StringVar(&screenerQuery.Predefined, "predefined", "", "The id of a predefined screener, like day_gainers.")
	flags.StringVar(&screenerQuery.URL, "url", "", "The url of a saved screener.")
	flags.IntVar(&screenerQuery.Limit, "limit", 100, "The most rows to print.")
	rootCmd.AddCommand(screenerCmd)
}

var screenerCmd = &cobra.Command{
	Use:   "screener [--asset <type>] [--predefined <id>] [--url <url>] [--limit <n>]",
	Short: "Lists the tickers returned by a screener.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := env.client.Screen(cmd.Context(), screenerQuery)
		if err != nil {
			return err
		}
		rows := make([]table.Row, len(results))
		for i, r := range results {
			rows[i] = table.Row{r.Symbol, r.Name, r.MarketCap}
		}
		return env.out.render("Screener", table.Row{"Symbol", "Name", "Market cap"}, rows)
	},
}
