package commands

import (
	"yfscrape/lib/extract"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	etfCmd.AddCommand(etfHoldingsCmd)
	etfCmd.AddCommand(etfPerformanceCmd)
	etfCmd.AddCommand(etfRiskCmd)
	rootCmd.AddCommand(etfCmd)
}

var etfCmd = &cobra.Command{
	Use:   "etf",
	Short: "Prints the holdings, performance or risk of a fund.",
}

type pairSection struct {
	name string
	get  func() ([]extract.Pair, error)
}

func sectionRows(sections []pairSection) ([]table.Row, error) {
	var rows []table.Row
	for _, s := range sections {
		pairs, err := s.get()
		if err != nil {
			return nil, err
		}
		rows = append(rows, pairRows(s.name, pairs)...)
	}
	return rows, nil
}

var etfHoldingsCmd = &cobra.Command{
	Use:   "holdings <ticker>",
	Short: "Prints the top holdings and portfolio breakdown of a fund.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := env.client.Holdings(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		top, err := h.TopHoldings()
		if err != nil {
			return err
		}
		topRows := make([]table.Row, len(top))
		for i, holding := range top {
			topRows[i] = table.Row{holding.Name, holding.Symbol, holding.Assets}
		}
		err = env.out.render("Top holdings", table.Row{"Name", "Symbol", "% Assets"}, topRows)
		if err != nil {
			return err
		}

		rows, err := sectionRows([]pairSection{
			{name: "Portfolio composition", get: h.PortfolioComposition},
			{name: "Sector weightings", get: h.SectorWeightings},
			{name: "Equity holdings", get: h.EquityHoldings},
			{name: "Bond ratings", get: h.BondRatings},
		})
		if err != nil {
			return err
		}
		return env.out.render("Breakdown", table.Row{"Section", "Label", "Value"}, rows)
	},
}

var etfPerformanceCmd = &cobra.Command{
	Use:   "performance <ticker>",
	Short: "Prints the trailing and annual returns of a fund next to its benchmark.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := env.client.Performance(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		overview, err := sectionRows([]pairSection{{name: "Overview", get: p.Overview}})
		if err != nil {
			return err
		}
		err = env.out.render("Performance overview", table.Row{"Section", "Label", "Value"}, overview)
		if err != nil {
			return err
		}

		var rows []table.Row
		periods, err := p.TrailingPeriods()
		if err != nil {
			return err
		}
		for _, period := range periods {
			r, err := p.TrailingReturn(period)
			if err != nil {
				return err
			}
			rows = append(rows, table.Row{"Trailing", r.Label, r.Fund, r.Benchmark})
		}
		years, err := p.TotalReturnYears()
		if err != nil {
			return err
		}
		for _, year := range years {
			r, err := p.TotalReturn(year)
			if err != nil {
				return err
			}
			rows = append(rows, table.Row{"Annual", r.Label, r.Fund, r.Benchmark})
		}
		return env.out.render("Returns", table.Row{"Kind", "Period", "Fund", "Benchmark"}, rows)
	},
}

var etfRiskCmd = &cobra.Command{
	Use:   "risk <ticker>",
	Short: "Prints the 3, 5 and 10 year risk statistics of a fund.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := env.client.Risk(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		var rows []table.Row
		for _, row := range r.Rows() {
			rows = append(rows, table.Row{row.Name, row.ThreeYear, row.FiveYear, row.TenYear})
		}
		return env.out.render(args[0], table.Row{"Statistic", "3 years", "5 years", "10 years"}, rows)
	},
}
