package commands

import (
	"errors"
	"yfscrape/internal/scrapers/yahoo"
	"yfscrape/lib/extract"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	statementLabel   string
	statementPeriods []string
)

func init() {
	statementCmd.Flags().StringVar(&statementLabel, "label", "", "Only print the values of this line item.")
	statementCmd.Flags().StringSliceVar(&statementPeriods, "periods", nil, "The periods to print with --label, e.g. TTM,year_1.")
	rootCmd.AddCommand(statementCmd)
}

var statementCmd = &cobra.Command{
	Use:   "statement <ticker> <financials|income-statement|balance-sheet|cash-flow>",
	Short: "Prints a financial statement, or the values of one line item.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, err := yahoo.ParseSheet(args[1])
		if err != nil {
			return err
		}
		s, err := env.client.Statement(cmd.Context(), args[0], sheet)
		if err != nil {
			return err
		}

		if statementLabel == "" {
			header := table.Row{"Line item"}
			for _, p := range sheet.Periods() {
				header = append(header, string(p))
			}
			var rows []table.Row
			for _, item := range s.Items() {
				row := table.Row{item.Label}
				for _, cell := range item.Cells {
					row = append(row, cell)
				}
				rows = append(rows, row)
			}
			return env.out.render(args[0]+" "+string(sheet), header, rows)
		}

		periods := sheet.Periods()
		if len(statementPeriods) > 0 {
			periods = make([]yahoo.Period, len(statementPeriods))
			for i, raw := range statementPeriods {
				periods[i], err = yahoo.ParsePeriod(raw)
				if err != nil {
					return err
				}
			}
		}

		var rows []table.Row
		for _, p := range periods {
			value, err := s.Value(statementLabel, p)
			var noData *extract.NoDataError
			switch {
			// a reason means the period itself does not exist on this sheet
			case errors.As(err, &noData) && noData.Reason == "":
				rows = append(rows, table.Row{string(p), missing})
			case err != nil:
				return err
			default:
				rows = append(rows, table.Row{string(p), formatNumber(value)})
			}
		}
		return env.out.render(statementLabel, table.Row{"Period", "Value"}, rows)
	},
}
