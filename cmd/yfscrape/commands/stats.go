package commands

import (
	"errors"
	"yfscrape/internal/scrapers/yahoo"
	"yfscrape/lib/numtext"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	statsCategory string
	statsLabel    string
)

func init() {
	statsCmd.Flags().StringVar(&statsCategory, "category", "", "Only print the statistics of this category.")
	statsCmd.Flags().StringVar(&statsLabel, "label", "", "Only print this statistic, requires --category.")
	rootCmd.AddCommand(statsCmd)
}

func statisticText(s *yahoo.Statistics, category, label string) (string, error) {
	value, err := s.Statistic(category, label)
	if errors.Is(err, numtext.ErrNoData) {
		return missing, nil
	}
	return value, err
}

var statsCmd = &cobra.Command{
	Use:   "stats <ticker> [--category <category> [--label <label>]]",
	Short: "Prints the key statistics of a ticker.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsLabel != "" && statsCategory == "" {
			return errors.New("--label requires --category")
		}
		s, err := env.client.Statistics(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		categories := s.Categories()
		if statsCategory != "" {
			categories = []string{statsCategory}
		}

		var rows []table.Row
		for _, category := range categories {
			labels := []string{statsLabel}
			if statsLabel == "" {
				labels, err = s.Labels(category)
				if err != nil {
					return err
				}
			}
			for _, label := range labels {
				value, err := statisticText(s, category, label)
				if err != nil {
					return err
				}
				rows = append(rows, table.Row{category, label, value})
			}
		}
		return env.out.render(args[0], table.Row{"Category", "Statistic", "Value"}, rows)
	},
}
