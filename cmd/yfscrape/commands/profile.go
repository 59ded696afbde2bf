package commands

import (
	"strconv"
	"yfscrape/internal/scrapers/yahoo"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

func profileFields(p *yahoo.Profile) *fields {
	f := &fields{}
	name, err := p.Name()
	f.add("Name", name, err)
	price, err := p.CurrentPrice()
	f.number("Current price", price, err)
	sector, err := p.Sector()
	f.add("Sector", sector, err)
	industry, err := p.Industry()
	f.add("Industry", industry, err)
	employees, err := p.FullTimeEmployees()
	f.add("Full time employees", strconv.Itoa(employees), err)
	return f
}

var profileCmd = &cobra.Command{
	Use:   "profile <ticker>",
	Short: "Prints the company profile of a ticker.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := env.client.Profile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return profileFields(p).render(env.out, args[0])
	},
}
