package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourorg/financiero/internal/finance"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories [name]",
		Short: "List calculation categories, or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				cats := finance.Categories()
				if asJSON {
					return json.NewEncoder(out).Encode(cats)
				}
				for _, c := range cats {
					fmt.Fprintf(out, "%-10s %s\n", c.Domain, c.Label)
				}
				return nil
			}

			d := finance.ParseDomain(args[0])
			if !d.Calculable() {
				fmt.Fprintln(out, finance.DetailTitle(args[0]))
				return nil
			}
			fmt.Fprintln(out, d.Label())
			fmt.Fprintf(out, "campos: %s\n", strings.Join(d.InputFields(), ", "))
			return nil
		},
	}
	return cmd
}
