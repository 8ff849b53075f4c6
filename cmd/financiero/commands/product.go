package commands

import (
	"github.com/spf13/cobra"

	"github.com/yourorg/financiero/internal/finance"
)

var (
	productName  string
	basePrice    string
	cost         string
	fixedCosts   string
	variableCost string
	investment   string
)

func productCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Price with tax, margin, break-even units and ROI of a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return calculate(cmd, finance.DomainProduct, finance.Fields{
				finance.FieldProductName:  productName,
				finance.FieldBasePrice:    basePrice,
				finance.FieldCost:         cost,
				finance.FieldFixedCosts:   fixedCosts,
				finance.FieldVariableCost: variableCost,
				finance.FieldInvestment:   investment,
			})
		},
	}
	cmd.Flags().StringVar(&productName, "name", "", "product name")
	cmd.Flags().StringVar(&basePrice, "base-price", "", "price before tax")
	cmd.Flags().StringVar(&cost, "cost", "", "unit cost")
	cmd.Flags().StringVar(&fixedCosts, "fixed-costs", "", "fixed costs")
	cmd.Flags().StringVar(&variableCost, "variable-cost", "", "variable cost per unit")
	cmd.Flags().StringVar(&investment, "investment", "", "total investment")
	return cmd
}
