package commands

import (
	"github.com/spf13/cobra"

	"github.com/yourorg/financiero/internal/finance"
)

var (
	employerSalary string
	benefits       string
)

func employerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employer",
		Short: "Total payroll cost of a salary for the employer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return calculate(cmd, finance.DomainEmployer, finance.Fields{
				finance.FieldBaseSalary:         employerSalary,
				finance.FieldAdditionalBenefits: benefits,
			})
		},
	}
	cmd.Flags().StringVar(&employerSalary, "salary", "", "monthly base salary")
	cmd.Flags().StringVar(&benefits, "benefits", "", "additional benefits (default 0)")
	return cmd
}
