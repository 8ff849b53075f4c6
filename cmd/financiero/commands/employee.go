package commands

import (
	"github.com/spf13/cobra"

	"github.com/yourorg/financiero/internal/finance"
)

var (
	employeeID     string
	employeeSalary string
	dayHours       string
	nightHours     string
	sundayHours    string
)

func employeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Net monthly pay of an employee including overtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return calculate(cmd, finance.DomainEmployee, finance.Fields{
				finance.FieldEmployeeID:          employeeID,
				finance.FieldBaseSalary:          employeeSalary,
				finance.FieldDayOvertimeHours:    dayHours,
				finance.FieldNightOvertimeHours:  nightHours,
				finance.FieldSundayOvertimeHours: sundayHours,
			})
		},
	}
	cmd.Flags().StringVar(&employeeID, "id", "", "employee id")
	cmd.Flags().StringVar(&employeeSalary, "salary", "", "monthly base salary")
	cmd.Flags().StringVar(&dayHours, "day-hours", "", "daytime overtime hours")
	cmd.Flags().StringVar(&nightHours, "night-hours", "", "night overtime hours")
	cmd.Flags().StringVar(&sundayHours, "sunday-hours", "", "sunday overtime hours")
	return cmd
}
