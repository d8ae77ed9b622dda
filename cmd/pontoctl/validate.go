package main

import (
	"fmt"

	"github.com/gruamaster/ponto-backend-go/internal/app"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/spf13/cobra"
)

var (
	validateEmployee string
	validateFrom     string
	validateTo       string
	validateStrict   bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report records with missing stamps or inconsistent derived fields",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateEmployee, "employee", "", "Restrict to one employee id")
	validateCmd.Flags().StringVar(&validateFrom, "from", "", "First date, YYYY-MM-DD")
	validateCmd.Flags().StringVar(&validateTo, "to", "", "Last date, YYYY-MM-DD")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit with an error when problems are found")
}

func runValidate(cmd *cobra.Command, args []string) error {
	filter := timeclock.IntegrityFilter{
		EmployeeID: optional(validateEmployee),
		StartDate:  optional(validateFrom),
		EndDate:    optional(validateTo),
	}
	if err := filter.Validate(); err != nil {
		return err
	}

	return withApp(cmd.Context(), func(a *app.App) error {
		report, err := a.Records.ValidateRecords(cmd.Context(), filter)
		if err != nil {
			return err
		}
		if err := printJSON(cmd, report); err != nil {
			return err
		}
		if validateStrict && report.TotalProblems > 0 {
			return fmt.Errorf("%d records with problems", report.Stats.WithProblems)
		}
		return nil
	})
}
