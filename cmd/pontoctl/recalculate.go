package main

import (
	"github.com/gruamaster/ponto-backend-go/internal/app"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/spf13/cobra"
)

var (
	recalcEmployee string
	recalcFrom     string
	recalcTo       string
	recalcAll      bool
)

var recalculateCmd = &cobra.Command{
	Use:   "recalculate",
	Short: "Recompute worked hours, overtime and status of stored records",
	Long: `By default only records stored with zero worked hours are touched.
Use --all to recompute every record in the range.`,
	Args: cobra.NoArgs,
	RunE: runRecalculate,
}

func init() {
	recalculateCmd.Flags().StringVar(&recalcEmployee, "employee", "", "Restrict to one employee id")
	recalculateCmd.Flags().StringVar(&recalcFrom, "from", "", "First date, YYYY-MM-DD")
	recalculateCmd.Flags().StringVar(&recalcTo, "to", "", "Last date, YYYY-MM-DD")
	recalculateCmd.Flags().BoolVar(&recalcAll, "all", false, "Recompute records that already have hours")
}

func runRecalculate(cmd *cobra.Command, args []string) error {
	req := timeclock.RecalculateRequest{
		EmployeeID:     optional(recalcEmployee),
		StartDate:      optional(recalcFrom),
		EndDate:        optional(recalcTo),
		RecalculateAll: recalcAll,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	return withApp(cmd.Context(), func(a *app.App) error {
		resp, err := a.Records.Recalculate(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	})
}
