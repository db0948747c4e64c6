package commands

import (
	"github.com/spf13/cobra"

	"github.com/financehub-dev/financehub/internal/export"
	"github.com/financehub-dev/financehub/internal/finance"
	"github.com/financehub-dev/financehub/internal/reports"
)

func newCashFlowCommand(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "cashflow",
		Short: "Weekly and daily paid activity of a month",
		Args:  cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
			m, err := reports.ParseMonth(month, svc.Today())
			if err != nil {
				return err
			}
			cf := reports.BuildCashFlow(svc.Transactions(), m, svc.Settings().WeekStart())
			md, err := a.renderer(svc).CashFlow(cf)
			if err != nil {
				return err
			}
			return a.show(cmd, md)
		}),
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (default current)")
	return cmd
}

func newReportCommand(a *app) *cobra.Command {
	var month string
	var exportDir string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Category and cost center analysis of a month",
		Args:  cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
			m, err := reports.ParseMonth(month, svc.Today())
			if err != nil {
				return err
			}
			rep := reports.BuildReport(svc.Transactions(), svc.Catalog(), m)
			if exportDir != "" {
				if err := a.exportCSV(cmd, exportDir, export.CategoryFile, export.CategoryRows(rep.Categories)); err != nil {
					return err
				}
				return a.exportCSV(cmd, exportDir, export.CostCenterFile, export.CostCenterRows(rep.CostCenters))
			}
			md, err := a.renderer(svc).Report(rep)
			if err != nil {
				return err
			}
			return a.show(cmd, md)
		}),
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (default current)")
	cmd.Flags().StringVar(&exportDir, "export", "", "write both breakdowns as CSV files to `dir` instead")
	return cmd
}
