package commands

import (
	"github.com/spf13/cobra"

	"github.com/financehub-dev/financehub/internal/finance"
	"github.com/financehub-dev/financehub/internal/reports"
)

func newDashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show balance, monthly totals and upcoming due dates",
		Args:    cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
			d := reports.BuildDashboard(svc.Transactions(), svc.Catalog(), svc.Today())
			md, err := a.renderer(svc).Dashboard(d)
			if err != nil {
				return err
			}
			return a.show(cmd, md)
		}),
	}
}
