package commands

import (
	"github.com/spf13/cobra"

	"github.com/financehub-dev/financehub/internal/buildinfo"
	"github.com/financehub-dev/financehub/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp(defaultDeps()))
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "financehub",
		Short:   "Small business finance ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.FileName, "config file")
	flags.StringVar(&a.envFile, "env-file", ".env", "file with FINANCEHUB_* variables")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.BoolVar(&a.raw, "raw", false, "print markdown instead of styled output")
	flags.BoolVarP(&a.yes, "yes", "y", false, "answer yes to every prompt")

	rootCmd.AddCommand(
		newInitCommand(a),
		newDashboardCommand(a),
		newTxCommand(a),
		newBillsCommand(a, payables),
		newBillsCommand(a, receivables),
		newCashFlowCommand(a),
		newReportCommand(a),
		newCategoryCommand(a),
		newCostCenterCommand(a),
		newSettingsCommand(a),
		newDataCommand(a),
		newLogCommand(a),
		newRemindCommand(a),
		newUpdateCommand(a),
	)

	return rootCmd
}
