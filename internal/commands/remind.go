package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/financehub-dev/financehub/internal/finance"
	"github.com/financehub-dev/financehub/internal/remind"
)

func newRemindCommand(a *app) *cobra.Command {
	var force, stdout bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send a digest of upcoming and overdue bills",
		Long: "Send a digest of upcoming and overdue bills to the configured Discord channel,\n" +
			"or print it when no channel is configured.",
		Args: cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
			var sink remind.Sink = remind.WriterSink{W: cmd.OutOrStdout()}
			dc := a.cfg.Discord
			if !stdout && dc.ChannelID != "" {
				discord, err := remind.NewDiscordSink(dc.Token, dc.ChannelID)
				if err != nil {
					return err
				}
				sink = discord
			}

			d := remind.Build(svc.Transactions(), svc.Today())
			sent, err := remind.Send(cmd.Context(), sink, a.renderer(svc), d, force)
			if err != nil {
				return err
			}
			if !sent {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing due and nothing overdue.")
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&force, "force", false, "send even when there is nothing to report")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print instead of posting to Discord")

	return cmd
}
