package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/financehub-dev/financehub/internal/buildinfo"
	"github.com/financehub-dev/financehub/internal/logctx"
	"github.com/financehub-dev/financehub/internal/notifier"
	"github.com/financehub-dev/financehub/internal/storage"
)

func (a *app) prompter(cmd *cobra.Command) notifier.Prompter {
	return &notifier.TerminalPrompter{
		In:        cmd.InOrStdin(),
		Out:       cmd.OutOrStdout(),
		AssumeYes: a.yes,
	}
}

func (a *app) newNotifier(cmd *cobra.Command, store storage.Store) (*notifier.Notifier, error) {
	url := a.cfg.Notifier.ManifestURL
	if url == "" {
		return nil, fmt.Errorf("no release manifest configured: set notifier.manifest_url or FINANCEHUB_MANIFEST_URL")
	}
	out := cmd.OutOrStdout()
	source := notifier.NewManifestSource(nil, url, buildinfo.Version)
	return notifier.New(store, source, a.prompter(cmd),
		notifier.WithInterval(a.cfg.Notifier.CheckInterval),
		notifier.WithReload(func(u notifier.Update) {
			fmt.Fprintf(out, "Finance Hub %s is ready: %s\nRestart financehub to use it.\n", u.Version, u.URL)
		}),
		notifier.WithInstaller(func(ctx context.Context) error {
			if fileExists(a.configPath) {
				return nil
			}
			return a.install(ctx)
		}),
	), nil
}

func newUpdateCommand(a *app) *cobra.Command {
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Check for new releases",
	}
	updateCmd.AddCommand(
		&cobra.Command{
			Use:   "check",
			Short: "Offer the install step and any waiting update once",
			Args:  cobra.NoArgs,
			RunE: a.withStore(func(cmd *cobra.Command, _ []string, store storage.Store) error {
				n, err := a.newNotifier(cmd, store)
				if err != nil {
					return err
				}
				ctx := cmd.Context()
				if _, err := n.CheckInstall(ctx); err != nil {
					return err
				}
				outcome, err := n.CheckUpdate(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				switch outcome {
				case notifier.NoUpdate:
					fmt.Fprintf(out, "Finance Hub %s is up to date.\n", buildinfo.Version)
				case notifier.Declined:
					fmt.Fprintln(out, "\nUpdate postponed. You will be asked again in an hour.")
				case notifier.Snoozed:
					fmt.Fprintln(out, "An update was postponed recently. Run again later to be asked.")
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Check for updates periodically until interrupted",
			Args:  cobra.NoArgs,
			RunE: a.withStore(func(cmd *cobra.Command, _ []string, store storage.Store) error {
				n, err := a.newNotifier(cmd, store)
				if err != nil {
					return err
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				logctx.FromContext(ctx).DebugContext(ctx, "watching for updates", "interval", a.cfg.Notifier.CheckInterval)
				return n.Run(ctx)
			}),
		},
	)
	return updateCmd
}
