package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/financehub-dev/financehub/internal/config"
	"github.com/financehub-dev/financehub/internal/finance"
	"github.com/financehub-dev/financehub/internal/notifier"
	"github.com/financehub-dev/financehub/internal/storage"
)

func newInitCommand(a *app) *cobra.Command {
	var backend string
	var empty, git bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a Finance Hub workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return a.runInit(cmd, absDir, backend, empty, git)
		},
	}

	cmd.Flags().StringVar(&backend, "backend", storage.BackendFile, "storage backend: file, sqlite or mongo")
	cmd.Flags().BoolVar(&empty, "empty", false, "start without demo transactions")
	cmd.Flags().BoolVar(&git, "git", false, "version the file store with git")

	return cmd
}

func (a *app) runInit(cmd *cobra.Command, dir, backend string, empty, git bool) error {
	path := filepath.Join(dir, config.FileName)
	if fileExists(path) {
		return fmt.Errorf("%s already exists", path)
	}

	// Workspace config starts from defaults plus environment overrides,
	// never from another workspace's file.
	cfg := config.Default()
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	cfg.Storage.Backend = backend
	if git {
		if backend != storage.BackendFile {
			return fmt.Errorf("--git needs the %s backend", storage.BackendFile)
		}
		cfg.Storage.Git = true
	}
	a.cfg = cfg
	a.configPath = path

	if err := a.install(cmd.Context()); err != nil {
		return err
	}

	return a.withStore(func(cmd *cobra.Command, _ []string, store storage.Store) error {
		ctx := cmd.Context()
		svc, err := finance.Open(ctx, store, a.serviceOptions()...)
		if err != nil {
			return err
		}
		if empty {
			if err := svc.ReplaceTransactions(ctx, nil); err != nil {
				return err
			}
		}
		if err := notifier.New(store, nil, nil).MarkInstalled(ctx); err != nil {
			return err
		}
		if err := a.initVersioning(ctx); err != nil {
			return err
		}
		a.record(cmd, "init", "", fmt.Sprintf("%s backend", backend))
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized Finance Hub workspace at %s (%d transactions)\n",
			dir, len(svc.Transactions()))
		return nil
	})(cmd, nil)
}

// install writes the current configuration to the config path.
func (a *app) install(_ context.Context) error {
	if err := config.Save(a.configPath, a.cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
