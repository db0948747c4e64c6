package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/financehub-dev/financehub/internal/activity"
	"github.com/financehub-dev/financehub/internal/finance"
	"github.com/financehub-dev/financehub/internal/gitops"
	"github.com/financehub-dev/financehub/internal/logctx"
	"github.com/financehub-dev/financehub/internal/storage"
)

// versionedDir returns the file store directory when git versioning is on.
func (a *app) versionedDir() (string, bool) {
	sc := a.cfg.Storage
	if !sc.Git || sc.Backend != storage.BackendFile {
		return "", false
	}
	return a.resolve(sc.Dir), true
}

// initVersioning turns the file store into a git repository if it is not one yet.
func (a *app) initVersioning(ctx context.Context) error {
	dir, ok := a.versionedDir()
	if !ok || gitops.IsRepo(dir) {
		return nil
	}
	if err := gitops.Init(ctx, dir); err != nil {
		return fmt.Errorf("versioning %s: %w", dir, err)
	}
	return nil
}

// record notes a successful change: the file store is committed when
// versioned, then the change is appended to the activity log. Failures are
// logged and do not fail the command.
func (a *app) record(cmd *cobra.Command, action, subject, details string) {
	ctx := cmd.Context()
	logger := logctx.FromContext(ctx)
	e := activity.Entry{Timestamp: a.now(), Action: action, Subject: subject, Details: details}

	if dir, ok := a.versionedDir(); ok {
		msg := action
		if subject != "" {
			msg += " " + subject
		}
		if details != "" {
			msg += ": " + details
		}
		hash, err := gitops.CommitAll(ctx, dir, msg, gitops.DefaultAuthor)
		switch {
		case err == nil:
			e.Commit = hash
		case errors.Is(err, gitops.ErrNoChanges):
		default:
			logger.WarnContext(ctx, "Committing storage failed", "dir", dir, "error", err)
		}
	}

	if a.cfg.ActivityLog == "" {
		return
	}
	if err := activity.Append(a.resolve(a.cfg.ActivityLog), []activity.Entry{e}); err != nil {
		logger.WarnContext(ctx, "Writing activity log failed", "error", err)
	}
}

func newLogCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent changes to the ledger",
		Args:  cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
			if a.cfg.ActivityLog == "" {
				return errors.New("activity log is disabled (activity_log is empty)")
			}
			entries, err := activity.Read(a.resolve(a.cfg.ActivityLog))
			if err != nil {
				return err
			}
			md, err := a.renderer(svc).Activity(activity.Latest(entries, limit))
			if err != nil {
				return err
			}
			return a.show(cmd, md)
		}),
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries, 0 for all")
	return cmd
}
