package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/financehub-dev/financehub/internal/config"
	"github.com/financehub-dev/financehub/internal/export"
	"github.com/financehub-dev/financehub/internal/finance"
	"github.com/financehub-dev/financehub/internal/logctx"
	"github.com/financehub-dev/financehub/internal/model"
	"github.com/financehub-dev/financehub/internal/render"
	"github.com/financehub-dev/financehub/internal/storage"
)

// deps are the parts of the environment tests replace.
type deps struct {
	today func() model.Date
	now   func() time.Time
	gen   finance.Generator
}

func defaultDeps() deps {
	return deps{today: model.Today, now: time.Now}
}

// app is the state shared by every command of one invocation.
type app struct {
	deps

	configPath string
	envFile    string
	verbose    bool
	raw        bool
	yes        bool

	cfg *config.Config
}

func newApp(d deps) *app {
	return &app{deps: d}
}

// setup loads configuration and installs the logger. It runs before every command.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if cmd.Flags().Changed("raw") {
		cfg.Display.Raw = a.raw
	}
	a.cfg = cfg

	logger := logctx.New(cmd.ErrOrStderr(), a.verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logctx.WithLogger(ctx, logger))
	logger.DebugContext(ctx, "configuration loaded", "path", a.configPath, "backend", cfg.Storage.Backend)
	return nil
}

// resolve makes a relative path relative to the config file's directory.
func (a *app) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(a.configPath), path)
}

func (a *app) openStore(ctx context.Context) (storage.Store, error) {
	sc := a.cfg.Storage
	store, err := storage.Open(ctx, storage.Options{
		Backend:         sc.Backend,
		Dir:             a.resolve(sc.Dir),
		SQLitePath:      a.resolve(sc.SQLitePath),
		MongoURI:        sc.MongoURI,
		MongoDatabase:   sc.MongoDatabase,
		MongoCollection: sc.MongoCollection,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", sc.Backend, err)
	}
	return store, nil
}

type storeFunc func(cmd *cobra.Command, args []string, store storage.Store) error

// withStore opens local storage for the duration of fn.
func (a *app) withStore(fn storeFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		store, err := a.openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			if cerr := store.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing storage: %w", cerr)
			}
		}()
		return fn(cmd, args, store)
	}
}

type serviceFunc func(cmd *cobra.Command, args []string, svc *finance.Service) error

// withService opens the ledger for the duration of fn.
func (a *app) withService(fn serviceFunc) func(*cobra.Command, []string) error {
	return a.withStore(func(cmd *cobra.Command, args []string, store storage.Store) error {
		svc, err := finance.Open(cmd.Context(), store, a.serviceOptions()...)
		if err != nil {
			return err
		}
		return fn(cmd, args, svc)
	})
}

func (a *app) serviceOptions() []finance.Option {
	opts := []finance.Option{finance.WithClock(a.today)}
	if a.gen != nil {
		opts = append(opts, finance.WithGenerator(a.gen))
	}
	return opts
}

func (a *app) renderer(svc *finance.Service) *render.Renderer {
	return render.New(svc.Catalog(), svc.Settings())
}

// show prints a rendered page, styled unless raw output is configured.
func (a *app) show(cmd *cobra.Command, md string) error {
	d := a.cfg.Display
	out, err := render.Terminal(md, d.Style, d.Width, d.Raw)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

// exportCSV writes rows to <dir>/<name>.csv and reports where they went.
func (a *app) exportCSV(cmd *cobra.Command, dir, name string, rows []export.Row) error {
	path, ok, err := export.WriteFile(dir, name, rows)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing to export for %s.\n", name)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", len(rows), path)
	return nil
}

// confirm asks before destructive operations unless --yes was given.
func (a *app) confirm(cmd *cobra.Command, question string) (bool, error) {
	return a.prompter(cmd).Confirm(cmd.Context(), question)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
