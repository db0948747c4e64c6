// Package notifier tells the user about new releases and offers a one-time
// install step.
//
// Both prompts can be dismissed. Dismissals are kept in local storage as a
// millisecond timestamp until which the prompt stays quiet. RFC 3339
// timestamps are accepted on read.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/financehub-dev/financehub/internal/logctx"
	"github.com/financehub-dev/financehub/internal/storage"
)

const (
	KeyUpdateDismissedUntil  = "pwa-update-dismissed-until"
	KeyInstallDismissedUntil = "pwa-dismissed-until"
	KeyInstalled             = "pwa-installed"

	UpdateSnooze  = time.Hour
	InstallSnooze = 7 * 24 * time.Hour

	// DefaultInterval is how often Run checks for updates.
	DefaultInterval = time.Hour

	// SkipWaiting asks a waiting update to take over immediately.
	SkipWaiting = "SKIP_WAITING"

	installedValue = "true"
)

// Update describes a release that is ready to be activated.
type Update struct {
	Version string
	URL     string
}

// UpdateSource finds and activates waiting updates.
type UpdateSource interface {
	// Check returns the waiting update, or nil when there is none.
	Check(ctx context.Context) (*Update, error)
	// Activate sends a control message to the waiting update.
	Activate(ctx context.Context, message string) error
	// Activated is closed when the waiting update has taken over.
	Activated() <-chan struct{}
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

// WithInterval sets the Run polling interval.
func WithInterval(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.interval = d
		}
	}
}

// WithReload sets the hook called after an update has been activated.
func WithReload(reload func(Update)) Option {
	return func(n *Notifier) { n.reload = reload }
}

// WithInstaller makes the install prompt available. install runs when the
// user accepts it.
func WithInstaller(install func(context.Context) error) Option {
	return func(n *Notifier) { n.install = install }
}

// Notifier drives the update and install prompts.
type Notifier struct {
	store    storage.Store
	source   UpdateSource
	prompt   Prompter
	now      func() time.Time
	interval time.Duration
	reload   func(Update)
	install  func(context.Context) error

	reloadOnce sync.Once
}

// New returns a Notifier. source may be nil when no update channel is configured.
func New(store storage.Store, source UpdateSource, prompt Prompter, opts ...Option) *Notifier {
	n := &Notifier{
		store:    store,
		source:   source,
		prompt:   prompt,
		now:      time.Now,
		interval: DefaultInterval,
		reload:   func(Update) {},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Outcome is what a CheckUpdate call ended with.
type Outcome int

const (
	// NoUpdate means the source reported nothing newer.
	NoUpdate Outcome = iota
	// Snoozed means an earlier dismissal is still in effect, so the source
	// was not consulted.
	Snoozed
	// Declined means an update was offered and dismissed.
	Declined
	// Activated means an update was accepted and has taken over.
	Activated
)

func (o Outcome) String() string {
	switch o {
	case Snoozed:
		return "snoozed"
	case Declined:
		return "declined"
	case Activated:
		return "activated"
	}
	return "none"
}

// CheckUpdate looks for a waiting update and offers it.
func (n *Notifier) CheckUpdate(ctx context.Context) (Outcome, error) {
	if n.source == nil {
		return NoUpdate, nil
	}
	snoozed, err := n.snoozed(ctx, KeyUpdateDismissedUntil)
	if err != nil {
		return NoUpdate, err
	}
	if snoozed {
		return Snoozed, nil
	}

	u, err := n.source.Check(ctx)
	if err != nil {
		return NoUpdate, fmt.Errorf("checking for updates: %w", err)
	}
	if u == nil {
		return NoUpdate, nil
	}

	ok, err := n.prompt.Confirm(ctx, fmt.Sprintf("Finance Hub %s is available. Update now?", u.Version))
	if err != nil {
		return NoUpdate, err
	}
	if !ok {
		return Declined, n.snooze(ctx, KeyUpdateDismissedUntil, UpdateSnooze)
	}

	if err := n.source.Activate(ctx, SkipWaiting); err != nil {
		return NoUpdate, fmt.Errorf("activating update: %w", err)
	}
	select {
	case <-n.source.Activated():
	case <-ctx.Done():
		return NoUpdate, ctx.Err()
	}
	n.reloadOnce.Do(func() { n.reload(*u) })
	return Activated, nil
}

// CheckInstall offers the install step unless it is done, unavailable or
// dismissed. It reports whether the install ran.
func (n *Notifier) CheckInstall(ctx context.Context) (bool, error) {
	if n.install == nil {
		return false, nil
	}
	installed, err := n.Installed(ctx)
	if err != nil || installed {
		return false, err
	}
	snoozed, err := n.snoozed(ctx, KeyInstallDismissedUntil)
	if err != nil || snoozed {
		return false, err
	}

	ok, err := n.prompt.Confirm(ctx, "Install Finance Hub for this directory?")
	if err != nil {
		return false, err
	}
	if !ok {
		return false, n.snooze(ctx, KeyInstallDismissedUntil, InstallSnooze)
	}
	if err := n.install(ctx); err != nil {
		return false, fmt.Errorf("installing: %w", err)
	}
	return true, n.MarkInstalled(ctx)
}

// Installed reports whether the install step has completed.
func (n *Notifier) Installed(ctx context.Context) (bool, error) {
	v, err := n.store.Get(ctx, KeyInstalled)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", KeyInstalled, err)
	}
	return string(v) == installedValue, nil
}

// MarkInstalled records that the app is installed so the prompt never shows again.
func (n *Notifier) MarkInstalled(ctx context.Context) error {
	if err := n.store.Set(ctx, KeyInstalled, []byte(installedValue)); err != nil {
		return fmt.Errorf("writing %s: %w", KeyInstalled, err)
	}
	return nil
}

// Run checks for updates now and then every interval until ctx is done.
// Check failures are logged and otherwise ignored.
func (n *Notifier) Run(ctx context.Context) error {
	logger := logctx.FromContext(ctx)
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()
	for {
		if _, err := n.CheckUpdate(ctx); err != nil && ctx.Err() == nil {
			logger.WarnContext(ctx, "update check failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (n *Notifier) snoozed(ctx context.Context, key string) (bool, error) {
	v, err := n.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	until, ok := parseDismissal(string(v))
	if !ok {
		logctx.FromContext(ctx).DebugContext(ctx, "ignoring malformed dismissal", "key", key, "value", string(v))
		return false, nil
	}
	return n.now().Before(until), nil
}

// parseDismissal reads a millisecond epoch or an RFC 3339 timestamp, the
// form browser builds write.
func parseDismissal(v string) (time.Time, bool) {
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.UnixMilli(ms), true
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (n *Notifier) snooze(ctx context.Context, key string, d time.Duration) error {
	until := n.now().Add(d).UnixMilli()
	if err := n.store.Set(ctx, key, []byte(strconv.FormatInt(until, 10))); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	logctx.FromContext(ctx).DebugContext(ctx, "prompt dismissed", "key", key, "until", time.UnixMilli(until))
	return nil
}
