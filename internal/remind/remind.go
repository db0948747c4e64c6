// Package remind sends a digest of upcoming and overdue bills.
package remind

import (
	"context"
	"fmt"
	"io"

	"github.com/financehub-dev/financehub/internal/logctx"
	"github.com/financehub-dev/financehub/internal/model"
	"github.com/financehub-dev/financehub/internal/render"
	"github.com/financehub-dev/financehub/internal/reports"
)

// Sink delivers a rendered digest.
type Sink interface {
	Send(ctx context.Context, message string) error
}

// WriterSink prints digests to W.
type WriterSink struct {
	W io.Writer
}

// Send writes message followed by a newline.
func (s WriterSink) Send(_ context.Context, message string) error {
	_, err := fmt.Fprintln(s.W, message)
	return err
}

// Digest is what a reminder talks about.
type Digest struct {
	Upcoming []model.Transaction
	Overdue  int
}

// Build collects the pending bills due within a week of today and the overdue count.
func Build(txs []model.Transaction, today model.Date) Digest {
	return Digest{
		Upcoming: reports.UpcomingDueDates(txs, today),
		Overdue:  reports.OverdueCount(txs),
	}
}

// Empty reports whether there is nothing to remind about.
func (d Digest) Empty() bool {
	return len(d.Upcoming) == 0 && d.Overdue == 0
}

// Send renders d and delivers it to sink. An empty digest is only sent when
// force is set. It reports whether a message went out.
func Send(ctx context.Context, sink Sink, r *render.Renderer, d Digest, force bool) (bool, error) {
	logger := logctx.FromContext(ctx)
	if d.Empty() && !force {
		logger.DebugContext(ctx, "nothing to remind")
		return false, nil
	}
	msg, err := r.Digest(d.Upcoming, d.Overdue)
	if err != nil {
		return false, err
	}
	if err := sink.Send(ctx, msg); err != nil {
		return false, fmt.Errorf("sending reminder: %w", err)
	}
	logger.DebugContext(ctx, "reminder sent", "upcoming", len(d.Upcoming), "overdue", d.Overdue)
	return true, nil
}
