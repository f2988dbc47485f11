package digest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/portworks/craneview/internal/notify"
	"github.com/portworks/craneview/internal/store"
	"github.com/robfig/cron/v3"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// nextCronDuration parses a 5-field cron expression and returns the duration
// until the next fire time. Returns 0 on parse error.
func nextCronDuration(expr string) time.Duration {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0
	}
	next := sched.Next(time.Now())
	d := time.Until(next)
	if d < 0 {
		return 0
	}
	return d
}

// Runner posts the previous day's digest on a cron schedule.
type Runner struct {
	st       *store.Store
	adapters []notify.Adapter
	schedule string
	out      io.Writer
	today    func() string
}

// RunnerOpts holds parameters for creating a Runner.
type RunnerOpts struct {
	Store    *store.Store
	Adapters []notify.Adapter
	Schedule string
	Out      io.Writer

	// Today returns the current date as YYYY-MM-DD. Defaults to the local
	// clock; tests pin it.
	Today func() string
}

// NewRunner creates a Runner. The schedule must be a valid 5-field cron
// expression.
func NewRunner(opts RunnerOpts) (*Runner, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("digest: store is required")
	}
	if _, err := cronParser.Parse(opts.Schedule); err != nil {
		return nil, fmt.Errorf("digest: parse schedule %q: %w", opts.Schedule, err)
	}
	today := opts.Today
	if today == nil {
		today = func() string { return time.Now().Format("2006-01-02") }
	}
	return &Runner{
		st:       opts.Store,
		adapters: opts.Adapters,
		schedule: opts.Schedule,
		out:      opts.Out,
		today:    today,
	}, nil
}

// Run fires the digest on schedule until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	for {
		d := nextCronDuration(r.schedule)
		if d <= 0 {
			d = time.Minute
		}
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := r.Fire(ctx); err != nil && r.out != nil {
				fmt.Fprintf(r.out, "digest: %v\n", err)
			}
		}
	}
}

// Fire builds and delivers the digest for the previous day. Quiet days and
// empty adapter lists deliver nothing.
func (r *Runner) Fire(ctx context.Context) error {
	date := previousDay(r.today())
	report, err := Build(ctx, r.st, date)
	if err != nil {
		return err
	}
	if report == nil {
		return nil
	}

	msg := Format(report)
	var firstErr error
	for _, a := range r.adapters {
		if err := a.Send(ctx, msg); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("digest: %s: %w", a.Name(), err)
			}
			continue
		}
		if r.out != nil {
			fmt.Fprintf(r.out, "digest: delivered %s to %s\n", date, a.Name())
		}
	}
	return firstErr
}

// previousDay returns the date one day before d, or d itself if unparseable.
func previousDay(d string) string {
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		return d
	}
	return t.AddDate(0, 0, -1).Format("2006-01-02")
}
