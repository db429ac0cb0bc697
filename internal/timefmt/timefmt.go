// Package timefmt renders event timestamps. The relative formatter is an
// optional capability: when it cannot be loaded the basic formatter is used
// without complaint.
package timefmt

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

// relativeWindow is how far back a timestamp still reads as "N days ago".
const relativeWindow = 25 * 24 * time.Hour

// Stamp is a timestamp rendered two ways: Full for tooltips, Pretty for
// display.
type Stamp struct {
	Full   string
	Pretty string
}

// Formatter renders timestamps.
type Formatter interface {
	Format(t time.Time) Stamp
}

// Basic is the fallback formatter: ISO-8601 and a plain UTC date.
type Basic struct{}

func (Basic) Format(t time.Time) Stamp {
	u := t.UTC()
	return Stamp{
		Full:   u.Format("2006-01-02T15:04:05.000Z07:00"),
		Pretty: u.Format("Jan 2, 2006, 3:04:05 PM"),
	}
}

// Relative shows recent timestamps as "3 days ago" and older ones as a date.
type Relative struct {
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

func (r Relative) Format(t time.Time) Stamp {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}

	local := t.In(loc)
	ref := now()

	diff := ref.Sub(t)
	if diff < 0 {
		diff = -diff
	}

	pretty := local.Format("Jan 02, 2006")
	if diff < relativeWindow {
		pretty = humanize.RelTime(t, ref, "ago", "from now")
	}

	return Stamp{
		Full:   local.Format("2006-01-02 at 03:04:05 (-07:00)"),
		Pretty: pretty,
	}
}

// Load probes the relative formatter for the named zone ("" or "Local" uses
// the process zone). Any failure, including ctx ending first, yields Basic.
func Load(ctx context.Context, zone string) Formatter {
	type result struct {
		loc *time.Location
		err error
	}
	ch := make(chan result, 1)
	go func() {
		if zone == "" || zone == "Local" {
			ch <- result{loc: time.Local}
			return
		}
		loc, err := time.LoadLocation(zone)
		ch <- result{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		slog.Debug("relative time formatting unavailable", "zone", zone, "error", ctx.Err())
		return Basic{}
	case res := <-ch:
		if res.err != nil {
			slog.Debug("relative time formatting unavailable", "zone", zone, "error", res.err)
			return Basic{}
		}
		return Relative{Location: res.loc}
	}
}
