package timefmt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasic(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 6, 0, time.FixedZone("X", 2*3600))
	got := Basic{}.Format(ts)
	assert.Equal(t, "2024-03-09T12:05:06.000Z", got.Full)
	assert.Equal(t, "Mar 9, 2024, 12:05:06 PM", got.Pretty)
}

func TestRelative(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	f := Relative{Location: time.UTC, Now: func() time.Time { return now }}

	t.Run("recent reads as relative", func(t *testing.T) {
		got := f.Format(now.Add(-3 * 24 * time.Hour))
		assert.Equal(t, "3 days ago", got.Pretty)
		assert.Equal(t, "2024-06-27 at 12:00:00 (+00:00)", got.Full)
	})

	t.Run("old reads as a date", func(t *testing.T) {
		got := f.Format(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC))
		assert.Equal(t, "May 01, 2024", got.Pretty)
		assert.Equal(t, "2024-05-01 at 09:30:00 (+00:00)", got.Full)
	})

	t.Run("location applies to full stamp", func(t *testing.T) {
		tz := time.FixedZone("EST", -5*3600)
		got := Relative{Location: tz, Now: func() time.Time { return now }}.Format(now)
		assert.Equal(t, "2024-06-30 at 07:00:00 (-05:00)", got.Full)
	})
}

func TestLoadFallsBackSilently(t *testing.T) {
	assert.IsType(t, Basic{}, Load(context.Background(), "Not/AZone"))
	assert.IsType(t, Relative{}, Load(context.Background(), "UTC"))
	assert.IsType(t, Relative{}, Load(context.Background(), ""))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := Load(ctx, "Not/AZone")
	assert.IsType(t, Basic{}, f)
}
