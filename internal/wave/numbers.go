package wave

import (
	"context"
	"fmt"
	"time"
)

// errorPlaceholder replaces a single display field whose computation failed,
// so one bad metric does not blank the whole panel.
const errorPlaceholder = "error"

// Numbers holds the display strings for one wave event. Formatting only; no
// field carries machine-readable semantics.
type Numbers struct {
	Speed       string `json:"speed"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TotalTime   string `json:"total_time"`
	Progression string `json:"progression"`
	Timezone    string `json:"timezone"`
}

// AllNumbers formats the event's parameters for display. Each field is
// computed independently and degrades to "error" on failure.
func AllNumbers(ctx context.Context, w Wave) Numbers {
	event := w.Event()
	loc := eventLocation(event)

	return Numbers{
		Speed: safeField(func() string {
			return fmt.Sprintf("%.1f m/s", event.Speed)
		}),
		StartTime: safeField(func() string {
			return formatInstant(event.StartTime, loc)
		}),
		EndTime: safeField(func() string {
			return formatInstant(event.EndTime, loc)
		}),
		TotalTime: safeField(func() string {
			d, err := w.Duration(ctx)
			if err != nil {
				panic(err)
			}
			return formatDuration(d)
		}),
		Progression: safeField(func() string {
			return fmt.Sprintf("%.1f%%", w.Progression(ctx))
		}),
		Timezone: safeField(func() string {
			if event.Timezone == "" {
				panic("no timezone")
			}
			return event.Timezone
		}),
	}
}

// safeField runs one field's formatter and converts any panic into the
// "error" placeholder.
func safeField(format func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = errorPlaceholder
		}
	}()
	return format()
}

func eventLocation(event Event) *time.Location {
	loc, err := time.LoadLocation(event.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func formatInstant(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		panic("instant unset")
	}
	return t.In(loc).Format("2006-01-02 15:04:05")
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
