// Package report renders checkpoint listings for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/viklund/stund/internal/models"
	"github.com/viklund/stund/internal/tracker"
)

// OpenDuration is shown where a duration is still undefined: the newest
// checkpoint has no successor to measure against yet.
const OpenDuration = "—"

// TagResolver resolves a checkpoint's tag reference. *tracker.DB satisfies
// it; untagged checkpoints and dangling references both report false.
type TagResolver interface {
	TagOf(models.Checkpoint) (models.Tag, bool)
}

// Hours renders a second count as decimal hours with one digit after the
// point. All durations in stund are shown this way.
func Hours(seconds int64) string {
	return fmt.Sprintf("%.1f", float32(seconds)/60/60)
}

// Options controls what Render includes and how times are localized.
type Options struct {
	Verbosity int       // 1 totals only, 2 adds day sections, 3 adds the checkpoint table
	Start     time.Time // window bounds, echoed in the heading
	End       time.Time
	Filter    string         // tag short name the listing was filtered by, when set
	Location  *time.Location // day grouping and clock rendering; time.Local when nil
}

const boundsLayout = "2006-01-02 15:04"

// Render writes the checkpoint listing to w.
//
// Verbosity 1 prints the heading and the grand total. Verbosity 2 adds a
// section per day with a running day total. Verbosity 3 (the default) also
// prints one table row per checkpoint. Untagged checkpoints show a blank
// duration and stay out of every total; the open checkpoint shows the
// OpenDuration placeholder and is likewise excluded.
func Render(w io.Writer, tags TagResolver, entries []tracker.Entry, opts Options) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	v := opts.Verbosity
	if v < 1 {
		v = 3
	}

	bounds := fmt.Sprintf("between %s and %s",
		opts.Start.In(loc).Format(boundsLayout), opts.End.In(loc).Format(boundsLayout))
	switch v {
	case 1:
		fmt.Fprintf(w, "Printing total stats for checkpoints %s\n", bounds)
	case 2:
		fmt.Fprintf(w, "Printing daily stats for checkpoints %s\n", bounds)
	default:
		fmt.Fprintf(w, "Printing checkpoints %s\n", bounds)
	}
	if opts.Filter != "" {
		fmt.Fprintf(w, "Only including checkpoints tagged: %s\n", opts.Filter)
	}
	if v >= 3 {
		row(w, "Pos", "Dur", "Time", "Tag", "Message")
	}

	var total, daily int64
	currentDay := ""
	for _, e := range entries {
		at := time.Unix(e.Timestamp, 0).In(loc)
		day := at.Format("2006-01-02")
		if day != currentDay {
			if currentDay != "" && v >= 2 {
				fmt.Fprintf(w, "Duration: %s\n", Hours(daily))
			}
			daily = 0
			if v >= 2 {
				fmt.Fprintf(w, "\n%s\n", at.Format("2006-01-02 Mon"))
			}
			currentDay = day
		}

		tag, tagged := tags.TagOf(e.Checkpoint)
		dur := ""
		switch {
		case e.Open:
			dur = OpenDuration
		case tagged:
			dur = Hours(e.Duration)
			daily += e.Duration
			total += e.Duration
		}
		if v >= 3 {
			row(w, strconv.Itoa(e.Position), dur, at.Format("15:04"), tag.ShortName, e.Checkpoint.Message)
		}
	}
	if v >= 2 && currentDay != "" {
		fmt.Fprintf(w, "Duration: %s\n", Hours(daily))
	}
	fmt.Fprintf(w, "\nTotal duration: %s\n", Hours(total))
}

func row(w io.Writer, pos, dur, clock, tag, message string) {
	fmt.Fprintf(w, "%-6.6s|%-5.5s|%-6.6s|%-16.16s|%-76.76s\n", pos, dur, clock, tag, message)
}

// Detail writes the full view of a single checkpoint as key-value lines.
func Detail(w io.Writer, tags TagResolver, e tracker.Entry, loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	at := time.Unix(e.Timestamp, 0).In(loc)

	dur := OpenDuration
	if !e.Open {
		dur = Hours(e.Duration)
	}
	tag, _ := tags.TagOf(e.Checkpoint)

	kv := func(key, value string) {
		fmt.Fprintf(w, "%15.15s: %s\n", key, value)
	}
	kv("Time", at.Format(time.RFC1123Z))
	kv("Duration", dur)
	kv("Message", e.Checkpoint.Message)
	kv("Tag", tag.ShortName)
	kv("Position", strconv.Itoa(e.Position))
}
