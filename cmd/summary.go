package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/omniverse/offline-scrobbler/internal/scrobbler"
)

// timestampFormat is how planned and submitted play times are shown.
const timestampFormat = "15:04:05"

// printPlan shows the planned timeline without submitting anything.
func printPlan(plan []scrobbler.Scrobble) {
	width := trackColumnWidth(plan, nil)

	fmt.Printf("Would scrobble %d track(s):\n\n", len(plan))
	for _, s := range plan {
		fmt.Printf("  %s  %s  (%s)\n",
			s.Timestamp.Format(timestampFormat),
			padToWidth(trackLabel(s.Artist, s.Track), width),
			formatDuration(s.Duration))
	}
}

// printReport shows the per-track verdicts of a submitted batch.
func printReport(report *scrobbler.Report) {
	width := trackColumnWidth(nil, report.Outcomes)

	fmt.Printf("\nScrobbled %d track(s), %d ignored:\n\n", report.Accepted, report.Ignored)
	for _, o := range report.Outcomes {
		mark := "✓"
		suffix := ""
		if !o.Accepted {
			mark = "✗"
			suffix = "  " + o.Reason
		}
		fmt.Printf("  %s %s  %s%s\n",
			mark,
			o.Timestamp.Format(timestampFormat),
			padToWidth(trackLabel(o.Artist, o.Track), width),
			suffix)
	}
}

func trackLabel(artist, track string) string {
	return artist + " - " + track
}

// trackColumnWidth sizes the track column to the widest label so the
// verdict and reason columns line up.
func trackColumnWidth(plan []scrobbler.Scrobble, outcomes []scrobbler.Outcome) int {
	width := 0
	for _, s := range plan {
		if w := runewidth.StringWidth(trackLabel(s.Artist, s.Track)); w > width {
			width = w
		}
	}
	for _, o := range outcomes {
		if w := runewidth.StringWidth(trackLabel(o.Artist, o.Track)); w > width {
			width = w
		}
	}
	return width
}

// padToWidth pads text with spaces to a fixed display width, measured
// in display columns so wide Unicode characters line up.
func padToWidth(text string, width int) string {
	current := runewidth.StringWidth(text)
	if current >= width {
		return text
	}
	return text + strings.Repeat(" ", width-current)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
