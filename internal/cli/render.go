package cli

import (
	"fmt"

	"github.com/idilsaglam/sheettracker/internal/ui"
	"github.com/idilsaglam/sheettracker/internal/view"
)

const titleWidth = 72

// headerLines is the counts line, the progress bar and a blank spacer.
func headerLines(p view.Summary) []string {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Your Sheet"),
		ui.C(t.Success, t.SymDone), p.Completed,
		ui.C(t.Pending, t.SymPending), p.Pending(),
		ui.C(t.Accent, "Total"), p.Total,
	)
	return []string{
		header,
		ui.C(t.Muted, ui.ProgressBar(p.Completed, p.Total, p.Percent, 28)),
		"",
	}
}

func flatLines(entries []view.Entry, links bool) []string {
	t := ui.Current()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		idx := fmt.Sprintf("%2d.", e.Index+1)
		box, color := t.BoxUnchecked, t.Muted
		if e.Completed {
			box, color = t.BoxChecked, t.Success
		}
		line := fmt.Sprintf("%s %s %s", ui.Dim(idx), ui.C(color, box), ui.Truncate(e.Title, titleWidth))
		if e.Category != "" {
			line += "  " + ui.C(t.Muted, e.Category)
		}
		out = append(out, line)
		if links && e.Link != "" {
			out = append(out, "       "+ui.C(t.Accent, e.Link))
		}
	}
	return out
}

func groupLines(entries []view.Entry, links bool) []string {
	var pend, done []view.Entry
	for _, e := range entries {
		if e.Completed {
			done = append(done, e)
		} else {
			pend = append(pend, e)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend, links)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done, links)...)
	}
	return lines
}
