// Package view derives what the CLI and TUI display from the stored list.
package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/idilsaglam/sheettracker/internal/model"
)

// Mode narrows the list by completion state.
type Mode string

const (
	ModeAll       Mode = "all"
	ModeCompleted Mode = "completed"
	ModePending   Mode = "pending"
)

var modes = []Mode{ModeAll, ModeCompleted, ModePending}

// ParseMode accepts all, completed (done) or pending (todo).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ModeAll, nil
	case "completed", "done":
		return ModeCompleted, nil
	case "pending", "todo":
		return ModePending, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, completed or pending)", s)
}

// Next cycles all -> completed -> pending -> all.
func (m Mode) Next() Mode {
	for i, x := range modes {
		if x == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return ModeAll
}

func (m Mode) match(q model.Question) bool {
	switch m {
	case ModeCompleted:
		return q.Completed
	case ModePending:
		return !q.Completed
	}
	return true
}

// Entry is a filtered question plus its index in the stored list, which is
// what Toggle and Delete address.
type Entry struct {
	Index int
	model.Question
}

// Filter keeps questions matching mode whose title or category contains
// search, case-insensitively.
func Filter(qs []model.Question, mode Mode, search string) []Entry {
	needle := strings.ToLower(search)
	out := make([]Entry, 0, len(qs))
	for i, q := range qs {
		if !mode.match(q) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(q.Title), needle) &&
			!strings.Contains(strings.ToLower(q.Category), needle) {
			continue
		}
		out = append(out, Entry{Index: i, Question: q})
	}
	return out
}

// Summary is the aggregate progress of a list.
type Summary struct {
	Completed int
	Total     int
	Percent   int
}

func (s Summary) Pending() int { return s.Total - s.Completed }

// Progress counts completed questions; Percent rounds half away from zero
// and is 0 for an empty list.
func Progress(qs []model.Question) Summary {
	s := Summary{Total: len(qs)}
	for _, q := range qs {
		if q.Completed {
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.Percent = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
