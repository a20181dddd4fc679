// Package normalize turns imported spreadsheets and markdown documents into
// question records. Everything here is pure except ReadWorkbook, which only
// decodes the bytes it is handed.
package normalize

import (
	"regexp"

	"github.com/idilsaglam/sheettracker/internal/model"
)

// UntitledQuestion replaces a missing title cell.
const UntitledQuestion = "Untitled Question"

var (
	titleHeader = regexp.MustCompile(`(?i)question|name|title|problem`)
	linkHeader  = regexp.MustCompile(`(?i)link|url|href`)
)

// Cell is one header/value pair of a sheet row.
type Cell struct {
	Header string
	Value  string
}

// Row keeps the cells of a sheet row in column order.
type Row []Cell

// Headers returns the row's column headers in their original order.
func (r Row) Headers() []string {
	out := make([]string, 0, len(r))
	for _, c := range r {
		out = append(out, c.Header)
	}
	return out
}

// Get returns the value under header.
func (r Row) Get(header string) (string, bool) {
	for _, c := range r {
		if c.Header == header {
			return c.Value, true
		}
	}
	return "", false
}

// PickColumns chooses the title and link columns among headers.
// The title is the first title-like header, else the first header.
// The link is the first link-like header, else the first header that is not
// the title. hasLink is false when no candidate is left.
func PickColumns(headers []string) (title, link string, hasLink bool) {
	if len(headers) == 0 {
		return "", "", false
	}
	title = headers[0]
	for _, h := range headers {
		if titleHeader.MatchString(h) {
			title = h
			break
		}
	}
	for _, h := range headers {
		if linkHeader.MatchString(h) {
			return title, h, true
		}
	}
	for _, h := range headers {
		if h != title {
			return title, h, true
		}
	}
	return title, "", false
}

// FromRows maps every row to a question. Rows are never dropped; a row
// without a usable title cell becomes UntitledQuestion.
func FromRows(rows []Row) []model.Question {
	out := make([]model.Question, 0, len(rows))
	for _, row := range rows {
		titleCol, linkCol, hasLink := PickColumns(row.Headers())

		q := model.Question{Title: UntitledQuestion, Category: model.CategoryExcel}
		if v, ok := row.Get(titleCol); ok && v != "" {
			q.Title = v
		}
		if hasLink {
			q.Link, _ = row.Get(linkCol)
		}
		out = append(out, q)
	}
	return out
}
