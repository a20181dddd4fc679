package normalize

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/idilsaglam/sheettracker/internal/model"
	"github.com/xuri/excelize/v2"
)

// ErrUnreadableWorkbook is returned when the upload is not a spreadsheet.
var ErrUnreadableWorkbook = errors.New("unreadable workbook")

const emptyHeader = "__EMPTY"

var zipMagic = []byte("PK\x03\x04")

// FromWorkbook decodes the first sheet of r and maps its rows to questions.
func FromWorkbook(r io.Reader, filename string) ([]model.Question, error) {
	rows, err := ReadWorkbook(r, filename)
	if err != nil {
		return nil, err
	}
	return FromRows(rows), nil
}

// ReadWorkbook decodes the first sheet into rows keyed by the header row.
// CSV is picked by extension, or for plain text that is not a zip archive.
// Blank rows are skipped; empty cells are kept so every row carries the
// full header list. Cell values are kept as written.
func ReadWorkbook(r io.Reader, filename string) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrUnreadableWorkbook, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrUnreadableWorkbook)
	}

	var grid [][]string
	if isCSV(data, filename) {
		grid, err = readCSV(data)
	} else {
		grid, err = readXLSX(data)
	}
	if err != nil {
		return nil, err
	}
	return toRows(grid), nil
}

func isCSV(data []byte, filename string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return true
	}
	return !bytes.HasPrefix(data, zipMagic) && utf8.Valid(data)
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	grid, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv: %v", ErrUnreadableWorkbook, err)
	}
	return grid, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets", ErrUnreadableWorkbook)
	}
	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrUnreadableWorkbook, sheets[0], err)
	}
	return grid, nil
}

func toRows(grid [][]string) []Row {
	start := 0
	for start < len(grid) && blank(grid[start]) {
		start++
	}
	if start == len(grid) {
		return []Row{}
	}
	headers := headerNames(grid[start])

	rows := make([]Row, 0, len(grid)-start-1)
	for _, rec := range grid[start+1:] {
		if blank(rec) {
			continue
		}
		row := make(Row, 0, len(headers))
		for i, h := range headers {
			v := ""
			if i < len(rec) {
				v = rec[i]
			}
			row = append(row, Cell{Header: h, Value: v})
		}
		rows = append(rows, row)
	}
	return rows
}

// headerNames names empty header cells __EMPTY, __EMPTY_1, ... and suffixes
// repeated names with _1, _2, ... so every column keeps its own key.
func headerNames(raw []string) []string {
	used := make(map[string]bool, len(raw))
	count := make(map[string]int)
	out := make([]string, 0, len(raw))
	for _, h := range raw {
		base := strings.TrimSpace(h)
		if base == "" {
			base = emptyHeader
		}
		name := base
		for used[name] {
			count[base]++
			name = base + "_" + strconv.Itoa(count[base])
		}
		used[name] = true
		out = append(out, name)
	}
	return out
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
