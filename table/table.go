/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package table renders rows as a bordered monospace text table:
//
//	+----------+---+
//	| Column A | b |
//	+----------+---+
//	| 1        |   |
//	|          | 2 |
//	+----------+---+
//
// Columns are the header fields (in header order) followed by any row field
// not named by a header, in first-seen order. Headers are centered, cells are
// left-justified, and a column is as wide as its longest label or cell.
package table

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/entitydb/record"
)

// Format renders rows with the given field -> label headers. When headers
// is empty every column is labeled with its field name; when headers is set
// columns it does not name get a blank label. A table without columns is
// just its top and bottom border.
func Format(rows []*record.Record, headers *record.Record) string {
	columns := columnsOf(rows, headers)

	labels := make([]string, len(columns))
	widths := make([]int, len(columns))
	for i, field := range columns {
		if headers.Len() == 0 {
			labels[i] = field
		} else if label, ok := headers.Lookup(field); ok {
			labels[i] = Cell(label)
		}
		widths[i] = width(labels[i])
	}

	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(columns))
		for i, field := range columns {
			if v, ok := row.Lookup(field); ok {
				cells[r][i] = Cell(v)
			}
			if w := width(cells[r][i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	separator := separatorRow(widths)
	if len(columns) > 0 {
		b.WriteString(separator)
		b.WriteString(line(labels, widths, padBoth))
	}
	b.WriteString(separator)
	for _, row := range cells {
		b.WriteString(line(row, widths, padRight))
	}
	b.WriteString(separator)
	return b.String()
}

// Labels builds a headers record that labels each field with its own name.
func Labels(fields ...string) *record.Record {
	h := record.New()
	for _, f := range fields {
		h.Set(f, f)
	}
	return h
}

// Cell renders a single value as table text. Times are printed in the
// strfmt date-time format; nil is blank.
func Cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case strfmt.DateTime:
		return val.String()
	case *strfmt.DateTime:
		if val == nil {
			return ""
		}
		return val.String()
	case time.Time:
		return strfmt.DateTime(val).String()
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprint(v)
}

func columnsOf(rows []*record.Record, headers *record.Record) []string {
	seen := make(map[string]bool)
	var columns []string
	add := func(field string, _ any) bool {
		if !seen[field] {
			seen[field] = true
			columns = append(columns, field)
		}
		return true
	}
	headers.Range(add)
	for _, row := range rows {
		row.Range(add)
	}
	return columns
}

func separatorRow(widths []int) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteByte('+')
	}
	b.WriteByte('\n')
	return b.String()
}

func line(values []string, widths []int, pad func(string, int) string) string {
	var b strings.Builder
	b.WriteByte('|')
	for i, v := range values {
		b.WriteByte(' ')
		b.WriteString(pad(v, widths[i]))
		b.WriteString(" |")
	}
	b.WriteByte('\n')
	return b.String()
}

func padRight(s string, w int) string {
	return s + strings.Repeat(" ", w-width(s))
}

// padBoth centers s, putting the odd space on the right.
func padBoth(s string, w int) string {
	total := w - width(s)
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}
