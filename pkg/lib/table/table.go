/*
Copyright 2022 Cortex Labs, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cortexlabs/qrun/pkg/lib/console"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	libmath "github.com/cortexlabs/qrun/pkg/lib/math"
	"github.com/cortexlabs/qrun/pkg/lib/pointer"
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
)

type Table struct {
	Headers []Header
	Rows    [][]interface{}
	Spacing int // defaults to 3
}

type Header struct {
	Title    string
	MaxWidth int // longer values are truncated with an ellipsis; 0 means no max
	MinWidth int
	Hidden   bool
	// Group blanks out a value when it repeats the one in the row above (after sorting)
	Group bool
}

type Opts struct {
	Sort       *bool // default true
	BoldHeader *bool // default true
}

func mergeTableOptions(options ...*Opts) (sortRows bool, boldHeader bool) {
	sortRows, boldHeader = true, true
	for _, opt := range options {
		if opt == nil {
			continue
		}
		sortRows = pointer.BoolOr(opt.Sort, sortRows)
		boldHeader = pointer.BoolOr(opt.BoldHeader, boldHeader)
	}
	return sortRows, boldHeader
}

func validate(t Table) error {
	numCols := len(t.Headers)
	if numCols < 1 {
		return ErrorAtLeastOneColumn()
	}

	for _, header := range t.Headers {
		if header.MaxWidth == 0 {
			continue
		}
		if len(header.Title) > header.MaxWidth {
			return ErrorHeaderWiderThanMaxWidth(header.Title, header.MaxWidth)
		}
		if header.MinWidth > header.MaxWidth {
			return ErrorHeaderMinWidthGreaterThanMaxWidth(header.Title, header.MinWidth, header.MaxWidth)
		}
	}

	for i, row := range t.Rows {
		if len(row) != numCols {
			return ErrorWrongNumberOfColumns(i, len(row), numCols)
		}
	}

	return nil
}

// MustPrint prints the error message in place of the table if formatting fails
func (t *Table) MustPrint(opts ...*Opts) {
	fmt.Print(t.MustFormat(opts...))
}

func (t *Table) MustFormat(opts ...*Opts) string {
	str, err := t.Format(opts...)
	if err != nil {
		return "error: " + errors.Message(err) + "\n"
	}
	return str
}

func (t *Table) Format(opts ...*Opts) (string, error) {
	sortRows, boldHeader := mergeTableOptions(opts...)
	if err := validate(*t); err != nil {
		return "", err
	}

	spacing := t.Spacing
	if spacing <= 0 {
		spacing = 3
	}

	rows := make([][]string, len(t.Rows))
	for rowNum, row := range t.Rows {
		rows[rowNum] = make([]string, len(row))
		for colNum, val := range row {
			rows[rowNum][colNum] = s.ObjFlatNoQuotes(val)
		}
	}

	if sortRows {
		sort.SliceStable(rows, func(i, j int) bool {
			return strings.Join(rows[i], "\x00") < strings.Join(rows[j], "\x00")
		})
	}
	blankRepeatedGroups(t.Headers, rows)

	colWidths := make([]int, len(t.Headers))
	for colNum, header := range t.Headers {
		colWidths[colNum] = len(header.Title)
		for _, row := range rows {
			colWidths[colNum] = libmath.MaxInt(colWidths[colNum], len(row[colNum]))
		}
		if header.MaxWidth > 0 {
			colWidths[colNum] = libmath.MinInt(colWidths[colNum], header.MaxWidth)
		}
		colWidths[colNum] = libmath.MaxInt(colWidths[colNum], header.MinWidth)
	}

	lastColIndex := len(t.Headers) - 1
	for lastColIndex > 0 && t.Headers[lastColIndex].Hidden {
		lastColIndex--
	}

	var b strings.Builder

	var headerStr string
	for colNum, header := range t.Headers {
		if header.Hidden {
			continue
		}
		title := header.Title
		if boldHeader {
			title = console.Bold(title)
		}
		headerStr += title
		if colNum != lastColIndex {
			headerStr += strings.Repeat(" ", colWidths[colNum]+spacing-len(header.Title))
		}
	}
	b.WriteString(s.TrimTrailingWhitespace(headerStr) + "\n")

	ellipses := "..."
	for _, row := range rows {
		var rowStr string
		for colNum, val := range row {
			if t.Headers[colNum].Hidden {
				continue
			}
			if len(val) > colWidths[colNum] {
				val = val[:colWidths[colNum]]
				// at least one space after the ellipses
				for len(val) > 0 && len(val)+len(ellipses) > colWidths[colNum]+spacing-1 {
					val = val[:len(val)-1]
				}
				val += ellipses
			}
			rowStr += val
			if colNum != lastColIndex {
				rowStr += strings.Repeat(" ", libmath.MaxInt(colWidths[colNum]+spacing-len(val), 1))
			}
		}
		b.WriteString(s.TrimTrailingWhitespace(rowStr) + "\n")
	}

	return b.String(), nil
}

func blankRepeatedGroups(headers []Header, rows [][]string) {
	for colNum, header := range headers {
		if !header.Group {
			continue
		}
		prev := ""
		for rowNum, row := range rows {
			current := row[colNum]
			if rowNum > 0 && current == prev {
				rows[rowNum][colNum] = ""
			}
			prev = current
		}
	}
}
