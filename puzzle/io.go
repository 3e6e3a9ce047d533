// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

package puzzle

import (
	"fmt"
	"strings"
)

/*

textual forms

*/

// GridString renders a 0/1 grid one character per cell, '#' for
// filled and '.' for empty, one line per row.
func GridString(values [][]int) string {
	var b strings.Builder
	for _, row := range values {
		for _, v := range row {
			if v == 0 {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *Solution) String() string {
	return GridString(s.Values)
}

// clueString writes a clue the way puzzle books print them:
// block lengths separated by spaces, a lone 0 for an empty line.
func clueString(c Clue) string {
	if len(c) == 0 {
		return "0"
	}
	parts := make([]string, len(c))
	for i, b := range c {
		parts[i] = fmt.Sprintf("%d", b)
	}
	return strings.Join(parts, " ")
}

// String renders the rule set's dimensions and clues, one line
// per row and column.
func (rs *RuleSet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d x %d nonogram\n", rs.width, rs.height)
	for i, clue := range rs.rows {
		fmt.Fprintf(&b, "row %d: %s\n", i, clueString(clue))
	}
	for i, clue := range rs.columns {
		fmt.Fprintf(&b, "column %d: %s\n", i, clueString(clue))
	}
	return b.String()
}
