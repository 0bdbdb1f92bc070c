package repository

import (
	"strconv"
	"strings"
)

type predicate struct {
	column string
	value  any
}

// Conjunction folds (column, value) equality pairs into a parameterized
// WHERE clause joined with AND. Values are always bound, never inlined.
type Conjunction struct {
	preds []predicate
}

// Eq adds "column = value". Column names come from code, never from input.
func (c *Conjunction) Eq(column string, value any) *Conjunction {
	c.preds = append(c.preds, predicate{column: column, value: value})
	return c
}

func (c *Conjunction) Len() int {
	return len(c.preds)
}

// Build renders the clause with placeholders numbered from start.
// An empty conjunction renders to "" and no args.
func (c *Conjunction) Build(start int) (string, []any) {
	if len(c.preds) == 0 {
		return "", nil
	}

	var sb strings.Builder
	args := make([]any, 0, len(c.preds))
	sb.WriteString("WHERE ")
	for i, p := range c.preds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(p.column)
		sb.WriteString(" = $")
		sb.WriteString(strconv.Itoa(start + i))
		args = append(args, p.value)
	}
	return sb.String(), args
}
