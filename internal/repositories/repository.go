package repositories

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// psql is the shared statement builder; all queries use $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// filterValues splits a filter map entry ("a,b,c" or a plain value) into the
// value list an IN predicate expects.
func filterValues(raw interface{}) []string {
	s := strings.TrimSpace(fmt.Sprintf("%v", raw))
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// inFilter appends an IN predicate for the named filter key when present.
func inFilter(b sq.SelectBuilder, filter map[string]interface{}, key, column string) sq.SelectBuilder {
	raw, ok := filter[key]
	if !ok {
		return b
	}
	if vals := filterValues(raw); len(vals) > 0 {
		return b.Where(sq.Eq{column: vals})
	}
	return b
}

// monthOfAny appends a predicate matching records whose listed date columns
// fall into the given "YYYY-MM" month; a record matches when any column does.
func monthOfAny(b sq.SelectBuilder, selectedMonth string, columns ...string) sq.SelectBuilder {
	var year, month int
	if _, err := fmt.Sscanf(selectedMonth, "%d-%d", &year, &month); err != nil {
		return b
	}
	or := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, sq.Expr(
			fmt.Sprintf("(EXTRACT(YEAR FROM %s) = ? AND EXTRACT(MONTH FROM %s) = ?)", col, col),
			year, month,
		))
	}
	return b.Where(or)
}
