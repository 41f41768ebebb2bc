package postgres

import (
	"strconv"
	"strings"

	"github.com/poiesic/librosearch/core"
)

// whereBuilder composes a WHERE clause from a fixed predicate list with
// positional parameters. Filter values travel as bound arguments, never
// interpolated into the SQL text.
type whereBuilder struct {
	conds []string
	args  []any
}

// bind appends a value to the argument list and returns its placeholder.
func (w *whereBuilder) bind(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

// add appends a finished condition.
func (w *whereBuilder) add(cond string) {
	w.conds = append(w.conds, cond)
}

// clause renders the conjoined WHERE clause, empty when no conditions.
func (w *whereBuilder) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, "\n  AND ")
}

// addPatternMatch appends an OR of forward/reversed LIKE matches on expr.
// expr must be a column expression, e.g. "LOWER(b.titolo)".
func (w *whereBuilder) addPatternMatch(expr string, p core.Patterns) {
	w.add("(" + expr + " LIKE " + w.bind(p.Forward) + " OR " + expr + " LIKE " + w.bind(p.Reversed) + ")")
}

// addPatternExclude appends the negated form: expr matches neither pattern.
func (w *whereBuilder) addPatternExclude(expr string, p core.Patterns) {
	w.add(expr + " NOT LIKE " + w.bind(p.Forward) + " AND " + expr + " NOT LIKE " + w.bind(p.Reversed))
}

// addFilters conjoins the language and year predicates of a FilterSet.
// These are applied identically to every tier; the publication-type
// filter never reaches SQL (it zeroes whole tiers after retrieval).
func (w *whereBuilder) addFilters(f core.FilterSet) {
	if f.Language != "" {
		w.add("LOWER(b.lingua) LIKE " + w.bind("%"+strings.ToLower(f.Language)+"%"))
	}
	if f.YearMin != 0 {
		w.add("b.anno >= " + w.bind(f.YearMin))
	}
	if f.YearMax != 0 {
		w.add("b.anno <= " + w.bind(f.YearMax))
	}
}
