package query

import (
	"fmt"
	"strings"
)

// Convenience predicates. Each one is defined purely in terms of Where,
// so none of them can drift from the placeholder and parameter-order
// contract of the core builder.

// WhereIn with no values matches no rows: "IN ()" is not valid SQL, so
// the empty set renders as a constant-false condition instead.
func (b *Builder) WhereIn(field string, values ...interface{}) *Builder {
	if len(values) == 0 {
		return b.Where("1 = 0")
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	return b.Where(fmt.Sprintf("%s IN (%s)", field, placeholders), values...)
}

func (b *Builder) WhereLike(field, pattern string) *Builder {
	return b.Where(field+" LIKE ?", pattern)
}

func (b *Builder) WhereILike(field, pattern string) *Builder {
	return b.Where(field+" ILIKE ?", pattern)
}

func (b *Builder) WhereBetween(field string, low, high interface{}) *Builder {
	return b.Where(field+" BETWEEN ? AND ?", low, high)
}

func (b *Builder) WhereNull(field string) *Builder {
	return b.Where(field + " IS NULL")
}

func (b *Builder) WhereNotNull(field string) *Builder {
	return b.Where(field + " IS NOT NULL")
}

// WhereRecentDays keeps rows whose timestamp field falls within the last
// days days.
func (b *Builder) WhereRecentDays(field string, days int) *Builder {
	return b.Where(field+" >= NOW() - ?::interval", fmt.Sprintf("%d days", days))
}
