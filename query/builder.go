// Package query assembles parameterized SELECT statements. A Builder is a
// plain mutable value: mutators return the receiver for chaining, Build
// renders the statement and the ordered parameter list. Placeholders are
// driver-neutral question marks; quoting and escaping belong to the
// database driver.
//
// A Builder is not safe for concurrent mutation. Repeated Build calls on
// an unchanging builder are safe and yield identical output.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

type JoinType string

const (
	InnerJoin JoinType = "INNER"
	LeftJoin  JoinType = "LEFT"
	RightJoin JoinType = "RIGHT"
	FullJoin  JoinType = "FULL"
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type join struct {
	Type      JoinType
	Table     string
	Condition string
}

type orderBy struct {
	Field     string
	Direction Direction
}

type Builder struct {
	table    string
	fields   []string
	distinct bool

	joins []join

	conditions []string
	params     []interface{}

	groupBy []string

	havings      []string
	havingParams []interface{}

	orders []orderBy

	limit  *int
	offset *int

	// first rejected input; surfaced by Build
	err error
}

// New starts a builder for the given table. An empty table name yields a
// statement without a FROM clause.
func New(table string) *Builder {
	return &Builder{
		table:  table,
		fields: []string{"*"},
	}
}

// Select replaces the field list. Called with no arguments it restores
// the default of selecting everything.
func (b *Builder) Select(fields ...string) *Builder {
	if len(fields) == 0 {
		fields = []string{"*"}
	}
	b.fields = append([]string(nil), fields...)
	return b
}

func (b *Builder) Distinct() *Builder {
	b.distinct = true
	return b
}

// Join appends one join. An unrecognized join type is rejected before
// being stored and reported by Build.
func (b *Builder) Join(table, condition string, joinType JoinType) *Builder {
	switch joinType {
	case InnerJoin, LeftJoin, RightJoin, FullJoin:
	default:
		b.setErr(fmt.Errorf("invalid join type %q", joinType))
		return b
	}

	b.joins = append(b.joins, join{Type: joinType, Table: table, Condition: condition})
	return b
}

// Where appends one condition, AND-joined with any previous ones.
// Parameters are collected in call order.
func (b *Builder) Where(condition string, params ...interface{}) *Builder {
	b.conditions = append(b.conditions, condition)
	b.params = append(b.params, params...)
	return b
}

func (b *Builder) GroupBy(fields ...string) *Builder {
	b.groupBy = append(b.groupBy, fields...)
	return b
}

func (b *Builder) Having(condition string, params ...interface{}) *Builder {
	b.havings = append(b.havings, condition)
	b.havingParams = append(b.havingParams, params...)
	return b
}

// OrderBy appends one ordering term. An unrecognized direction is
// rejected before being stored and reported by Build.
func (b *Builder) OrderBy(field string, direction Direction) *Builder {
	switch direction {
	case Asc, Desc:
	default:
		b.setErr(fmt.Errorf("invalid order direction %q", direction))
		return b
	}

	b.orders = append(b.orders, orderBy{Field: field, Direction: direction})
	return b
}

// Limit sets the LIMIT value. Negative values pass through verbatim;
// validating them is the caller's concern.
func (b *Builder) Limit(limit int) *Builder {
	b.limit = &limit
	return b
}

// Offset sets the OFFSET value. Negative values pass through verbatim.
func (b *Builder) Offset(offset int) *Builder {
	b.offset = &offset
	return b
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build renders the statement with clauses in the fixed order
// SELECT, FROM, JOIN, WHERE, GROUP BY, HAVING, ORDER BY, LIMIT, OFFSET,
// omitting every clause whose backing state is empty. The parameter list
// is the WHERE parameters followed by the HAVING parameters, each in
// call order, matching the placeholder order in the statement.
func (b *Builder) Build() (string, []interface{}, error) {
	if b.err != nil {
		return "", nil, b.err
	}

	var sb strings.Builder

	sb.WriteString("SELECT ")
	if b.distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(strings.Join(b.fields, ", "))

	if b.table != "" {
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
	}

	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(string(j.Type))
		sb.WriteString(" JOIN ")
		sb.WriteString(j.Table)
		sb.WriteString(" ON ")
		sb.WriteString(j.Condition)
	}

	if len(b.conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conditions, " AND "))
	}

	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}

	if len(b.havings) > 0 {
		sb.WriteString(" HAVING ")
		sb.WriteString(strings.Join(b.havings, " AND "))
	}

	if len(b.orders) > 0 {
		terms := make([]string, 0, len(b.orders))
		for _, o := range b.orders {
			terms = append(terms, o.Field+" "+string(o.Direction))
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(terms, ", "))
	}

	if b.limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(*b.limit))
	}

	if b.offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(*b.offset))
	}

	params := make([]interface{}, 0, len(b.params)+len(b.havingParams))
	params = append(params, b.params...)
	params = append(params, b.havingParams...)

	return sb.String(), params, nil
}

// BuildCount builds the same query selecting a single COUNT(*) instead of
// the field list. The receiver is not observably modified.
func (b *Builder) BuildCount() (string, []interface{}, error) {
	counted := b.Clone()
	counted.fields = []string{"COUNT(*)"}
	counted.distinct = false
	return counted.Build()
}

// BuildPaginated sets LIMIT to pageSize and OFFSET to (page-1)*pageSize
// (pages are 1-indexed), then builds.
func (b *Builder) BuildPaginated(page, pageSize int) (string, []interface{}, error) {
	b.Limit(pageSize)
	b.Offset((page - 1) * pageSize)
	return b.Build()
}

// Clone deep-copies every ordered list and setting; mutations on the
// clone never show through to the original, and vice versa.
func (b *Builder) Clone() *Builder {
	clone := &Builder{
		table:    b.table,
		distinct: b.distinct,
		err:      b.err,
	}

	clone.fields = append([]string(nil), b.fields...)
	clone.joins = append([]join(nil), b.joins...)
	clone.conditions = append([]string(nil), b.conditions...)
	clone.params = append([]interface{}(nil), b.params...)
	clone.groupBy = append([]string(nil), b.groupBy...)
	clone.havings = append([]string(nil), b.havings...)
	clone.havingParams = append([]interface{}(nil), b.havingParams...)
	clone.orders = append([]orderBy(nil), b.orders...)

	if b.limit != nil {
		limit := *b.limit
		clone.limit = &limit
	}
	if b.offset != nil {
		offset := *b.offset
		clone.offset = &offset
	}

	return clone
}
