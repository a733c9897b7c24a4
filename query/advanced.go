package query

import (
	"errors"
	"strings"
)

// ErrCTEUnionCombined is returned by BuildFull when both CTEs and union
// branches are populated. The two composition modes cannot be rendered in
// one statement by this builder; picking one silently would hide caller
// intent, so the conflict is an explicit configuration error.
var ErrCTEUnionCombined = errors.New("cannot combine CTEs and UNION branches in one query")

type cte struct {
	Name   string
	SQL    string
	Params []interface{}
}

type unionBranch struct {
	All    bool
	SQL    string
	Params []interface{}
}

// Advanced layers common-table-expressions and UNION composition over a
// base Builder. The base builder's mutators remain available through
// embedding.
type Advanced struct {
	*Builder

	ctes   []cte
	unions []unionBranch
}

func NewAdvanced(table string) *Advanced {
	return &Advanced{Builder: New(table)}
}

// WithCTE appends one named common-table-expression. CTEs render in
// insertion order and their parameters precede the main query's.
func (a *Advanced) WithCTE(name, sql string, params ...interface{}) *Advanced {
	a.ctes = append(a.ctes, cte{Name: name, SQL: sql, Params: params})
	return a
}

// Union appends a UNION branch (duplicate rows removed).
func (a *Advanced) Union(sql string, params ...interface{}) *Advanced {
	a.unions = append(a.unions, unionBranch{SQL: sql, Params: params})
	return a
}

// UnionAll appends a UNION ALL branch (duplicate rows kept).
func (a *Advanced) UnionAll(sql string, params ...interface{}) *Advanced {
	a.unions = append(a.unions, unionBranch{All: true, SQL: sql, Params: params})
	return a
}

// BuildWithCTE prefixes WITH name AS (sql), ... to the base query. The
// combined parameter list is every CTE's parameters in insertion order,
// then the base query's parameters.
func (a *Advanced) BuildWithCTE() (string, []interface{}, error) {
	base, baseParams, err := a.Builder.Build()
	if err != nil {
		return "", nil, err
	}

	if len(a.ctes) == 0 {
		return base, baseParams, nil
	}

	definitions := make([]string, 0, len(a.ctes))
	params := make([]interface{}, 0, len(baseParams))
	for _, c := range a.ctes {
		definitions = append(definitions, c.Name+" AS ("+c.SQL+")")
		params = append(params, c.Params...)
	}
	params = append(params, baseParams...)

	return "WITH " + strings.Join(definitions, ", ") + " " + base, params, nil
}

// BuildUnion appends every UNION/UNION ALL branch after the base query in
// insertion order. Branch parameters follow the base query's parameters.
func (a *Advanced) BuildUnion() (string, []interface{}, error) {
	base, params, err := a.Builder.Build()
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString(base)

	for _, branch := range a.unions {
		if branch.All {
			sb.WriteString(" UNION ALL ")
		} else {
			sb.WriteString(" UNION ")
		}
		sb.WriteString(branch.SQL)
		params = append(params, branch.Params...)
	}

	return sb.String(), params, nil
}

// BuildFull dispatches on the populated composition mode: CTEs win when
// only CTEs are set, unions when only unions are set, the plain base
// build otherwise. Both set at once is ErrCTEUnionCombined.
func (a *Advanced) BuildFull() (string, []interface{}, error) {
	switch {
	case len(a.ctes) > 0 && len(a.unions) > 0:
		return "", nil, ErrCTEUnionCombined
	case len(a.ctes) > 0:
		return a.BuildWithCTE()
	case len(a.unions) > 0:
		return a.BuildUnion()
	default:
		return a.Builder.Build()
	}
}

// Clone deep-copies the advanced state together with the base builder.
func (a *Advanced) Clone() *Advanced {
	clone := &Advanced{Builder: a.Builder.Clone()}

	clone.ctes = make([]cte, len(a.ctes))
	for i, c := range a.ctes {
		clone.ctes[i] = cte{Name: c.Name, SQL: c.SQL, Params: append([]interface{}(nil), c.Params...)}
	}

	clone.unions = make([]unionBranch, len(a.unions))
	for i, branch := range a.unions {
		clone.unions[i] = unionBranch{All: branch.All, SQL: branch.SQL, Params: append([]interface{}(nil), branch.Params...)}
	}

	return clone
}
