package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWithCTE(t *testing.T) {
	sql, params, err := NewAdvanced("stats").
		WithCTE("stats", "SELECT category, COUNT(*) AS n FROM products GROUP BY category").
		BuildWithCTE()

	require.NoError(t, err)
	assert.Equal(t,
		"WITH stats AS (SELECT category, COUNT(*) AS n FROM products GROUP BY category) SELECT * FROM stats",
		sql,
	)
	assert.Empty(t, params)
}

func TestCTEParamsPrecedeBaseParams(t *testing.T) {
	a := NewAdvanced("recent")
	a.WithCTE("recent", "SELECT * FROM orders WHERE created_at > ?", "2026-01-01")
	a.Where("total > ?", 100)

	sql, params, err := a.BuildWithCTE()
	require.NoError(t, err)
	assert.Equal(t,
		"WITH recent AS (SELECT * FROM orders WHERE created_at > ?) SELECT * FROM recent WHERE total > ?",
		sql,
	)
	assert.Equal(t, []interface{}{"2026-01-01", 100}, params)
}

func TestMultipleCTEsInInsertionOrder(t *testing.T) {
	sql, _, err := NewAdvanced("b").
		WithCTE("a", "SELECT 1").
		WithCTE("b", "SELECT 2").
		BuildWithCTE()

	require.NoError(t, err)
	assert.Equal(t, "WITH a AS (SELECT 1), b AS (SELECT 2) SELECT * FROM b", sql)
}

func TestBuildUnion(t *testing.T) {
	a := NewAdvanced("current_products")
	a.Where("price > ?", 10)
	a.Union("SELECT * FROM archived_products WHERE price > ?", 20)
	a.UnionAll("SELECT * FROM draft_products WHERE price > ?", 30)

	sql, params, err := a.BuildUnion()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT * FROM current_products WHERE price > ?"+
			" UNION SELECT * FROM archived_products WHERE price > ?"+
			" UNION ALL SELECT * FROM draft_products WHERE price > ?",
		sql,
	)
	// base params first, then branch params in insertion order
	assert.Equal(t, []interface{}{10, 20, 30}, params)
}

func TestBuildFullDispatch(t *testing.T) {
	plain, _, err := NewAdvanced("t").BuildFull()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t", plain)

	withCTE, _, err := NewAdvanced("s").WithCTE("s", "SELECT 1").BuildFull()
	require.NoError(t, err)
	assert.Equal(t, "WITH s AS (SELECT 1) SELECT * FROM s", withCTE)

	withUnion, _, err := NewAdvanced("t").Union("SELECT 2").BuildFull()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t UNION SELECT 2", withUnion)
}

func TestBuildFullRejectsCTEPlusUnion(t *testing.T) {
	a := NewAdvanced("t").WithCTE("s", "SELECT 1").Union("SELECT 2")

	_, _, err := a.BuildFull()
	require.ErrorIs(t, err, ErrCTEUnionCombined)
}

func TestAdvancedCloneIsolation(t *testing.T) {
	original := NewAdvanced("t").WithCTE("s", "SELECT ?", 1)
	original.Where("id = ?", 2)

	before, beforeParams, err := original.BuildWithCTE()
	require.NoError(t, err)

	clone := original.Clone()
	clone.WithCTE("u", "SELECT 3")
	clone.Where("name = ?", "x")

	after, afterParams, err := original.BuildWithCTE()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, beforeParams, afterParams)
}
