package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereIn(t *testing.T) {
	sql, params, err := New("products").WhereIn("category", "books", "games").Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM products WHERE category IN (?, ?)", sql)
	assert.Equal(t, []interface{}{"books", "games"}, params)
}

func TestWhereInEmptyMatchesNothing(t *testing.T) {
	sql, params, err := New("products").WhereIn("category").Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM products WHERE 1 = 0", sql)
	assert.Empty(t, params)
}

func TestWhereLikeAndILike(t *testing.T) {
	sql, params, err := New("products").
		WhereLike("name", "%phone%").
		WhereILike("brand", "acme%").
		Build()

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM products WHERE name LIKE ? AND brand ILIKE ?", sql)
	assert.Equal(t, []interface{}{"%phone%", "acme%"}, params)
}

func TestWhereBetween(t *testing.T) {
	sql, params, err := New("products").WhereBetween("price", 10, 20).Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM products WHERE price BETWEEN ? AND ?", sql)
	assert.Equal(t, []interface{}{10, 20}, params)
}

func TestWhereNullAndNotNull(t *testing.T) {
	sql, params, err := New("products").
		WhereNull("deleted_at").
		WhereNotNull("published_at").
		Build()

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM products WHERE deleted_at IS NULL AND published_at IS NOT NULL", sql)
	assert.Empty(t, params)
}

func TestWhereRecentDays(t *testing.T) {
	sql, params, err := New("orders").WhereRecentDays("created_at", 7).Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM orders WHERE created_at >= NOW() - ?::interval", sql)
	assert.Equal(t, []interface{}{"7 days"}, params)
}
