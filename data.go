package migratekit

import (
	"fmt"
	"strings"
)

// Assignment is one SET column = value pair of an UPDATE. Assignments are
// ordered so parameter order stays deterministic.
type Assignment struct {
	Column string
	Value  interface{}
}

// DataChanges is the change log for a data-oriented migration. Generators
// return parameterized SQL and append a human-readable audit record.
//
// Data rollback is advisory only: previous values of updated or deleted
// rows are not captured, so ReverseScript emits comment placeholders
// naming each forward change instead of working undo statements. Data
// migrations are effectively forward-only.
type DataChanges struct {
	log []string
}

func NewDataChanges() *DataChanges {
	return &DataChanges{}
}

// Insert with no rows is a no-op: it returns an empty statement and
// records nothing, instead of rendering an INSERT with no VALUES.
func (c *DataChanges) Insert(table string, columns []string, rows ...[]interface{}) (string, []interface{}) {
	if len(rows) == 0 {
		return "", nil
	}

	placeholders := make([]string, 0, len(rows))
	params := make([]interface{}, 0, len(rows)*len(columns))

	row := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	for _, values := range rows {
		placeholders = append(placeholders, row)
		params = append(params, values...)
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
	)

	c.log = append(c.log, fmt.Sprintf("inserted %d row(s) into %s", len(rows), table))
	return sql, params
}

func (c *DataChanges) Update(table string, assignments []Assignment, condition string, conditionParams ...interface{}) (string, []interface{}) {
	sets := make([]string, 0, len(assignments))
	params := make([]interface{}, 0, len(assignments)+len(conditionParams))

	for _, assignment := range assignments {
		sets = append(sets, assignment.Column+" = ?")
		params = append(params, assignment.Value)
	}
	params = append(params, conditionParams...)

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(sets, ", "), condition)

	c.log = append(c.log, fmt.Sprintf("updated %s where %s, previous values not captured", table, condition))
	return sql, params
}

func (c *DataChanges) Delete(table, condition string, params ...interface{}) (string, []interface{}) {
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s", table, condition)

	c.log = append(c.log, fmt.Sprintf("deleted from %s where %s, removed rows not captured", table, condition))
	return sql, params
}

// ChangeLog returns the audit records in the order the changes were made.
func (c *DataChanges) ChangeLog() []string {
	out := make([]string, len(c.log))
	copy(out, c.log)
	return out
}

// ReverseScript documents, per forward change, that no automatic undo
// exists. The limitation is surfaced in the script itself so an operator
// reviewing a rollback sees exactly what manual intervention is needed.
func (c *DataChanges) ReverseScript() []string {
	script := make([]string, 0, len(c.log))
	for i := len(c.log) - 1; i >= 0; i-- {
		script = append(script, fmt.Sprintf("-- MANUAL INTERVENTION REQUIRED: %s", c.log[i]))
	}
	return script
}
