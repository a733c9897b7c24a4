package migratekit

import (
	"fmt"
	"strings"
)

type columnChange struct {
	Table  string
	Column string
}

type indexChange struct {
	Name  string
	Table string
}

type constraintChange struct {
	Table string
	Name  string
}

// SchemaChanges is an explicit change log for one Up invocation of a
// schema-oriented migration. Every generator returns the forward SQL for
// one structural change and records it in the matching tracking list in
// the same call, so ReverseScript stays a pure function of the log.
type SchemaChanges struct {
	createdTables      []string
	droppedTables      []string
	addedColumns       []columnChange
	droppedColumns     []columnChange
	createdIndexes     []indexChange
	droppedIndexes     []string
	addedConstraints   []constraintChange
	droppedConstraints []constraintChange
}

func NewSchemaChanges() *SchemaChanges {
	return &SchemaChanges{}
}

// CreateTable renders CREATE TABLE with the column definitions in the
// given order, e.g. "id BIGSERIAL PRIMARY KEY".
func (c *SchemaChanges) CreateTable(name string, columns ...string) string {
	c.createdTables = append(c.createdTables, name)
	return fmt.Sprintf("CREATE TABLE %s (\n    %s\n)", name, strings.Join(columns, ",\n    "))
}

func (c *SchemaChanges) DropTable(name string) string {
	c.droppedTables = append(c.droppedTables, name)
	return fmt.Sprintf("DROP TABLE %s", name)
}

func (c *SchemaChanges) AddColumn(table, column, definition string) string {
	c.addedColumns = append(c.addedColumns, columnChange{Table: table, Column: column})
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)
}

func (c *SchemaChanges) DropColumn(table, column string) string {
	c.droppedColumns = append(c.droppedColumns, columnChange{Table: table, Column: column})
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", table, column)
}

func (c *SchemaChanges) CreateIndex(name, table string, columns ...string) string {
	c.createdIndexes = append(c.createdIndexes, indexChange{Name: name, Table: table})
	return fmt.Sprintf("CREATE INDEX %s ON %s (%s)", name, table, strings.Join(columns, ", "))
}

func (c *SchemaChanges) CreateUniqueIndex(name, table string, columns ...string) string {
	c.createdIndexes = append(c.createdIndexes, indexChange{Name: name, Table: table})
	return fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (%s)", name, table, strings.Join(columns, ", "))
}

func (c *SchemaChanges) DropIndex(name string) string {
	c.droppedIndexes = append(c.droppedIndexes, name)
	return fmt.Sprintf("DROP INDEX %s", name)
}

func (c *SchemaChanges) AddForeignKey(table, constraint, column, refTable, refColumn string) string {
	c.addedConstraints = append(c.addedConstraints, constraintChange{Table: table, Name: constraint})
	return fmt.Sprintf(
		"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		table, constraint, column, refTable, refColumn,
	)
}

func (c *SchemaChanges) AddCheckConstraint(table, constraint, expression string) string {
	c.addedConstraints = append(c.addedConstraints, constraintChange{Table: table, Name: constraint})
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s)", table, constraint, expression)
}

func (c *SchemaChanges) DropConstraint(table, constraint string) string {
	c.droppedConstraints = append(c.droppedConstraints, constraintChange{Table: table, Name: constraint})
	return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", table, constraint)
}

// ReverseScript derives a best-effort undo script from the tracking
// lists. Statements come out in the opposite order of application so a
// dependent object is always dropped before what it depends on:
// constraints, then indexes, then columns, then a placeholder for
// dropped tables (their definitions are gone and cannot be recreated
// safely), then created tables. Each list is walked in reverse insertion
// order.
func (c *SchemaChanges) ReverseScript() []string {
	script := make([]string, 0)

	for i := len(c.addedConstraints) - 1; i >= 0; i-- {
		change := c.addedConstraints[i]
		script = append(script, fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", change.Table, change.Name))
	}

	for i := len(c.createdIndexes) - 1; i >= 0; i-- {
		script = append(script, fmt.Sprintf("DROP INDEX %s", c.createdIndexes[i].Name))
	}

	for i := len(c.addedColumns) - 1; i >= 0; i-- {
		change := c.addedColumns[i]
		script = append(script, fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", change.Table, change.Column))
	}

	for i := len(c.droppedTables) - 1; i >= 0; i-- {
		script = append(script, fmt.Sprintf("-- cannot recreate dropped table %s, restore it manually", c.droppedTables[i]))
	}

	for i := len(c.createdTables) - 1; i >= 0; i-- {
		script = append(script, fmt.Sprintf("DROP TABLE %s", c.createdTables[i]))
	}

	return script
}
