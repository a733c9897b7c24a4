package migratekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMigration(version, description string, deps ...string) FuncMigration {
	return FuncMigration{
		Definition: Definition{
			MigrationVersion:     version,
			MigrationDescription: description,
			DependsOn:            deps,
		},
	}
}

func TestRegistryOrdersByNumericVersion(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Add(
		testMigration("010", "ten"),
		testMigration("002", "two"),
		testMigration("001", "one"),
	))

	migrations := registry.Migrations()
	require.Len(t, migrations, 3)
	assert.Equal(t, "001", migrations[0].Version())
	assert.Equal(t, "002", migrations[1].Version())
	assert.Equal(t, "010", migrations[2].Version())
}

func TestRegistryRejectsDuplicateVersion(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Add(testMigration("001", "first")))

	err := registry.Add(testMigration("001", "second"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice")

	// the duplicate was not stored
	assert.Len(t, registry.Migrations(), 1)
}

func TestRegistryAddIsAtomic(t *testing.T) {
	registry := NewRegistry()

	// the last entry is invalid, so none of the batch registers
	err := registry.Add(
		testMigration("001", "one"),
		testMigration("002", "two"),
		testMigration("003", ""),
	)
	require.Error(t, err)
	assert.Empty(t, registry.Migrations())

	// a duplicate inside one batch is refused the same way
	err = registry.Add(
		testMigration("001", "one"),
		testMigration("001", "one again"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice")
	assert.Empty(t, registry.Migrations())
}

func TestRegistryRejectsInvalidDefinitions(t *testing.T) {
	registry := NewRegistry()

	assert.Error(t, registry.Add(testMigration("abc", "letters in version")))
	assert.Error(t, registry.Add(testMigration("1.2", "dotted version")))
	assert.Error(t, registry.Add(testMigration("001", "")))
	assert.Empty(t, registry.Migrations())
}

func TestRegistryFindByDeclaredVersion(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Add(testMigration("002", "two")))

	found, ok := registry.Find("002")
	require.True(t, ok)
	assert.Equal(t, "two", found.Description())

	// numeric equality, not string equality
	found, ok = registry.Find("2")
	require.True(t, ok)
	assert.Equal(t, "two", found.Description())

	_, ok = registry.Find("003")
	assert.False(t, ok)
}

func TestDefinitionValidate(t *testing.T) {
	assert.NoError(t, Definition{MigrationVersion: "001", MigrationDescription: "ok"}.Validate())
	assert.Error(t, Definition{MigrationVersion: "", MigrationDescription: "ok"}.Validate())
	assert.Error(t, Definition{MigrationVersion: "001", MigrationDescription: ""}.Validate())
	assert.Error(t, Definition{
		MigrationVersion:     "002",
		MigrationDescription: "bad dep",
		DependsOn:            []string{"one"},
	}.Validate())
}
