package migratekit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfflineManager(t *testing.T, dir string) *MigrationManager {
	t.Helper()
	manager, err := NewMigrationsManagerOffline(WithMigrationsDir(dir))
	require.NoError(t, err)
	return manager
}

func TestCreateFileWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	manager := newOfflineManager(t, dir)

	path, err := manager.CreateFile("001", "Add products table", TemplateSchema)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "001_add_products_table.go"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `MigrationVersion:     "001"`)
	assert.Contains(t, string(content), `MigrationDescription: "Add products table"`)
	assert.Contains(t, string(content), "migratekit.NewSchemaChanges()")
	assert.Contains(t, string(content), "migratekit.Register(")
}

func TestCreateFileRefusesOverwrite(t *testing.T) {
	manager := newOfflineManager(t, t.TempDir())

	_, err := manager.CreateFile("001", "first", TemplateBasic)
	require.NoError(t, err)

	_, err = manager.CreateFile("001", "first", TemplateBasic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateFileValidation(t *testing.T) {
	manager := newOfflineManager(t, t.TempDir())

	_, err := manager.CreateFile("abc", "letters", TemplateBasic)
	assert.Error(t, err)

	_, err = manager.CreateFile("01", "too narrow", TemplateBasic)
	assert.Error(t, err)

	_, err = manager.CreateFile("001", "", TemplateBasic)
	assert.Error(t, err)

	_, err = manager.CreateFile("001", "bad kind", TemplateKind("yaml"))
	assert.Error(t, err)
}

func TestCreateFileDataTemplateFlagsForwardOnly(t *testing.T) {
	manager := newOfflineManager(t, t.TempDir())

	path, err := manager.CreateFile("002", "seed products", TemplateData)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "forward-only")
	assert.Contains(t, string(content), "migratekit.NewDataChanges()")
}

func TestOfflineManagerRejectsDatabaseOperations(t *testing.T) {
	manager := newOfflineManager(t, t.TempDir())

	_, err := manager.Status()
	assert.ErrorIs(t, err, ErrNoDatabase)

	assert.ErrorIs(t, manager.Rollback("001"), ErrNoDatabase)
}
