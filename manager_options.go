package migratekit

import (
	"log/slog"
)

type ManagerOption func(*MigrationManager)

func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *MigrationManager) {
		m.logger = logger
	}
}

// WithMigrationsDir sets the directory CreateFile writes new migration
// files into. Defaults to "migrations".
func WithMigrationsDir(dir string) ManagerOption {
	return func(m *MigrationManager) {
		m.migrationsDir = dir
	}
}
