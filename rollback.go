package migratekit

import (
	"errors"
	"fmt"
	"sort"

	"github.com/evsyukovmv/migratekit/internal/models"
	"github.com/evsyukovmv/migratekit/internal/repository"
)

// Rollback undoes one successfully applied migration. The definition is
// resolved through the registry by its declared version; the success
// record is deleted only after Down completes, so a failed rollback
// leaves the record untouched.
//
// Rolling back the same version twice fails on the second call: once the
// record is gone there is nothing to roll back.
func (m *MigrationManager) Rollback(version string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.rollback(version)
}

func (m *MigrationManager) rollback(version string) error {
	if m.db == nil {
		return ErrNoDatabase
	}

	parsed, err := models.ParseVersion(version)
	if err != nil {
		return err
	}

	record, err := repository.GetMigration(m.db, parsed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			m.logger.Error(fmt.Sprintf("migration %s has no record", version))
			return fmt.Errorf("%w: %s", ErrNotApplied, version)
		}
		return err
	}
	if record.Status != models.StateSuccess {
		m.logger.Error(fmt.Sprintf("migration %s has no successful record", version))
		return fmt.Errorf("%w: %s", ErrNotApplied, version)
	}

	migration, ok := m.registry.Find(version)
	if !ok {
		m.logger.Error(fmt.Sprintf("no registered migration for version %s", version))
		return fmt.Errorf("%w: %s", ErrUnknownVersion, version)
	}

	m.logger.Info(fmt.Sprintf("rolling back migration %s: %s", version, migration.Description()))

	if err = m.executeDown(migration); err != nil {
		m.logger.Error(fmt.Sprintf("rollback of %s failed: %s", version, err))
		return fmt.Errorf("rollback of %s: %w", version, err)
	}

	if err = repository.DeleteMigration(m.db, parsed); err != nil {
		return fmt.Errorf("deleting record of %s: %w", version, err)
	}

	m.logger.Info(fmt.Sprintf("rollback of %s complete", version))
	return nil
}

// executeDown runs Down and converts a panic into an error.
func (m *MigrationManager) executeDown(migration Migration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("down panicked: %v", r)
		}
	}()

	return migration.Down(m.db)
}

// RollbackAll rolls back every successfully applied migration in
// strictly descending version order, fail-fast: the first failure stops
// the batch, leaving older migrations applied.
func (m *MigrationManager) RollbackAll() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	applied, err := m.applied()
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		m.logger.Info("no applied migrations to roll back")
		return nil
	}

	sort.SliceStable(applied, func(i, j int) bool {
		return models.Version(applied[i].Version).MoreThan(models.Version(applied[j].Version))
	})

	for _, entry := range applied {
		if err = m.rollback(entry.Version); err != nil {
			return err
		}
	}

	m.logger.Info("rollback of all migrations complete")
	return nil
}
