package migratekit

import (
	"errors"
	"fmt"
	"time"

	"github.com/evsyukovmv/migratekit/internal/models"
	"github.com/evsyukovmv/migratekit/internal/repository"
)

// Apply runs a single migration through its full lifecycle:
// validate, check dependencies against the set of successfully applied
// versions, insert a running record, execute Up, then mark the record
// success (with the measured execution time) or failed.
//
// A failure is local to this migration; previously applied migrations in
// the same batch stay applied. Panics inside Up are recovered and
// surfaced as the returned error, never as a crash.
func (m *MigrationManager) Apply(migration Migration) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.apply(migration)
}

func (m *MigrationManager) apply(migration Migration) error {
	if err := migration.Validate(); err != nil {
		m.logger.Error(fmt.Sprintf("migration rejected: %s", err))
		return err
	}

	appliedSet, err := m.appliedSet()
	if err != nil {
		return err
	}

	version := migration.Version()
	if record, ok := findAppliedVersion(appliedSet, version); ok && record.Status == models.StateSuccess {
		m.logger.Error(fmt.Sprintf("migration %s already applied", version))
		return fmt.Errorf("%w: %s", ErrAlreadyApplied, version)
	}

	for _, dependency := range migration.Dependencies() {
		if _, ok := findAppliedVersion(appliedSet, dependency); !ok {
			m.logger.Error(fmt.Sprintf("migration %s requires %s, which is not applied", version, dependency))
			return fmt.Errorf("%w: %s requires %s", ErrDependencyNotSatisfied, version, dependency)
		}
	}

	record, err := m.insertRunningRecord(migration)
	if err != nil {
		// a concurrent apply of the same version trips the unique
		// constraint here; that is a failed application, not a crash
		m.logger.Error(fmt.Sprintf("recording migration %s: %s", version, err))
		return fmt.Errorf("recording migration %s: %w", version, err)
	}

	m.logger.Info(fmt.Sprintf("executing migration %s: %s", version, migration.Description()))

	started := time.Now()
	execErr := m.executeUp(migration)
	elapsedMs := time.Since(started).Milliseconds()

	if execErr != nil {
		m.logger.Error(fmt.Sprintf("migration %s failed: %s", version, execErr))
		if stateErr := repository.UpdateMigrationStateExecuted(m.db, &record, models.StateFailed, elapsedMs); stateErr != nil {
			return fmt.Errorf("marking migration %s failed: %w", version, stateErr)
		}
		return fmt.Errorf("migration %s: %w", version, execErr)
	}

	if err = repository.UpdateMigrationStateExecuted(m.db, &record, models.StateSuccess, elapsedMs); err != nil {
		return fmt.Errorf("marking migration %s successful: %w", version, err)
	}

	m.logger.Info(fmt.Sprintf("migration %s complete in %dms", version, elapsedMs))
	return nil
}

// findAppliedVersion looks a version up in the applied set by numeric
// equality, so "1" satisfies a recorded "001" and vice versa.
func findAppliedVersion(set map[string]models.MigrationRecord, version string) (models.MigrationRecord, bool) {
	for applied, record := range set {
		if models.Version(applied).Equals(models.Version(version)) {
			return record, true
		}
	}
	return models.MigrationRecord{}, false
}

func (m *MigrationManager) insertRunningRecord(migration Migration) (models.MigrationRecord, error) {
	existing, err := repository.GetMigration(m.db, models.Version(migration.Version()))
	switch {
	case err == nil:
		// a previous attempt left a failed record behind; reuse it
		if stateErr := repository.UpdateMigrationState(m.db, &existing, models.StateRunning); stateErr != nil {
			return models.MigrationRecord{}, stateErr
		}
		return existing, nil
	case errors.Is(err, repository.ErrNotFound):
		return repository.InsertMigration(m.db, repository.SaveMigrationRequest{
			Version:     models.Version(migration.Version()),
			Description: migration.Description(),
			Checksum:    migrationChecksum(migration.Version(), migration.Description()),
			State:       models.StateRunning,
		})
	default:
		return models.MigrationRecord{}, err
	}
}

// executeUp runs Up and converts a panic into an error.
func (m *MigrationManager) executeUp(migration Migration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("up panicked: %v", r)
		}
	}()

	return migration.Up(m.db)
}

// Migrate applies every pending migration ascending by version,
// fail-fast: the first failed application stops the batch and is
// returned; earlier applications in the batch stay in place. A second
// invocation with nothing new pending is a no-op.
//
// A non-empty target stops the walk before any migration whose version
// exceeds it; the target version itself is still applied.
func (m *MigrationManager) Migrate(target string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var targetVersion models.Version
	if target != "" {
		parsed, err := models.ParseVersion(target)
		if err != nil {
			return err
		}
		targetVersion = parsed
	}

	pending, err := m.pending()
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		m.logger.Info("no pending migrations")
		return nil
	}

	m.logger.Info(fmt.Sprintf("applying %d pending migration(s)", len(pending)))

	for _, migration := range pending {
		if target != "" && models.Version(migration.Version()).MoreThan(targetVersion) {
			break
		}

		if err = m.apply(migration); err != nil {
			return err
		}
	}

	m.logger.Info("migrations complete, schema is up to date")
	return nil
}
