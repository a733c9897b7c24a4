package migratekit

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/evsyukovmv/migratekit/internal/models"
	"github.com/evsyukovmv/migratekit/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNoDatabase             = errors.New("manager has no database connection")
	ErrDependencyNotSatisfied = errors.New("migration has unsatisfied dependencies")
	ErrAlreadyApplied         = errors.New("migration already applied")
	ErrNotApplied             = errors.New("migration has no successful record to roll back")
	ErrUnknownVersion         = errors.New("no registered migration for version")
)

// NewMigrationsManager creates the facade orchestrating discovery,
// ordering, application, rollback and status reporting. It owns exactly
// one database handle and one registry; everything it needs is passed in
// explicitly, there is no ambient state.
//
// The tracking table is created here. A failure to do so is an
// infrastructure fault and the only error class that escapes as a
// constructor failure.
func NewMigrationsManager(db *gorm.DB, registry *Registry, opts ...ManagerOption) (*MigrationManager, error) {
	if db == nil {
		return nil, errors.New("db handle is required")
	}
	if registry == nil {
		registry = DefaultRegistry()
	}

	manager := MigrationManager{
		logger:        slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
		db:            db,
		registry:      registry,
		migrationsDir: "migrations",
	}

	for _, opt := range opts {
		opt(&manager)
	}

	if !repository.HasMigrationsTable(db) {
		manager.logger.Info("table migrations not found, creating")
		if err := repository.CreateMigrationsTable(db); err != nil {
			return nil, fmt.Errorf("creating migrations table: %w", err)
		}
	}

	return &manager, nil
}

// NewMigrationsManagerOffline builds a manager without a database handle.
// Only CreateFile works on it; every database-backed operation returns
// ErrNoDatabase. The bundled CLI uses it for the create subcommand.
func NewMigrationsManagerOffline(opts ...ManagerOption) (*MigrationManager, error) {
	manager := MigrationManager{
		logger:        slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
		registry:      DefaultRegistry(),
		migrationsDir: "migrations",
	}

	for _, opt := range opts {
		opt(&manager)
	}

	return &manager, nil
}

type MigrationManager struct {
	logger        *slog.Logger
	db            *gorm.DB
	registry      *Registry
	migrationsDir string

	mutex sync.Mutex
}

// AppliedMigration is the public view of one success record.
type AppliedMigration struct {
	Version         string
	Description     string
	AppliedAt       time.Time
	ExecutionTimeMs int64
}

// PendingMigration is a discovered migration with no success record yet.
type PendingMigration struct {
	Version     string
	Description string
}

type Status struct {
	AppliedCount int
	PendingCount int
	Applied      []AppliedMigration
	Pending      []PendingMigration

	// LastApplied and NextPending are nil when the matching list is empty.
	LastApplied *AppliedMigration
	NextPending *PendingMigration
}

// Applied returns the success records ascending by version.
func (m *MigrationManager) Applied() ([]AppliedMigration, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.applied()
}

// Pending returns registered migrations without a success record,
// ascending by version. Together with Applied it partitions the
// registry: the two never overlap and their union is every discovered
// version.
func (m *MigrationManager) Pending() ([]Migration, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.pending()
}

func (m *MigrationManager) Status() (Status, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	applied, err := m.applied()
	if err != nil {
		return Status{}, err
	}

	pendingMigrations, err := m.pending()
	if err != nil {
		return Status{}, err
	}

	pending := make([]PendingMigration, 0, len(pendingMigrations))
	for _, migration := range pendingMigrations {
		pending = append(pending, PendingMigration{
			Version:     migration.Version(),
			Description: migration.Description(),
		})
	}

	status := Status{
		AppliedCount: len(applied),
		PendingCount: len(pending),
		Applied:      applied,
		Pending:      pending,
	}
	if len(applied) > 0 {
		status.LastApplied = &applied[len(applied)-1]
	}
	if len(pending) > 0 {
		status.NextPending = &pending[0]
	}

	return status, nil
}

func (m *MigrationManager) applied() ([]AppliedMigration, error) {
	if m.db == nil {
		return nil, ErrNoDatabase
	}

	records, err := repository.GetMigrationsSorted(m.db, repository.OrderASC)
	if err != nil {
		return nil, err
	}

	applied := make([]AppliedMigration, 0, len(records))
	for _, record := range records {
		if record.Status != models.StateSuccess {
			continue
		}

		entry := AppliedMigration{
			Version:     record.Version.String(),
			Description: record.Description,
			AppliedAt:   record.AppliedAt.Time,
		}
		if record.ExecutionTimeMs != nil {
			entry.ExecutionTimeMs = *record.ExecutionTimeMs
		}
		applied = append(applied, entry)
	}

	// records come back in lexical version order; re-sort numerically in
	// case versions were registered with uneven zero-padding
	sort.SliceStable(applied, func(i, j int) bool {
		return models.Version(applied[i].Version).LessThan(models.Version(applied[j].Version))
	})

	return applied, nil
}

func (m *MigrationManager) pending() ([]Migration, error) {
	appliedSet, err := m.appliedSet()
	if err != nil {
		return nil, err
	}

	pending := make([]Migration, 0)
	for _, migration := range m.registry.Migrations() {
		if _, ok := findAppliedVersion(appliedSet, migration.Version()); ok {
			continue
		}
		pending = append(pending, migration)
	}

	return pending, nil
}

// appliedSet maps successfully applied versions to their records.
func (m *MigrationManager) appliedSet() (map[string]models.MigrationRecord, error) {
	if m.db == nil {
		return nil, ErrNoDatabase
	}

	records, err := repository.GetMigrationsSorted(m.db, repository.OrderASC)
	if err != nil {
		return nil, err
	}

	set := make(map[string]models.MigrationRecord, len(records))
	for _, record := range records {
		if record.Status != models.StateSuccess {
			continue
		}
		set[record.Version.String()] = record
	}

	return set, nil
}
