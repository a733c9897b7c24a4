package migratekit

import (
	"errors"
	"fmt"

	"github.com/evsyukovmv/migratekit/internal/models"
	"gorm.io/gorm"
)

// Migration is a single versioned, ideally reversible change to schema or
// data. Implementations usually embed Definition and provide Up/Down.
//
// Up and Down run against the manager's database handle. A returned error
// (or a panic, which the manager recovers) marks the attempt failed; it
// never crosses the manager boundary as a crash.
type Migration interface {
	Version() string
	Description() string
	Dependencies() []string
	Validate() error
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// Definition carries the identity of a migration and provides the default
// contract behavior: no dependencies, digits-only version validation.
type Definition struct {
	MigrationVersion     string
	MigrationDescription string
	DependsOn            []string
}

func (d Definition) Version() string {
	return d.MigrationVersion
}

func (d Definition) Description() string {
	return d.MigrationDescription
}

func (d Definition) Dependencies() []string {
	return d.DependsOn
}

func (d Definition) Validate() error {
	if _, err := models.ParseVersion(d.MigrationVersion); err != nil {
		return err
	}
	if d.MigrationDescription == "" {
		return errors.New("migration description must not be empty")
	}
	for _, dep := range d.DependsOn {
		if _, err := models.ParseVersion(dep); err != nil {
			return fmt.Errorf("dependency of migration %s: %w", d.MigrationVersion, err)
		}
	}
	return nil
}

// FuncMigration is the quickest way to declare a migration without a
// dedicated type: version, description and the two functions.
type FuncMigration struct {
	Definition

	UpF   func(db *gorm.DB) error
	DownF func(db *gorm.DB) error
}

func (m FuncMigration) Up(db *gorm.DB) error {
	if m.UpF == nil {
		return fmt.Errorf("migration %s has no up function", m.MigrationVersion)
	}
	return m.UpF(db)
}

func (m FuncMigration) Down(db *gorm.DB) error {
	if m.DownF == nil {
		return fmt.Errorf("migration %s has no down function", m.MigrationVersion)
	}
	return m.DownF(db)
}
