package migratekit

import (
	"fmt"
	"sort"
	"sync"

	"github.com/evsyukovmv/migratekit/internal/models"
)

// Registry is the version-keyed table migrations register into at program
// initialization, usually from an init function in a generated file.
// Registration fails closed: an invalid definition or a duplicate version
// is an error, never a silent guess.
type Registry struct {
	mutex sync.Mutex

	byVersion map[string]Migration
	ordered   []Migration
}

func NewRegistry() *Registry {
	return &Registry{
		byVersion: make(map[string]Migration),
		ordered:   make([]Migration, 0),
	}
}

// Add registers migrations atomically: the whole batch is validated
// first, so a rejected migration leaves the registry untouched.
func (r *Registry) Add(migrations ...Migration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	seen := make(map[string]struct{}, len(migrations))
	for _, migration := range migrations {
		if err := migration.Validate(); err != nil {
			return fmt.Errorf("refusing to register migration: %w", err)
		}

		version := migration.Version()
		if _, ok := r.byVersion[version]; ok {
			return fmt.Errorf("migration version %s registered twice", version)
		}
		if _, ok := seen[version]; ok {
			return fmt.Errorf("migration version %s registered twice", version)
		}
		seen[version] = struct{}{}
	}

	for _, migration := range migrations {
		r.byVersion[migration.Version()] = migration
		r.ordered = append(r.ordered, migration)
	}

	return nil
}

// Migrations returns every registered migration sorted ascending by
// numeric version.
func (r *Registry) Migrations() []Migration {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	out := make([]Migration, len(r.ordered))
	copy(out, r.ordered)

	sort.SliceStable(out, func(i, j int) bool {
		left := models.Version(out[i].Version())
		right := models.Version(out[j].Version())
		return left.LessThan(right)
	})

	return out
}

// Find resolves a migration by its declared version, not by any file name.
func (r *Registry) Find(version string) (Migration, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for registered, migration := range r.byVersion {
		if models.Version(registered).Equals(models.Version(version)) {
			return migration, true
		}
	}
	return nil, false
}

var defaultRegistry = NewRegistry()

// DefaultRegistry is the process-wide registry the Register shorthand and
// the bundled CLI operate on.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds migrations to the default registry and panics on
// registration faults. Intended for init functions in generated
// migration files, where a bad registration must stop the program.
func Register(migrations ...Migration) {
	if err := defaultRegistry.Add(migrations...); err != nil {
		panic(err)
	}
}
