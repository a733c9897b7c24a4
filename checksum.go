package migratekit

import (
	"fmt"
	"hash/fnv"
)

// migrationChecksum identifies the registered content of a migration.
// Stored on the tracking record; reserved for content-integrity checks.
func migrationChecksum(version, description string) string {
	h := fnv.New32a()
	// fnv.Write never returns an error
	_, _ = h.Write([]byte(version + description))
	return fmt.Sprintf("%08x", h.Sum32())
}
