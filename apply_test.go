package migratekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evsyukovmv/migratekit/internal/models"
)

func TestFindAppliedVersionIsNumeric(t *testing.T) {
	set := map[string]models.MigrationRecord{
		"001": {Version: "001", Status: models.StateSuccess},
	}

	// "1" and "001" are the same version
	record, ok := findAppliedVersion(set, "1")
	require.True(t, ok)
	assert.Equal(t, models.StateSuccess, record.Status)

	_, ok = findAppliedVersion(set, "001")
	assert.True(t, ok)

	_, ok = findAppliedVersion(set, "002")
	assert.False(t, ok)
}
