package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	version, err := ParseVersion("0042")
	require.NoError(t, err)
	assert.Equal(t, "0042", version.String())

	for _, bad := range []string{"", "1.2", "v1", "00 1", "-1"} {
		_, err = ParseVersion(bad)
		assert.Error(t, err, bad)
	}
}

func TestVersionNumericComparison(t *testing.T) {
	assert.True(t, Version("010").MoreThan(Version("002")))
	assert.True(t, Version("2").MoreThan(Version("001")))
	assert.False(t, Version("002").MoreThan(Version("010")))

	// numeric, not lexical: "9" < "10"
	assert.True(t, Version("9").LessThan(Version("10")))

	assert.True(t, Version("002").Equals(Version("2")))
	assert.True(t, Version("002").MoreOrEqual(Version("2")))
	assert.True(t, Version("002").LessOrEqual(Version("2")))
	assert.False(t, Version("002").LessThan(Version("2")))
}

func TestVersionScan(t *testing.T) {
	var version Version
	require.NoError(t, version.Scan("007"))
	assert.Equal(t, "007", version.String())

	require.NoError(t, version.Scan([]byte("008")))
	assert.Equal(t, "008", version.String())

	assert.Error(t, version.Scan(42))
}
