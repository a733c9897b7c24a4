package main

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	return &out, &errOut
}

func TestExecuteUnknownCommandPrintsUsage(t *testing.T) {
	out, errOut := captureOutput(t)

	code := execute([]string{"frobnicate"})

	assert.Equal(t, 1, code)
	combined := out.String() + errOut.String()
	assert.Contains(t, combined, "unknown command")
	assert.Contains(t, combined, "Usage:")
}

func TestExecuteMissingDSNPrintsError(t *testing.T) {
	out, errOut := captureOutput(t)

	t.Setenv("MIGRATEKIT_DSN", "")
	viper.Set("dsn", "")
	t.Cleanup(func() { viper.Set("dsn", "") })

	code := execute([]string{"status"})

	assert.Equal(t, 1, code)
	combined := out.String() + errOut.String()
	assert.Contains(t, combined, "database URL is required")
}
