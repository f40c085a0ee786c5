package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadSettings_Defaults(t *testing.T) {
	// arrange
	for _, key := range []string{
		envHTTPAddr, envDBAdapter, envSweepSchedule, envOTelEnabled,
		envAllowedOrigins, envServiceVersion, envCreateSchema, envShutdownTimeout,
	} {
		t.Setenv(key, "")
	}

	// act
	s, err := loadSettings()

	// assert
	require.NoError(t, err)
	assert.Equal(t, defaultHTTPAddr, s.HTTPAddr)
	assert.Equal(t, adapterMemory, s.DBAdapter)
	assert.Empty(t, s.SweepSchedule)
	assert.False(t, s.SweepEnabled())
	assert.False(t, s.OTelEnabled)
	assert.Equal(t, defaultShutdownTimeout, s.ShutdownTimeout)
	assert.Empty(t, s.AllowedOrigins)
}

func Test_LoadSettings_FromEnvironment(t *testing.T) {
	// arrange
	t.Setenv(envHTTPAddr, ":9090")
	t.Setenv(envDBAdapter, adapterSQLX)
	t.Setenv(envSweepSchedule, "*/5 * * * *")
	t.Setenv(envOTelEnabled, "true")
	t.Setenv(envCreateSchema, "1")
	t.Setenv(envAllowedOrigins, "https://a.example, https://b.example,")
	t.Setenv(envShutdownTimeout, "3s")

	// act
	s, err := loadSettings()

	// assert
	require.NoError(t, err)
	assert.Equal(t, ":9090", s.HTTPAddr)
	assert.Equal(t, adapterSQLX, s.DBAdapter)
	assert.Equal(t, "*/5 * * * *", s.SweepSchedule)
	assert.True(t, s.SweepEnabled())
	assert.True(t, s.OTelEnabled)
	assert.True(t, s.CreateSchema)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, s.AllowedOrigins)
	assert.Equal(t, 3*time.Second, s.ShutdownTimeout)
}

func Test_LoadSettings_Invalid(t *testing.T) {
	testCases := []struct {
		description string
		key         string
		value       string
	}{
		{description: "unknown adapter", key: envDBAdapter, value: "mysql"},
		{description: "otel flag", key: envOTelEnabled, value: "sometimes"},
		{description: "shutdown timeout", key: envShutdownTimeout, value: "soon"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			t.Setenv(tc.key, tc.value)

			// act
			_, err := loadSettings()

			// assert
			assert.ErrorIs(t, err, ErrInvalidSetting)
		})
	}
}
