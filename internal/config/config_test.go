package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cuotas/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://postgres:@localhost:5432/cuotas?sslmode=disable", cfg.ConnectionString())
	assert.Equal(t, ';', cfg.Comma())
	assert.Equal(t, 3, cfg.Report.Months)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("EVENTS_DELIMITER", ",")
	t.Setenv("EVENTS_FILE", "/data/events.csv")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://app:secret@db:5432/cuotas?sslmode=disable", cfg.ConnectionString())
	assert.Equal(t, ',', cfg.Comma())
	assert.Equal(t, "/data/events.csv", cfg.Events.File)
}

func TestLoad_Invalid(t *testing.T) {
	type testCase struct {
		name  string
		key   string
		value string
	}

	tests := []testCase{
		{name: "multi character delimiter", key: "EVENTS_DELIMITER", value: ";;"},
		{name: "negative months", key: "REPORT_MONTHS", value: "-1"},
		{name: "non numeric port", key: "DB_PORT", value: "five"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
