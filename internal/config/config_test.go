package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[server]
tick_rate = "100ms"

[build]
rotation_scale = 15.0
default_kind = "Wall"
`))
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, cfg.Server.TickRate)
	assert.Equal(t, 15.0, cfg.Build.RotationScale)
	assert.Equal(t, "Wall", cfg.Build.DefaultKind)

	// untouched sections keep their defaults
	assert.Equal(t, 64.0, cfg.Build.TraceDistance)
	assert.Equal(t, 32, cfg.Server.MaxEventsPerTick)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.NotZero(t, cfg.Server.StartTime)
}

func TestDefaultsRotationScale(t *testing.T) {
	assert.Equal(t, 10.0, Defaults().Build.RotationScale)
	assert.NoError(t, Defaults().Validate())
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"zero tick rate", "[server]\ntick_rate = \"0s\""},
		{"negative trace distance", "[build]\ntrace_distance = -1.0"},
		{"empty world", "[world]\nsize_x = 0"},
		{"ground above world", "[world]\nsize_z = 4\nground_height = 8"},
		{"malformed", "[server\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "read config")
}

func TestUptime(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	later := time.Unix(cfg.Server.StartTime, 0).Add(90*time.Second + 400*time.Millisecond)
	assert.Equal(t, 90*time.Second, cfg.Server.Uptime(later))

	assert.Zero(t, ServerConfig{}.Uptime(time.Now()), "never started")
}
