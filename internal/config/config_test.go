package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"job_url": "https://example.com/job",
		"database_url": "postgres://localhost:5432/ats",
		"port": 8080,
		"log_level": "debug",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/job", cfg.JobURL)
	assert.Equal(t, "postgres://localhost:5432/ats", cfg.DatabaseURL)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	jobFile := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(jobFile, []byte("job text"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty config is valid", Config{}, ""},
		{"existing job file", Config{Job: jobFile}, ""},
		{"job and job_url together", Config{Job: jobFile, JobURL: "https://example.com"}, "mutually exclusive"},
		{"missing job file", Config{Job: "/nonexistent/job.txt"}, "job file not found"},
		{"missing dictionary file", Config{Dictionary: "/nonexistent/dict.json"}, "dictionary file not found"},
		{"negative port", Config{Port: -1}, "'port' must be"},
		{"port too large", Config{Port: 70000}, "'port' must be"},
		{"unknown log level", Config{LogLevel: "loud"}, "unknown log level"},
		{"unknown log format", Config{LogFormat: "xml"}, "unknown log format"},
		{"known log settings", Config{LogLevel: "warn", LogFormat: "json"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{
		DatabaseURL: "postgres://explicit:5432/ats",
		LogLevel:    "debug",
	}
	defaults := Config{
		DatabaseURL: "postgres://default:5432/ats",
		LogLevel:    "info",
		LogFormat:   "console",
		Port:        8080,
		Dictionary:  "dict.json",
	}

	merged := cfg.MergeWithDefaults(defaults)

	// Explicit values win
	assert.Equal(t, "postgres://explicit:5432/ats", merged.DatabaseURL)
	assert.Equal(t, "debug", merged.LogLevel)
	// Empty values are filled
	assert.Equal(t, "console", merged.LogFormat)
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, "dict.json", merged.Dictionary)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env:5432/ats")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := Config{}
	cfg.FromEnv()
	assert.Equal(t, "postgres://env:5432/ats", cfg.DatabaseURL)
	assert.Equal(t, "warn", cfg.LogLevel)

	explicit := Config{DatabaseURL: "postgres://file:5432/ats", LogLevel: "debug"}
	explicit.FromEnv()
	assert.Equal(t, "postgres://file:5432/ats", explicit.DatabaseURL)
	assert.Equal(t, "debug", explicit.LogLevel)
}
