package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"max_file_size": 2048,
		"min_text_length": 25,
		"concurrency": 8,
		"output": "json",
		"out_dir": "out",
		"debug": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, int64(2048), cfg.MaxFileSize)
	assert.Equal(t, 25, cfg.MinTextLength)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, OutputJSON, cfg.Output)
	assert.Equal(t, "out", cfg.OutDir)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.JSONLogs)
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
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "zero value", cfg: Config{}},
		{name: "negative size", cfg: Config{MaxFileSize: -1}, wantErr: "MaxFileSize"},
		{name: "negative min text", cfg: Config{MinTextLength: -5}, wantErr: "MinTextLength"},
		{name: "concurrency too high", cfg: Config{Concurrency: 65}, wantErr: "Concurrency"},
		{name: "concurrency negative", cfg: Config{Concurrency: -1}, wantErr: "Concurrency"},
		{name: "unknown output", cfg: Config{Output: "yaml"}, wantErr: "Output"},
		{name: "json output", cfg: Config{Output: OutputJSON, Concurrency: 64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		MinTextLength: 100,
		Output:        OutputJSON,
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, 100, merged.MinTextLength)
	assert.Equal(t, OutputJSON, merged.Output)

	// Default values should fill in empty fields
	assert.Equal(t, int64(10*1024*1024), merged.MaxFileSize)
	assert.Equal(t, 4, merged.Concurrency)
	assert.Empty(t, merged.OutDir)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Concurrency: 2}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, 2, merged.Concurrency)
	assert.Zero(t, merged.MaxFileSize)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvMaxFileSize, "1024")
	t.Setenv(EnvMinTextLength, "not-a-number")
	t.Setenv(EnvConcurrency, "16")

	cfg := Defaults()
	cfg.ApplyEnv()

	assert.Equal(t, int64(1024), cfg.MaxFileSize)
	assert.Equal(t, 10, cfg.MinTextLength)
	assert.Equal(t, 16, cfg.Concurrency)
}

func TestApplyEnv_Unset(t *testing.T) {
	t.Setenv(EnvMaxFileSize, "")
	t.Setenv(EnvMinTextLength, "")
	t.Setenv(EnvConcurrency, "")

	cfg := Defaults()
	cfg.ApplyEnv()

	assert.Equal(t, Defaults(), cfg)
}

func TestApplyEnv_NonPositiveConcurrency(t *testing.T) {
	for _, value := range []string{"0", "-3"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv(EnvConcurrency, value)

			cfg := Defaults()
			cfg.ApplyEnv()

			assert.Equal(t, 4, cfg.Concurrency)
			assert.NoError(t, cfg.Validate())
		})
	}
}
