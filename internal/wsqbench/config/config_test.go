package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	valid := Config{Users: 10, Queries: 2, LargeRows: 3, LargeBytes: 100}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "existing dir", mutate: func(c *Config) { c.Dir = t.TempDir() }},
		{name: "zero users", mutate: func(c *Config) { c.Users = 0 }, wantErr: true},
		{name: "negative queries", mutate: func(c *Config) { c.Queries = -1 }, wantErr: true},
		{name: "zero large rows", mutate: func(c *Config) { c.LargeRows = 0 }, wantErr: true},
		{name: "zero large bytes", mutate: func(c *Config) { c.LargeBytes = 0 }, wantErr: true},
		{name: "missing dir", mutate: func(c *Config) { c.Dir = filepath.Join(t.TempDir(), "nope") }, wantErr: true},
		{name: "dir is a file", mutate: func(c *Config) { c.Dir = file }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMustParseDefaults(t *testing.T) {
	cfg := MustParse([]string{"wsqbench"})
	assert.Equal(t, 10000, cfg.Users)
	assert.Equal(t, 100, cfg.Queries)
	assert.Equal(t, 1000, cfg.LargeRows)
	assert.Equal(t, 100000, cfg.LargeBytes)
	assert.Empty(t, cfg.Dir)
}

func TestMustParseFlags(t *testing.T) {
	dir := t.TempDir()
	cfg := MustParse([]string{
		"wsqbench", "--users", "5", "--queries", "7",
		"--large-rows", "3", "--large-bytes", "64", "--dir", dir,
	})
	assert.Equal(t, 5, cfg.Users)
	assert.Equal(t, 7, cfg.Queries)
	assert.Equal(t, 3, cfg.LargeRows)
	assert.Equal(t, 64, cfg.LargeBytes)
	assert.Equal(t, dir, cfg.Dir)
}
