package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	dir := t.TempDir()

	c1, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c1)
	assert.Equal(t, "text", c1.Format)
	assert.Equal(t, 50, c1.History)
	assert.Empty(t, c1.DB)

	c1.Format = "json"
	c1.DB = "postgres://localhost:5432/acmg"
	c1.History = 10

	err = Save(dir, c1)
	require.NoError(t, err)

	c2, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c2)
	assert.Equal(t, c1.Format, c2.Format)
	assert.Equal(t, c1.DB, c2.DB)
	assert.Equal(t, c1.History, c2.History)
}

func TestConfigErrors(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)

	err = Save("", &Config{})
	assert.Error(t, err)

	err = Save(t.TempDir(), nil)
	assert.Error(t, err)
}

func TestGetOrCreateHomeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, created, err := GetOrCreateHomeDir("acmgtest")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, filepath.Join(home, ".acmgtest"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, created, err = GetOrCreateHomeDir(".acmgtest")
	require.NoError(t, err)
	assert.False(t, created)

	_, _, err = GetOrCreateHomeDir("")
	assert.Error(t, err)
}
