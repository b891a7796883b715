package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabasePath(t *testing.T) {
	t.Run("viper setting wins", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		viper.Set("database.path", "/tmp/custom/gari.db")

		assert.Equal(t, "/tmp/custom/gari.db", DatabasePath())
	})

	t.Run("xdg data home fallback", func(t *testing.T) {
		viper.Reset()
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg")

		assert.Equal(t, filepath.Join("/tmp/xdg", "gari", DefaultDatabaseFile), DatabasePath())
	})
}

func TestExpandPath(t *testing.T) {
	t.Run("expands environment variables", func(t *testing.T) {
		t.Setenv("GARI_TEST_DIR", "/data")
		assert.Equal(t, "/data/gari.db", ExpandPath("$GARI_TEST_DIR/gari.db"))
	})

	t.Run("expands tilde", func(t *testing.T) {
		expanded := ExpandPath("~/gari.db")
		require.NotEqual(t, "~/gari.db", expanded)
		assert.True(t, filepath.IsAbs(expanded))
	})

	t.Run("empty path stays empty", func(t *testing.T) {
		assert.Empty(t, ExpandPath(""))
	})
}
