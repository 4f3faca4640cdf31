package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults when nothing is set", func(t *testing.T) {
		t.Setenv(EnvFile, filepath.Join(t.TempDir(), "missing.env"))
		t.Setenv(EnvDialect, "")
		t.Setenv(EnvFormat, "")
		t.Setenv(EnvTable, "")

		cfg := Load()
		assert.Equal(t, Default(), cfg)
	})

	t.Run("environment values are normalized", func(t *testing.T) {
		t.Setenv(EnvFile, filepath.Join(t.TempDir(), "missing.env"))
		t.Setenv(EnvDialect, " Sequelize ")
		t.Setenv(EnvFormat, "YAML")
		t.Setenv(EnvTable, "users")

		cfg := Load()
		assert.Equal(t, &Config{Dialect: "sequelize", Format: "yaml", Table: "users"}, cfg)
	})

	t.Run("env file fills unset keys only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "paramq.env")
		content := "PARAMQ_DIALECT=sequelize\nPARAMQ_TABLE=accounts\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		t.Setenv(EnvFile, path)
		t.Setenv(EnvDialect, "")
		t.Setenv(EnvFormat, "yaml")
		t.Setenv(EnvTable, "")
		// godotenv refuses to override variables that are present, even empty
		require.NoError(t, os.Unsetenv(EnvDialect))
		require.NoError(t, os.Unsetenv(EnvTable))

		cfg := Load()
		assert.Equal(t, "sequelize", cfg.Dialect)
		assert.Equal(t, "yaml", cfg.Format)
		assert.Equal(t, "accounts", cfg.Table)
	})
}
