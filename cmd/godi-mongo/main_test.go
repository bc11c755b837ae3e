package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/a-peyrard/godi-mongo/mongodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func defaultSettings() *settings {
	return &settings{Log: &logSettings{Level: "error", Format: "json"}}
}

func TestValidate(t *testing.T) {
	t.Run("it should list the services registered by the plugin", func(t *testing.T) {
		// GIVEN
		path := writeConfig(t, `
plugins:
  mongoDb:
    localhost: true
    collections: [pages, codeProjects]
`)
		var out bytes.Buffer

		// WHEN
		err := newCommand(defaultSettings(), &out).Run(context.Background(), []string{"godi-mongo", "validate", "--config", path})

		// THEN
		require.NoError(t, err)
		assert.Contains(t, out.String(), "- MongoService (scope=public, async=true)")
		assert.Contains(t, out.String(), "- PagesCollection (scope=public, async=false)")
		assert.Contains(t, out.String(), "- CodeProjectsCollection (scope=public, async=false)")
		assert.Contains(t, out.String(), "state: pending")
	})

	t.Run("it should report configuration errors", func(t *testing.T) {
		// GIVEN
		path := writeConfig(t, `
plugins:
  mongoDb:
    dbName: blog
    port: "27017"
`)
		var out bytes.Buffer

		// WHEN
		err := newCommand(defaultSettings(), &out).Run(context.Background(), []string{"godi-mongo", "validate", "--config", path})

		// THEN
		require.Error(t, err)
		assert.ErrorIs(t, err, mongodb.ErrInvalidPort)
		assert.Empty(t, out.String())
	})

	t.Run("it should use the configuration file from the settings", func(t *testing.T) {
		// GIVEN
		defaults := defaultSettings()
		defaults.Config = writeConfig(t, `
plugins:
  mongoDb:
    localhost: true
`)
		var out bytes.Buffer

		// WHEN
		err := newCommand(defaults, &out).Run(context.Background(), []string{"godi-mongo", "validate"})

		// THEN
		require.NoError(t, err)
		assert.Contains(t, out.String(), "- MongoService")
	})
}
