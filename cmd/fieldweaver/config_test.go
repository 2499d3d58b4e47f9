package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fieldweaver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_LoadConfig(t *testing.T) {
	t.Run("should decode fields, overrides, settings and contexts", func(t *testing.T) {
		path := writeConfig(t, `
fields:
  spider: "$spider:name"
  stamp: "item scraped at $time"
fields_override:
  sku: "$field:nom"
settings:
  DOWNLOAD_DELAY: 2
spider:
  name: myspider
  attrs:
    arg1: val1
response:
  url: http://www.example.com/product/8798732
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "$spider:name", cfg.Fields["spider"])
		assert.Equal(t, "$field:nom", cfg.FieldsOverride["sku"])
		assert.Equal(t, 2, cfg.Settings["DOWNLOAD_DELAY"])
		assert.Equal(t, "myspider", cfg.Spider.Name)
		assert.Equal(t, "val1", cfg.Spider.Attrs["arg1"])
		assert.Equal(t, "http://www.example.com/product/8798732", cfg.Response["url"])
	})

	t.Run("should default the spider name", func(t *testing.T) {
		path := writeConfig(t, `
fields:
  stamp: "$time"
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, defaultSpiderName, cfg.Spider.Name)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("should fail on malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "fields: [not, a, map]")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}
