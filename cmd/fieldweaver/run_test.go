package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func Test_Run(t *testing.T) {
	t.Run("should augment every record on stdin", func(t *testing.T) {
		t.Setenv("SCRAPY_JOB", "test-job")
		path := writeConfig(t, `
fields:
  spider: "$spider:name"
  sku: "$field:url,r'item_no=(\\d+)'"
  job: "$jobid"
spider:
  name: myspider
`)
		in := strings.NewReader(
			`{"url": "http://www.example.com/product.html?item_no=345"}` + "\n" +
				`{"url": "http://www.example.com/product.html?item_no=678", "sku": "preset"}` + "\n")
		var out bytes.Buffer
		require.NoError(t, run(path, in, &out, zap.NewNop()))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)

		var first, second map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
		assert.Equal(t, "345", first["sku"])
		assert.Equal(t, "myspider", first["spider"])
		assert.Equal(t, "test-job", first["job"])
		assert.Equal(t, "preset", second["sku"])
	})

	t.Run("should skip undecodable lines and keep going", func(t *testing.T) {
		t.Setenv("SCRAPY_JOB", "test-job")
		path := writeConfig(t, `
fields:
  spider: "$spider:name"
`)
		in := strings.NewReader("not json\n" + `{"nom": "myitem"}` + "\n")
		var out bytes.Buffer
		require.NoError(t, run(path, in, &out, zap.NewNop()))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 1)
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
		assert.Equal(t, "myitem", rec["nom"])
		assert.Equal(t, defaultSpiderName, rec["spider"])
	})

	t.Run("should fail when no fields are configured", func(t *testing.T) {
		t.Setenv("SCRAPY_JOB", "test-job")
		path := writeConfig(t, "settings: {}\n")
		require.Error(t, run(path, strings.NewReader(""), &bytes.Buffer{}, zap.NewNop()))
	})
}
