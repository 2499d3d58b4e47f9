package fieldweaver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Context(t *testing.T) {
	t.Run("should always expose the spider name attribute", func(t *testing.T) {
		s := &StaticSpider{Name: "myspider"}
		v, ok := s.Attr("name")
		assert.True(t, ok)
		assert.Equal(t, "myspider", v)
	})

	t.Run("should drop warnings when no sink is configured", func(t *testing.T) {
		s := &StaticSpider{Name: "myspider"}
		assert.NotPanics(t, func() { s.Warn("ignored") })
	})

	t.Run("should only set absent fields on a MapRecord", func(t *testing.T) {
		r := MapRecord{"nom": "myitem"}
		r.SetIfAbsent("nom", "other")
		r.SetIfAbsent("sku", "345")
		assert.Equal(t, "myitem", r["nom"])
		assert.Equal(t, "345", r["sku"])
	})

	t.Run("should distinguish a nil value from an absent field", func(t *testing.T) {
		r := MapRecord{"empty": nil}
		assert.True(t, r.Has("empty"))
		assert.False(t, r.Has("missing"))
	})

	t.Run("should stringify values in canonical form", func(t *testing.T) {
		assert.Equal(t, "plain", stringify("plain"))
		assert.Equal(t, "345", stringify(345))
		assert.Equal(t, "56.7", stringify(56.7))
		assert.Equal(t, "true", stringify(true))
		assert.Equal(t, "map[a:1 b:2]", stringify(map[string]any{"b": 2, "a": 1}))
	})
}
