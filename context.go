package fieldweaver

import (
	"fmt"
)

// AttrSource exposes named attributes of a collaborator, such as the
// response an item was extracted from. The second return reports whether
// the attribute exists at all.
type AttrSource interface {
	Attr(name string) (any, bool)
}

// SpiderContext is the execution context an item originates from. Besides
// attribute lookup it carries the warning capability the engine reports
// resolution problems through.
type SpiderContext interface {
	AttrSource
	Warn(message string)
}

// WarnFunc adapts a plain function into the warning half of SpiderContext.
type WarnFunc func(message string)

func (f WarnFunc) Warn(message string) { f(message) }

// Record is the item being augmented.
type Record interface {
	Has(field string) bool
	Get(field string) (any, bool)
	SetIfAbsent(field string, value any)
}

// MapRecord is the stock Record backed by a plain map.
type MapRecord map[string]any

func (m MapRecord) Has(field string) bool {
	_, ok := m[field]
	return ok
}

func (m MapRecord) Get(field string) (any, bool) {
	v, ok := m[field]
	return v, ok
}

func (m MapRecord) SetIfAbsent(field string, value any) {
	if _, ok := m[field]; !ok {
		m[field] = value
	}
}

// Settings is a read-only key→value lookup. Values may be nested or typed;
// the engine only ever needs their string form.
type Settings interface {
	Get(key string) (any, error)
	fmt.Stringer
}

// MapSettings is the stock Settings backed by a plain map.
type MapSettings map[string]any

func (m MapSettings) Get(key string) (any, error) {
	v, ok := m[key]
	if !ok {
		return nil, NewSettingError(key)
	}
	return v, nil
}

func (m MapSettings) String() string { return stringify(map[string]any(m)) }

// StaticSpider is a SpiderContext with a fixed attribute set. The "name"
// attribute is always present. Warnings go to the configured sink, or are
// dropped when none is set.
type StaticSpider struct {
	Name  string
	Attrs map[string]any
	Sink  WarnFunc
}

func (s *StaticSpider) Attr(name string) (any, bool) {
	if name == "name" {
		return s.Name, true
	}
	v, ok := s.Attrs[name]
	return v, ok
}

func (s *StaticSpider) Warn(message string) {
	if s.Sink != nil {
		s.Sink(message)
	}
}

// StaticResponse is an AttrSource over a fixed attribute map.
type StaticResponse map[string]any

func (r StaticResponse) Attr(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// stringify renders a resolved value in its canonical string form. fmt
// prints maps with sorted keys, so settings dumps are deterministic.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
