// Package fieldweaver augments structured records with derived fields
// computed from format strings. A format string may contain placeholders of
// the form $name[:arg][,r'regex'] which are resolved against the record, the
// response and spider contexts it came from, the process environment, the
// wall clock, or a settings lookup, then optionally narrowed to a regex
// capture.
package fieldweaver

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Engine resolves placeholders and augments records against one immutable
// field spec. An Engine is long lived: construct it once, reuse it for every
// record. The regex cache it carries is the only shared mutable state, and
// it is safe for concurrent use, so one Engine may serve records from many
// goroutines.
type Engine struct {
	fields   FieldSpec
	settings Settings
	jobtime  string
	regexes  *RegexCache
	env      func(name string) (string, bool)
	now      func() time.Time
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithRegexCache shares an existing pattern cache between engines.
func WithRegexCache(c *RegexCache) Option {
	return func(e *Engine) { e.regexes = c }
}

// WithEnvLookup replaces the environment lookup, defaulting to os.LookupEnv.
func WithEnvLookup(fn func(name string) (string, bool)) Option {
	return func(e *Engine) { e.env = fn }
}

// WithClock replaces the wall clock, defaulting to time.Now.
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) { e.now = fn }
}

// NewEngine creates an Engine over the merged field spec. The job-start
// timestamp used by $jobtime is captured here, once. Returns ErrNoFields
// when the spec is empty.
func NewEngine(fields FieldSpec, settings Settings, opts ...Option) (*Engine, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	if settings == nil {
		settings = MapSettings{}
	}
	e := &Engine{
		fields:   fields,
		settings: settings,
		regexes:  NewRegexCache(),
		env:      os.LookupEnv,
		now:      time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	e.jobtime = e.now().UTC().Format(timeLayout)
	return e, nil
}

// Format resolves every placeholder in format against the given record,
// response and spider contexts, left to right. A resolved placeholder
// replaces the first remaining literal occurrence of its matched text; an
// unresolved one stays verbatim. A trailing r'...' regex re-runs extraction
// over the whole output built so far: a successful extraction becomes the
// entire result, no match yields the empty string, and a pattern that does
// not compile is reported once per distinct pattern text and leaves the
// output untouched. Nothing here aborts: every failure degrades to
// "leave unresolved and warn".
func (e *Engine) Format(format string, record Record, response AttrSource, spider SpiderContext) string {
	ec := evalCtx{record: record, response: response, spider: spider}
	out := format
	for _, m := range scan(format) {
		if resolve, known := dispatch[m.entity]; known {
			if val, ok := resolve(e, m, m.args(), ec); ok {
				out = strings.Replace(out, m.text, val, 1)
			}
		}
		if m.regex == "" {
			continue
		}
		val, ok, err := e.regexes.Extract(m.regex, out)
		switch {
		case err != nil:
			if e.regexes.firstFailure(m.regex) {
				spider.Warn(fmt.Sprintf("error at %q: %v", m.text, err))
			}
		case ok:
			out = val
		default:
			out = ""
		}
	}
	return out
}

// Augment computes every configured field the record does not already have
// and sets it, then returns the same record. Fields already present are
// never overwritten, so augmenting twice is the same as augmenting once.
// Iteration order over the spec is unspecified; a $field reference sees
// whatever the record holds at the moment it resolves, including fields
// computed earlier in the same pass, but callers must not rely on any
// particular order.
func (e *Engine) Augment(record Record, response AttrSource, spider SpiderContext) Record {
	for field, format := range e.fields {
		if record.Has(field) {
			continue
		}
		record.SetIfAbsent(field, e.Format(format, record, response, spider))
	}
	return record
}
