package fieldweaver

import (
	"regexp"
	"strings"
	"sync"
)

// RegexCache compiles patterns once and remembers the outcome for the rest
// of the process lifetime, failures included. A pattern that failed to
// compile returns the same PatternError on every use without a second
// compilation attempt. Safe for concurrent use; distinct patterns are
// assumed small and finite (they come from configuration), so entries are
// never evicted.
type RegexCache struct {
	mu      sync.Mutex
	entries map[string]*regexEntry
}

type regexEntry struct {
	re       *regexp.Regexp
	err      *PatternError
	reported bool
}

// NewRegexCache creates an empty cache.
func NewRegexCache() *RegexCache {
	return &RegexCache{entries: make(map[string]*regexEntry)}
}

// Compile returns the memoized compilation outcome for pattern, compiling
// it on first request.
func (c *RegexCache) Compile(pattern string) (*regexp.Regexp, error) {
	e := c.entry(pattern)
	if e.err != nil {
		return nil, e.err
	}
	return e.re, nil
}

// Extract runs pattern over text and returns the concatenation of every
// capture group in the first match. ok is false when the pattern does not
// match, or when the matched groups concatenate to the empty string: an
// empty extraction counts as no value.
func (c *RegexCache) Extract(pattern, text string) (value string, ok bool, err error) {
	re, err := c.Compile(pattern)
	if err != nil {
		return "", false, err
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false, nil
	}
	var b strings.Builder
	for _, g := range m[1:] {
		b.WriteString(g)
	}
	if b.Len() == 0 {
		return "", false, nil
	}
	return b.String(), true, nil
}

func (c *RegexCache) entry(pattern string) *regexEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[pattern]; ok {
		return e
	}
	e := &regexEntry{}
	re, err := regexp.Compile(pattern)
	if err != nil {
		e.err = NewPatternError(pattern, err)
	} else {
		e.re = re
	}
	c.entries[pattern] = e
	return e
}

// firstFailure reports whether pattern's compile failure has not yet been
// surfaced to a warn sink, and marks it surfaced. Always false for
// patterns that compiled.
func (c *RegexCache) firstFailure(pattern string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[pattern]
	if !ok || e.err == nil || e.reported {
		return false
	}
	e.reported = true
	return true
}
