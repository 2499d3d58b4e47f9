package fieldweaver

import (
	"regexp"
	"strings"
)

// Placeholder grammar: a '$' marker, a lowercase entity name, an optional
// single ':'-introduced argument token, and an optional trailing regex
// literal written r'...'. The argument block is one word token; when a comma
// follows it, the rest of the match is the regex literal, not a second
// argument.
var placeholderRe = regexp.MustCompile(`(\$[a-z]+)(:\w+)?(?:,r'(.+)')?`)

// placeholderMatch is one recognized placeholder occurrence.
type placeholderMatch struct {
	text    string // full matched text, as it appears in the format string
	entity  string // entity name including the '$' marker
	rawArgs string // raw argument block including the leading ':', or ""
	regex   string // trailing regex pattern text, or ""
}

// args splits the raw argument block on commas, dropping empty tokens. An
// absent block yields no arguments.
func (m placeholderMatch) args() []string {
	if m.rawArgs == "" {
		return nil
	}
	var out []string
	for _, a := range strings.Split(m.rawArgs[1:], ",") {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// scan yields every non-overlapping placeholder occurrence in format, in
// left-to-right source order.
func scan(format string) []placeholderMatch {
	var out []placeholderMatch
	for _, m := range placeholderRe.FindAllStringSubmatch(format, -1) {
		out = append(out, placeholderMatch{
			text:    m[0],
			entity:  m[1],
			rawArgs: m[2],
			regex:   m[3],
		})
	}
	return out
}
