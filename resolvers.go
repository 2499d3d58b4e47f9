package fieldweaver

import (
	"fmt"
	"strconv"
	"time"
)

// JobIDEnvVar is the environment variable the surrounding job scheduler
// exposes the job id through. $jobid is a shortcut for $env:SCRAPY_JOB.
const JobIDEnvVar = "SCRAPY_JOB"

const timeLayout = "2006-01-02 15:04:05"
const isoTimeLayout = "2006-01-02T15:04:05.000000"

// evalCtx bundles the per-call collaborators a resolver may read from.
type evalCtx struct {
	record   Record
	response AttrSource
	spider   SpiderContext
}

// resolverFunc resolves one placeholder occurrence to a string value.
// ok=false means unresolved: the placeholder's literal text stays in the
// output. Resolvers report their own warnings through the spider context;
// a failed resolver never aborts the rest of the format string.
type resolverFunc func(e *Engine, m placeholderMatch, args []string, ec evalCtx) (value string, ok bool)

// dispatch is the closed entity set. Names not present here are silently
// left unresolved.
var dispatch = map[string]resolverFunc{
	"$jobid":    resolveJobID,
	"$spider":   resolveSpider,
	"$response": resolveResponse,
	"$field":    resolveField,
	"$jobtime":  resolveJobTime,
	"$setting":  resolveSetting,
	"$env":      resolveEnv,
	"$time":     resolveTime,
	"$unixtime": resolveUnixTime,
	"$isotime":  resolveISOTime,
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func resolveJobID(e *Engine, _ placeholderMatch, _ []string, _ evalCtx) (string, bool) {
	v, _ := e.env(JobIDEnvVar)
	return v, true
}

func resolveSpider(e *Engine, m placeholderMatch, args []string, ec evalCtx) (string, bool) {
	attr := firstArg(args)
	if attr == "" {
		ec.spider.Warn(fmt.Sprintf("error at %q: missing spider attribute name", m.text))
		return "", false
	}
	v, ok := ec.spider.Attr(attr)
	if !ok {
		ec.spider.Warn(fmt.Sprintf("error at %q: spider has no attribute %q", m.text, attr))
		return "", false
	}
	return stringify(v), true
}

func resolveResponse(e *Engine, m placeholderMatch, args []string, ec evalCtx) (string, bool) {
	attr := firstArg(args)
	if attr == "" {
		ec.spider.Warn(fmt.Sprintf("error at %q: missing response attribute name", m.text))
		return "", false
	}
	v, ok := ec.response.Attr(attr)
	if !ok {
		ec.spider.Warn(fmt.Sprintf("error at %q: response has no attribute %q", m.text, attr))
		return "", false
	}
	return stringify(v), true
}

func resolveField(e *Engine, _ placeholderMatch, args []string, ec evalCtx) (string, bool) {
	attr := firstArg(args)
	if attr == "" {
		return "", false
	}
	v, ok := ec.record.Get(attr)
	if !ok {
		return "", false
	}
	return stringify(v), true
}

func resolveJobTime(e *Engine, _ placeholderMatch, _ []string, _ evalCtx) (string, bool) {
	return e.jobtime, true
}

func resolveSetting(e *Engine, m placeholderMatch, args []string, ec evalCtx) (string, bool) {
	key := firstArg(args)
	if key == "" {
		return e.settings.String(), true
	}
	v, err := e.settings.Get(key)
	if err != nil {
		ec.spider.Warn(fmt.Sprintf("error at %q: %v", m.text, err))
		return "", false
	}
	return stringify(v), true
}

func resolveEnv(e *Engine, _ placeholderMatch, args []string, _ evalCtx) (string, bool) {
	name := firstArg(args)
	if name == "" {
		return "", false
	}
	v, _ := e.env(name)
	return v, true
}

func resolveTime(e *Engine, m placeholderMatch, args []string, ec evalCtx) (string, bool) {
	if !wantNoArgs(m, args, ec) {
		return "", false
	}
	return e.now().UTC().Format(timeLayout), true
}

func resolveUnixTime(e *Engine, m placeholderMatch, args []string, ec evalCtx) (string, bool) {
	if !wantNoArgs(m, args, ec) {
		return "", false
	}
	secs := float64(e.now().UnixNano()) / float64(time.Second)
	return strconv.FormatFloat(secs, 'f', 6, 64), true
}

func resolveISOTime(e *Engine, m placeholderMatch, args []string, ec evalCtx) (string, bool) {
	if !wantNoArgs(m, args, ec) {
		return "", false
	}
	return e.now().UTC().Format(isoTimeLayout), true
}

// wantNoArgs enforces arity for the zero-argument time entities. Passing an
// argument is an error, reported the same way as any other unresolved
// placeholder.
func wantNoArgs(m placeholderMatch, args []string, ec evalCtx) bool {
	if len(args) > 0 {
		ec.spider.Warn(fmt.Sprintf("error at %q: entity takes no arguments", m.text))
		return false
	}
	return true
}
