package expr

import "regexp"

// MatchConfig selects the four matching modes the evaluator composes,
// per the decision table in SPEC_FULL.md §4.1.3.
type MatchConfig struct {
	IgnoreCase   bool
	UseRegex     bool
	WordBoundary bool
	StripQuotes  bool
}

// PatternCache holds precompiled regexes for every distinct Word
// pattern in an AST, keyed by the raw pattern string. Built once by
// CompilePatterns before workers start and shared read-only across
// them. A pattern missing from the cache means its compilation
// failed — it can never match; this is not an error at evaluation
// time, only at precompile time.
type PatternCache struct {
	regex    map[string]*regexp.Regexp // used when cfg.UseRegex
	boundary map[string]*regexp.Regexp // used when cfg.WordBoundary && !cfg.UseRegex
	failures map[string]error
}

// CompilePatterns walks ast, collects its distinct Word patterns, and
// precompiles each as a regex (regex mode) or as an escaped
// word-boundary regex (word-boundary mode). Patterns that fail to
// compile are recorded in Failures and silently excluded from the
// cache — they can never match, but compiling one bad pattern never
// aborts the run. Callers that need "all patterns invalid" fatal
// semantics (SPEC_FULL.md §4.4.4) should check AllFailed.
func CompilePatterns(ast Node, cfg MatchConfig) *PatternCache {
	patterns := ExtractPatterns(ast)
	seen := make(map[string]bool, len(patterns))
	cache := &PatternCache{
		regex:    make(map[string]*regexp.Regexp),
		boundary: make(map[string]*regexp.Regexp),
		failures: make(map[string]error),
	}

	for _, p := range patterns {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true

		switch {
		case cfg.UseRegex:
			pattern := p
			if cfg.IgnoreCase {
				pattern = "(?i)" + pattern
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				cache.failures[p] = err
				continue
			}
			cache.regex[p] = re

		case cfg.WordBoundary:
			source := p
			if cfg.StripQuotes {
				source = stripQuotedRuns(source)
			}
			pattern := `\b` + regexp.QuoteMeta(source) + `\b`
			if cfg.IgnoreCase {
				pattern = "(?i)" + pattern
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				cache.failures[p] = err
				continue
			}
			cache.boundary[p] = re
		}
	}

	return cache
}

// AllFailed reports whether every distinct pattern requested of this
// cache failed to compile (only meaningful when the cache was built
// under regex or word-boundary mode; plain-substring and
// strip-quotes-only modes never populate Failures).
func (c *PatternCache) AllFailed() bool {
	if len(c.failures) == 0 {
		return false
	}
	return len(c.regex)+len(c.boundary) == 0
}

// Failures returns the compile error recorded for each pattern that
// could not be compiled.
func (c *PatternCache) Failures() map[string]error {
	return c.failures
}

// stripQuotedRuns removes the quote characters surrounding every
// maximal quoted run of `"`, `'`, or `` ` `` in s, leaving the
// interior content in place. An unterminated quote is left untouched
// (the lone quote character is copied verbatim).
func stripQuotedRuns(s string) string {
	out := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '"' || c == '\'' || c == '`' {
			j := i + 1
			for j < len(s) && s[j] != c {
				j++
			}
			if j < len(s) {
				out = append(out, s[i+1:j]...)
				i = j + 1
				continue
			}
		}
		out = append(out, c)
		i++
	}
	return string(out)
}
