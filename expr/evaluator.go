package expr

import "strings"

// Evaluate walks ast against text under cfg, consulting cache for any
// precompiled regex/word-boundary patterns. Pure aside from the
// read-only cache lookup: no side effects, no allocation beyond the
// case-folding and quote-stripped copies of text (and pattern) that
// the substring and strip-quotes modes make.
func Evaluate(ast Node, text string, cfg MatchConfig, cache *PatternCache) bool {
	switch n := ast.(type) {
	case WordNode:
		return matchWord(n.Pattern, text, cfg, cache)
	case NotNode:
		return !Evaluate(n.Child, text, cfg, cache)
	case AndNode:
		return Evaluate(n.Left, text, cfg, cache) && Evaluate(n.Right, text, cfg, cache)
	case OrNode:
		return Evaluate(n.Left, text, cfg, cache) || Evaluate(n.Right, text, cfg, cache)
	default:
		return false
	}
}

func matchWord(pattern, text string, cfg MatchConfig, cache *PatternCache) bool {
	if pattern == "" {
		return false
	}

	switch {
	case cfg.UseRegex:
		re, ok := cache.regex[pattern]
		if !ok {
			return false
		}
		return re.MatchString(text)

	case cfg.WordBoundary:
		re, ok := cache.boundary[pattern]
		if !ok {
			return false
		}
		haystack := text
		if cfg.StripQuotes {
			haystack = stripQuotedRuns(text)
		}
		return re.MatchString(haystack)

	case cfg.StripQuotes:
		haystack := stripQuotedRuns(text)
		needle := stripQuotedRuns(pattern)
		if cfg.IgnoreCase {
			haystack = strings.ToLower(haystack)
			needle = strings.ToLower(needle)
		}
		return strings.Contains(haystack, needle)

	default:
		haystack := text
		needle := pattern
		if cfg.IgnoreCase {
			haystack = strings.ToLower(haystack)
			needle = strings.ToLower(needle)
		}
		return strings.Contains(haystack, needle)
	}
}
