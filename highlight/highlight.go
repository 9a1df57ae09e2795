// Package highlight wraps search-expression matches in visual
// markers for human-readable output, grounded on
// original_source/utils/highlighter.py.
package highlight

import "regexp"

const (
	DefaultStartMarker = "<<<"
	DefaultEndMarker   = ">>>"
)

// Highlighter wraps matched substrings/regex matches in markers.
type Highlighter struct {
	StartMarker string
	EndMarker   string
}

// New builds a Highlighter, defaulting empty markers to "<<<"/">>>".
func New(start, end string) *Highlighter {
	if start == "" {
		start = DefaultStartMarker
	}
	if end == "" {
		end = DefaultEndMarker
	}
	return &Highlighter{StartMarker: start, EndMarker: end}
}

// Highlight wraps every occurrence of each pattern in text with the
// configured markers, applying patterns in order. Empty patterns are
// skipped; a pattern that fails to compile as regex leaves the text
// unchanged for that pattern rather than aborting the whole call.
func (h *Highlighter) Highlight(text string, patterns []string, ignoreCase, useRegex bool) string {
	if len(patterns) == 0 || text == "" {
		return text
	}
	result := text
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if useRegex {
			result = h.highlightRegex(result, pattern, ignoreCase)
		} else {
			result = h.highlightSubstring(result, pattern, ignoreCase)
		}
	}
	return result
}

func (h *Highlighter) highlightSubstring(text, pattern string, ignoreCase bool) string {
	expr := regexp.QuoteMeta(pattern)
	if ignoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return text
	}
	return re.ReplaceAllString(text, h.StartMarker+"${0}"+h.EndMarker)
}

func (h *Highlighter) highlightRegex(text, pattern string, ignoreCase bool) string {
	expr := pattern
	if ignoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return text
	}
	return re.ReplaceAllString(text, h.StartMarker+"${0}"+h.EndMarker)
}
