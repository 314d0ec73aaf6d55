package parser

import "regexp"

// quoteClass lists the accepted literal delimiters: single, double and backtick quotes.
const quoteClass = "['\"`]"

var (
	// markerPattern is the cheap pre-filter: a line without it holds no call.
	markerPattern = regexp.MustCompile(`_[_f]\(`)

	// literalPattern matches both call shapes:
	//
	//	__("text")
	//	_f("text %s", arg, ...)
	//
	// The body is captured lazily and may span newlines. The closing quote is not
	// required to match the opening one, and escaped quotes are not understood.
	literalPattern = regexp.MustCompile(
		`_[_f]\(\s*` + quoteClass + `((?s:.*?))` + quoteClass + `\s*(?:,\s*.*?)?\)`,
	)

	// openTickPattern finds a call whose literal starts with a backtick.
	openTickPattern = regexp.MustCompile("_[_f]\\(\\s*`")

	// closeTickPattern finds the end of a backtick literal and its call.
	closeTickPattern = regexp.MustCompile("`\\s*(?:,\\s*.*?)?\\)")
)

// HasMarker reports whether s contains a call marker.
func HasMarker(s string) bool {
	return markerPattern.MatchString(s)
}

// MatchLiterals returns every literal found in s, in order of appearance.
func MatchLiterals(s string) []string {
	matches := literalPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}

	return out
}

// opensTick reports whether s leaves a backtick literal open: its last
// backtick opener is not followed by a closer.
func opensTick(s string) bool {
	locs := openTickPattern.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return false
	}

	last := locs[len(locs)-1]

	return !closeTickPattern.MatchString(s[last[1]:])
}
