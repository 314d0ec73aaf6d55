// Package locale canonicalises user supplied locale strings.
//
// A canonical locale is either the short form "xx" (lowercase language) or the
// long form "xx_XX" (lowercase language, uppercase region). Anything that does
// not reduce to that shape normalises to the empty string, which callers must
// treat as "no usable locale".
package locale

import (
	"regexp"
	"strings"
)

var (
	// pairPattern finds a language/region pair joined by '-' or '_'.
	pairPattern = regexp.MustCompile(`(?i)([a-z]{2})[-_]([a-z]{2})`)

	// longPattern is the only accepted long form.
	longPattern = regexp.MustCompile(`^[a-z]{2}_[A-Z]{2}$`)
)

// Normalize canonicalises raw into the short ("en") or long ("en_US") form.
//
//	de    -> de (de_DE)
//	en    -> en (en_EN)
//	EN-us -> en (en_US)
//
// Non-string values and strings that do not reduce to a locale return "".
func Normalize(raw any, short bool) string {
	s, ok := raw.(string)
	if !ok {
		return ""
	}

	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return ""
	}

	if len(s) == 2 {
		if short {
			return strings.ToLower(s)
		}

		s = s + "_" + s
	}

	// Only the first pair is rewritten.
	if loc := pairPattern.FindStringSubmatchIndex(s); loc != nil {
		lang := strings.ToLower(s[loc[2]:loc[3]])
		region := strings.ToUpper(s[loc[4]:loc[5]])
		s = s[:loc[0]] + lang + "_" + region + s[loc[1]:]
	}

	if !longPattern.MatchString(s) {
		return ""
	}

	if short {
		return s[:2]
	}

	return s
}

// Short is Normalize(s, true).
func Short(s string) string {
	return Normalize(s, true)
}

// Long is Normalize(s, false).
func Long(s string) string {
	return Normalize(s, false)
}
