// Package interpolation shields placeholders from machine translation.
//
// Protect swaps every placeholder in a catalog literal for an opaque token
// before the text is sent to a provider; Restore puts the originals back into
// the provider's answer.
package interpolation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Mapping stores the original placeholder and its safe replacement.
type Mapping struct {
	Original    string
	Placeholder string
	Index       int
}

// varMatch is a placeholder position in the source text.
type varMatch struct {
	start, end int
	value      string
}

// patterns detect placeholders that must survive translation.
var patterns = []*regexp.Regexp{
	// %s, %d, %f, %2$s
	regexp.MustCompile(`%(?:\d+\$)?[sdf]`),
	// escaped percent
	regexp.MustCompile(`%%`),
	// ${name}
	regexp.MustCompile(`\$\{[a-zA-Z_][a-zA-Z0-9_.]*\}`),
	// <%= name %>
	regexp.MustCompile(`<%[-=]?\s*[a-zA-Z_][a-zA-Z0-9_.]*\s*%>`),
}

// Protect replaces placeholders with {{var_N}} tokens, numbered from 1 in order
// of appearance. It returns the safe text and the mappings needed by Restore.
func Protect(text string) (string, []Mapping) {
	var all []varMatch

	for _, p := range patterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			all = append(all, varMatch{start: loc[0], end: loc[1], value: text[loc[0]:loc[1]]})
		}
	}

	if len(all) == 0 {
		return text, nil
	}

	// By position, longest first when two matches start together.
	sort.Slice(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}

		return all[i].end-all[i].start > all[j].end-all[j].start
	})

	filtered := all[:0]
	lastEnd := -1

	for _, m := range all {
		if m.start >= lastEnd {
			filtered = append(filtered, m)
			lastEnd = m.end
		}
	}

	var (
		b        strings.Builder
		mappings = make([]Mapping, 0, len(filtered))
		prev     int
	)

	for i, m := range filtered {
		placeholder := fmt.Sprintf("{{var_%d}}", i+1)

		b.WriteString(text[prev:m.start])
		b.WriteString(placeholder)
		prev = m.end

		mappings = append(mappings, Mapping{Original: m.value, Placeholder: placeholder, Index: i + 1})
	}

	b.WriteString(text[prev:])

	return b.String(), mappings
}

// Restore puts the original placeholders back. Tokens the provider dropped
// are simply not restored.
func Restore(translated string, mappings []Mapping) string {
	result := translated
	for _, m := range mappings {
		result = strings.Replace(result, m.Placeholder, m.Original, 1)
	}

	return result
}

// Intact reports whether every token of mappings is present in translated.
func Intact(translated string, mappings []Mapping) bool {
	for _, m := range mappings {
		if !strings.Contains(translated, m.Placeholder) {
			return false
		}
	}

	return true
}
