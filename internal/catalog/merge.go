package catalog

import "strings"

// Merge returns a new catalog holding every entry of existing plus every
// template key that existing lacks, with an empty value. Values already in
// existing are never changed, and keys missing from the template are kept.
// A nil existing catalog is treated as empty.
func Merge(template, existing Catalog) Catalog {
	out := existing.Clone()

	for k := range template {
		if _, ok := out[k]; !ok {
			out[k] = ""
		}
	}

	return out
}

// IsBlank reports whether a translation is empty or whitespace only.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// Candidates returns the keys of c that still need a translation, in FoldedOrder.
func Candidates(c Catalog) []string {
	var out []string

	for _, k := range c.Keys(FoldedOrder) {
		if IsBlank(c[k]) {
			out = append(out, k)
		}
	}

	return out
}
