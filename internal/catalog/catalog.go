package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"golang.org/x/text/cases"

	"github.com/kossidts/lingueasy/internal/parser"
)

// Catalog maps a literal to its translation. An empty value means untranslated.
type Catalog map[string]string

// Order selects how catalog keys are sorted when listed or encoded.
type Order int

const (
	// ByteOrder sorts keys by plain string comparison. Used for templates.
	ByteOrder Order = iota
	// FoldedOrder sorts keys case-insensitively, ties broken by ByteOrder.
	// Used for per-language catalogs.
	FoldedOrder
)

// FromRecords returns the JSON template: every distinct literal mapped to "".
func FromRecords(records []parser.Record) Catalog {
	c := make(Catalog, len(records))
	for _, r := range records {
		c[r.Literal] = ""
	}

	return c
}

// Keys returns the keys of c sorted by order.
func (c Catalog) Keys(order Order) []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}

	switch order {
	case FoldedOrder:
		fold := cases.Fold()

		folded := make(map[string]string, len(keys))
		for _, k := range keys {
			folded[k] = fold.String(k)
		}

		sort.Slice(keys, func(i, j int) bool {
			fi, fj := folded[keys[i]], folded[keys[j]]
			if fi != fj {
				return fi < fj
			}

			return keys[i] < keys[j]
		})
	default:
		sort.Strings(keys)
	}

	return keys
}

// Clone returns a shallow copy of c.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = v
	}

	return out
}

// Encode renders c as a JSON object indented by four spaces, keys sorted by
// order. HTML characters are not escaped and there is no trailing newline.
func (c Catalog) Encode(order Order) ([]byte, error) {
	if len(c) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer

	buf.WriteString("{\n")

	keys := c.Keys(order)
	for i, k := range keys {
		key, err := encodeString(k)
		if err != nil {
			return nil, fmt.Errorf("encode key %q: %w", k, err)
		}

		value, err := encodeString(c[k])
		if err != nil {
			return nil, fmt.Errorf("encode value for %q: %w", k, err)
		}

		buf.WriteString("    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)

		if i < len(keys)-1 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Decode parses a JSON object of string values.
func Decode(data []byte) (Catalog, error) {
	c := Catalog{}
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	return c, nil
}

// ReadFile loads a JSON catalog. The returned error wraps fs.ErrNotExist when
// the file is absent.
func ReadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- catalog paths are built from configuration
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// WriteFile encodes c with the given order and writes it to path.
func WriteFile(path string, c Catalog, order Order) error {
	data, err := c.Encode(order)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}

	return nil
}

func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
