// Package translator resolves a locale to its lookup functions.
package translator

import (
	"sync"

	"github.com/kossidts/lingueasy/internal/catalog"
)

// Translators is the pair of lookup functions bound to one locale and to the
// catalog that was registered for it when the pair was built.
type Translators struct {
	// Locale is the short locale the pair was built for.
	Locale string
	// Tr returns the translation of text, or text when there is none.
	Tr func(text string) string
	// Tf translates text and then applies Format with args.
	Tf func(text string, args ...any) string
}

// New builds the Translators for locale from reg.
func New(locale string, reg catalog.Registry) *Translators {
	c := reg[locale]

	tr := func(text string) string {
		if v := c[text]; v != "" {
			return v
		}

		return text
	}

	return &Translators{
		Locale: locale,
		Tr:     tr,
		Tf: func(text string, args ...any) string {
			return Format(tr(text), args...)
		},
	}
}

// Cache memoizes Translators per locale. The first Get for a locale builds
// and stores the pair; later calls return it even if the registry changed,
// until Invalidate is called. A Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Translators
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Translators)}
}

// Get returns the Translators for locale, building them from reg on first use.
// Concurrent first calls for the same locale build a single entry.
func (c *Cache) Get(locale string, reg catalog.Registry) *Translators {
	c.mu.RLock()
	t, ok := c.entries[locale]
	c.mu.RUnlock()

	if ok {
		return t
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.entries[locale]; ok {
		return t
	}

	t = New(locale, reg)
	c.entries[locale] = t

	return t
}

// Invalidate drops every cached pair, for example after catalogs are reloaded.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]*Translators)
	c.mu.Unlock()
}

// Len reports the number of cached locales.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
