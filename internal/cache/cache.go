// Package cache remembers machine translations across runs so a literal is
// sent to a provider once per target language.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kossidts/lingueasy/internal/catalog"
	"github.com/kossidts/lingueasy/internal/textutil"
)

// ErrNotFound is returned by a Store that has no entry for a hash.
var ErrNotFound = errors.New("translation not cached")

// Entry is one remembered translation.
type Entry struct {
	Hash       string `db:"hash"`
	Source     string `db:"source_lang"`
	Target     string `db:"target_lang"`
	Text       string `db:"source_text"`
	Translated string `db:"translated_text"`
}

// Key returns the hash identifying a translation of text from source to target.
func Key(source, target, text string) string {
	return textutil.Hash(source, target, text)
}

// Store persists entries.
type Store interface {
	Get(ctx context.Context, hash string) (string, error)
	Put(ctx context.Context, e Entry) error
	All(ctx context.Context) ([]Entry, error)
}

// TranslationCache layers an in-memory map over an optional Store.
type TranslationCache struct {
	store  Store
	mu     sync.RWMutex
	memory map[string]string // hash → translated text
}

// NewTranslationCache creates a cache. A nil store keeps entries in memory only.
func NewTranslationCache(store Store) *TranslationCache {
	return &TranslationCache{
		store:  store,
		memory: make(map[string]string),
	}
}

// Get retrieves a cached translation. Blank entries count as misses.
func (c *TranslationCache) Get(ctx context.Context, source, target, text string) (string, bool) {
	hash := Key(source, target, text)

	c.mu.RLock()
	v, ok := c.memory[hash]
	c.mu.RUnlock()

	if ok && !catalog.IsBlank(v) {
		return v, true
	}

	if c.store == nil {
		return "", false
	}

	translated, err := c.store.Get(ctx, hash)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Msg("Translation memory lookup failed")
		}
		return "", false
	}

	if catalog.IsBlank(translated) {
		return "", false
	}

	c.mu.Lock()
	c.memory[hash] = translated
	c.mu.Unlock()

	return translated, true
}

// Set stores a translation in memory and in the backing store.
func (c *TranslationCache) Set(ctx context.Context, source, target, text, translated string) error {
	hash := Key(source, target, text)

	c.mu.Lock()
	c.memory[hash] = translated
	c.mu.Unlock()

	if c.store == nil {
		return nil
	}

	err := c.store.Put(ctx, Entry{
		Hash:       hash,
		Source:     source,
		Target:     target,
		Text:       text,
		Translated: translated,
	})
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}

	return nil
}

// Preload loads every stored translation into memory.
func (c *TranslationCache) Preload(ctx context.Context) error {
	if c.store == nil {
		return nil
	}

	entries, err := c.store.All(ctx)
	if err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range entries {
		c.memory[e.Hash] = e.Translated
	}

	log.Info().Int("count", len(entries)).Msg("Preloaded translation memory")
	return nil
}

// Len reports how many translations are held in memory.
func (c *TranslationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.memory)
}

// MemoryStore is a Store backed by a map.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Get(_ context.Context, hash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[hash]
	if !ok {
		return "", ErrNotFound
	}

	return e.Translated, nil
}

func (s *MemoryStore) Put(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[e.Hash] = e
	return nil
}

func (s *MemoryStore) All(context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}

	return out, nil
}
