package translator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kossidts/lingueasy/internal/catalog"
)

func TestTranslatorsLookup(t *testing.T) {
	t.Parallel()

	reg := catalog.Registry{
		"de": {
			"Hello":                      "Hallo",
			"Untranslated":               "",
			"Mr. %2$s %1$s is %3$s.":     "Herr %2$s %1$s ist %3$s.",
			"The server listens on %2$s": "Der Server lauscht auf %2$s",
		},
	}

	tr := New("de", reg)

	assert.Equal(t, "Hallo", tr.Tr("Hello"))
	assert.Equal(t, "Untranslated", tr.Tr("Untranslated"))
	assert.Equal(t, "Missing", tr.Tr("Missing"))
	assert.Equal(t, "Herr Smith John ist 42.", tr.Tf("Mr. %2$s %1$s is %3$s.", "John", "Smith", 42))
	assert.Equal(t, "Der Server lauscht auf 8823", tr.Tf("The server listens on %2$s", 100, 8823))
}

func TestTranslatorsUnknownLocale(t *testing.T) {
	t.Parallel()

	tr := New("xx", catalog.Registry{})

	assert.Equal(t, "Hello", tr.Tr("Hello"))
	assert.Equal(t, "You are 18", tr.Tf("You are %s", 18))
}

func TestCacheFirstCallWins(t *testing.T) {
	t.Parallel()

	c := NewCache()

	first := c.Get("de", catalog.Registry{"de": {"Hello": "Hallo"}})
	second := c.Get("de", catalog.Registry{"de": {"Hello": "Servus"}})

	assert.Same(t, first, second)
	assert.Equal(t, "Hallo", second.Tr("Hello"))

	c.Invalidate()

	third := c.Get("de", catalog.Registry{"de": {"Hello": "Servus"}})
	assert.NotSame(t, first, third)
	assert.Equal(t, "Servus", third.Tr("Hello"))
}

func TestCacheConcurrentFirstRequests(t *testing.T) {
	t.Parallel()

	c := NewCache()
	reg := catalog.Registry{"fr": {"Hello": "Bonjour"}}

	const n = 64

	got := make([]*Translators, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)

		go func() {
			defer wg.Done()
			got[i] = c.Get("fr", reg)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, c.Len())
	for _, tr := range got {
		assert.Same(t, got[0], tr)
	}
}
