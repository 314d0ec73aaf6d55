package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	t.Parallel()

	assert.Len(t, Hash("a"), 64)
	assert.Equal(t, Hash("de", "Hello"), Hash("de", "Hello"))
	assert.NotEqual(t, Hash("de", "Hello"), Hash("deH", "ello"))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "héllo...", Truncate("héllo wörld", 5))
	assert.Equal(t, `a\nb`, Truncate("a\nb", 10))
}
