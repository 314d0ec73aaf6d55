package interpolation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtectRestore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        string
		protected string
		count     int
	}{
		{name: "no placeholders", in: "Hello world", protected: "Hello world", count: 0},
		{name: "sequential", in: "You are %s years old", protected: "You are {{var_1}} years old", count: 1},
		{
			name:      "positional",
			in:        "Mr. %2$s %1$s is %3$d.",
			protected: "Mr. {{var_1}} {{var_2}} is {{var_3}}.",
			count:     3,
		},
		{name: "percent literal", in: "100%% sure, %d", protected: "100{{var_1}} sure, {{var_2}}", count: 2},
		{name: "template variable", in: "Hi ${user.name}", protected: "Hi {{var_1}}", count: 1},
		{name: "ejs tag", in: "Port <%= port %> open", protected: "Port {{var_1}} open", count: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			protected, mappings := Protect(tt.in)
			assert.Equal(t, tt.protected, protected)
			assert.Len(t, mappings, tt.count)
			assert.True(t, Intact(protected, mappings))
			assert.Equal(t, tt.in, Restore(protected, mappings))
		})
	}
}

func TestRestoreReorderedTokens(t *testing.T) {
	t.Parallel()

	_, mappings := Protect("%1$s then %2$s")

	assert.Equal(t, "%2$s avant %1$s", Restore("{{var_2}} avant {{var_1}}", mappings))
}

func TestIntactDetectsDroppedToken(t *testing.T) {
	t.Parallel()

	_, mappings := Protect("Hello %s")

	assert.False(t, Intact("Bonjour", mappings))
}
