package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	tests := []struct {
		give string
		want Lexer // nil if not found
	}{
		{give: "elixir", want: ElixirLexer},
		{give: "Elixir", want: ElixirLexer},
		{give: " exs ", want: ElixirLexer},
		{give: "BASH", want: BashLexer},
		{give: "shell", want: BashLexer},
		{give: "python"},
		{give: ""},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			got, ok := reg.Lookup(tt.give)
			if tt.want == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestRegistry_Names(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"bash", "elixir", "ex", "exs", "sh", "shell"},
		NewRegistry().Names())
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	var reg Registry
	reg.Register(BashLexer, "Zsh")

	got, ok := reg.Lookup("zsh")
	require.True(t, ok)
	assert.Same(t, BashLexer, got)
}

func TestChromaRegistry(t *testing.T) {
	t.Parallel()

	reg := NewChromaRegistry()
	assert.Empty(t, reg.Names())

	first, ok := reg.Lookup("Python")
	require.True(t, ok)
	assert.IsType(t, (*ChromaLexer)(nil), first)
	assert.Equal(t, []string{"python"}, reg.Names(), "lexer should be cached")

	second, ok := reg.Lookup("python")
	require.True(t, ok)
	assert.Same(t, first, second)

	_, ok = reg.Lookup("no-such-language")
	assert.False(t, ok)
}
