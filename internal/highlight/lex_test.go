package highlight

import (
	"regexp"
	"strings"
	"testing"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElixirLexer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
		want []chroma.Token
	}{
		{
			desc: "function",
			give: `def hello, do: "hi" end`,
			want: []chroma.Token{
				{Type: chroma.Keyword, Value: "def"},
				{Type: chroma.Text, Value: " hello, "},
				{Type: chroma.Keyword, Value: "do"},
				{Type: chroma.Text, Value: ": "},
				{Type: chroma.LiteralString, Value: `"hi"`},
				{Type: chroma.Text, Value: " "},
				{Type: chroma.Keyword, Value: "end"},
			},
		},
		{
			desc: "defp is not def",
			give: "defp foo",
			want: []chroma.Token{
				{Type: chroma.Keyword, Value: "defp"},
				{Type: chroma.Text, Value: " foo"},
			},
		},
		{
			desc: "constants",
			give: "x = nil || true",
			want: []chroma.Token{
				{Type: chroma.Text, Value: "x = "},
				{Type: chroma.KeywordConstant, Value: "nil"},
				{Type: chroma.Text, Value: " || "},
				{Type: chroma.KeywordConstant, Value: "true"},
			},
		},
		{
			desc: "atom",
			give: "{:ok, value}",
			want: []chroma.Token{
				{Type: chroma.Text, Value: "{"},
				{Type: chroma.LiteralStringSymbol, Value: ":ok"},
				{Type: chroma.Text, Value: ", value}"},
			},
		},
		{
			desc: "atom named like a keyword",
			give: ":do",
			want: []chroma.Token{
				{Type: chroma.LiteralStringSymbol, Value: ":do"},
			},
		},
		{
			desc: "keywords inside a string",
			give: `"do it, end"`,
			want: []chroma.Token{
				{Type: chroma.LiteralString, Value: `"do it, end"`},
			},
		},
		{
			desc: "string inside a comment",
			give: `x # say "hi"`,
			want: []chroma.Token{
				{Type: chroma.Text, Value: "x "},
				{Type: chroma.Comment, Value: `# say "hi"`},
			},
		},
		{
			desc: "string after a comment with a stray quote",
			give: "# 1\"\nIO.puts \"ok\" :atom",
			want: []chroma.Token{
				{Type: chroma.Comment, Value: `# 1"`},
				{Type: chroma.Text, Value: "\nIO.puts "},
				{Type: chroma.LiteralString, Value: `"ok"`},
				{Type: chroma.Text, Value: " "},
				{Type: chroma.LiteralStringSymbol, Value: ":atom"},
			},
		},
		{
			desc: "keyword right after a claimed string",
			give: `"do"end`,
			want: []chroma.Token{
				{Type: chroma.LiteralString, Value: `"do"`},
				{Type: chroma.Keyword, Value: "end"},
			},
		},
		{
			desc: "comment ends at newline",
			give: "# setup\nend",
			want: []chroma.Token{
				{Type: chroma.Comment, Value: "# setup"},
				{Type: chroma.Text, Value: "\n"},
				{Type: chroma.Keyword, Value: "end"},
			},
		},
		{
			desc: "module",
			give: "defmodule Greeter do\n  use GenServer\nend\n",
			want: []chroma.Token{
				{Type: chroma.Keyword, Value: "defmodule"},
				{Type: chroma.Text, Value: " Greeter "},
				{Type: chroma.Keyword, Value: "do"},
				{Type: chroma.Text, Value: "\n  "},
				{Type: chroma.Keyword, Value: "use"},
				{Type: chroma.Text, Value: " GenServer\n"},
				{Type: chroma.Keyword, Value: "end"},
				{Type: chroma.Text, Value: "\n"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got, err := ElixirLexer.Lex([]byte(tt.give))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBashLexer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
		want []chroma.Token
	}{
		{
			desc: "prompt and command",
			give: "$ mix test",
			want: []chroma.Token{
				{Type: chroma.GenericPrompt, Value: "$ "},
				{Type: chroma.NameBuiltinPseudo, Value: "mix"},
				{Type: chroma.Text, Value: " test"},
			},
		},
		{
			desc: "multiple lines",
			give: "$ git clone repo\n# cd repo\nnpm install",
			want: []chroma.Token{
				{Type: chroma.GenericPrompt, Value: "$ "},
				{Type: chroma.NameBuiltin, Value: "git"},
				{Type: chroma.Text, Value: " clone repo\n"},
				{Type: chroma.GenericPrompt, Value: "# "},
				{Type: chroma.NameBuiltin, Value: "cd"},
				{Type: chroma.Text, Value: " repo\n"},
				{Type: chroma.NameBuiltin, Value: "npm"},
				{Type: chroma.Text, Value: " install"},
			},
		},
		{
			desc: "prompt only at line start",
			give: "echo $ x",
			want: []chroma.Token{
				{Type: chroma.Text, Value: "echo $ x"},
			},
		},
		{
			desc: "whole words only",
			give: "mixer gitk",
			want: []chroma.Token{
				{Type: chroma.Text, Value: "mixer gitk"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got, err := BashLexer.Lex([]byte(tt.give))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleLexer_unmatched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc  string
		lexer Lexer
		give  string
	}{
		{desc: "elixir", lexer: ElixirLexer, give: "x = 1 + 2"},
		{desc: "bash", lexer: BashLexer, give: "ls -la /tmp"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got, err := tt.lexer.Lex([]byte(tt.give))
			require.NoError(t, err)
			assert.Equal(t, []chroma.Token{{Type: chroma.Text, Value: tt.give}}, got)
		})
	}

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		got, err := ElixirLexer.Lex(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func regexpMust(t testing.TB, pat string) *regexp.Regexp {
	re, err := regexp.Compile(pat)
	require.NoError(t, err)
	return re
}

func TestRuleLexer_emptyMatches(t *testing.T) {
	t.Parallel()

	lexer := RuleLexer{
		Rules: []Rule{
			{Pattern: regexpMust(t, `x*`), Type: chroma.Keyword},
		},
	}
	got, err := lexer.Lex([]byte("axxb"))
	require.NoError(t, err)
	assert.Equal(t, []chroma.Token{
		{Type: chroma.Text, Value: "a"},
		{Type: chroma.Keyword, Value: "xx"},
		{Type: chroma.Text, Value: "b"},
	}, got)
}

func TestRuleLexer_resumeKeepsContext(t *testing.T) {
	t.Parallel()

	lexer := RuleLexer{
		Rules: []Rule{
			{Pattern: regexpMust(t, `\[[^\]]*\]x`), Type: chroma.Comment},
			{Pattern: regexpMust(t, `\bb\w*`), Type: chroma.Keyword},
			{Pattern: regexpMust(t, `(?m)^c`), Type: chroma.GenericPrompt},
		},
	}

	// The first "b" and "c" are hidden inside brackets.
	// Right after each "x", neither a word boundary nor a line start holds.
	got, err := lexer.Lex([]byte("[ b\nc]xc bc\nc [b]xb"))
	require.NoError(t, err)
	assert.Equal(t, []chroma.Token{
		{Type: chroma.Comment, Value: "[ b\nc]x"},
		{Type: chroma.Text, Value: "c "},
		{Type: chroma.Keyword, Value: "bc"},
		{Type: chroma.Text, Value: "\n"},
		{Type: chroma.GenericPrompt, Value: "c"},
		{Type: chroma.Text, Value: " "},
		{Type: chroma.Comment, Value: "[b]x"},
		{Type: chroma.Text, Value: "b"},
	}, got)
}

func TestLexers_roundTrip(t *testing.T) {
	t.Parallel()

	chromaElixir, ok := NewChromaLexer("elixir")
	require.True(t, ok)
	chromaBash, ok := NewChromaLexer("bash")
	require.True(t, ok)

	lexers := map[string]Lexer{
		"rules/elixir":  ElixirLexer,
		"rules/bash":    BashLexer,
		"chroma/elixir": chromaElixir,
		"chroma/bash":   chromaBash,
	}
	inputs := []string{
		`def hello, do: "hi" end`,
		"$ mix phx.new demo\n$ cd demo",
		"defmodule A do\r\n  # note\r\nend\r\n",
		`IO.puts "#{name} :atom"`,
		"",
	}

	for name, lexer := range lexers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			for _, src := range inputs {
				tokens, err := lexer.Lex([]byte(src))
				require.NoError(t, err, "lex %q", src)

				var sb strings.Builder
				for _, tok := range tokens {
					sb.WriteString(tok.Value)
				}
				assert.Equal(t, src, sb.String(), "lex %q", src)
			}
		})
	}
}

func TestChromaLexer(t *testing.T) {
	t.Parallel()

	lexer, ok := NewChromaLexer("elixir")
	require.True(t, ok)

	tokens, err := lexer.Lex([]byte(`def hello, do: "hi" end`))
	require.NoError(t, err)

	var found bool
	for _, tok := range tokens {
		if tok.Type.SubCategory() == chroma.LiteralString && strings.Contains(tok.Value, "hi") {
			found = true
		}
	}
	assert.True(t, found, "expected a string token in %v", tokens)

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		_, ok := NewChromaLexer("no-such-language")
		assert.False(t, ok)
	})
}
