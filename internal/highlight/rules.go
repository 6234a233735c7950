package highlight

import (
	"regexp"

	chroma "github.com/alecthomas/chroma/v2"
)

// ElixirLexer recognizes a small subset of Elixir:
// keywords, boolean and nil literals, atoms, strings, and comments.
var ElixirLexer = &RuleLexer{
	Rules: []Rule{
		{
			Pattern: regexp.MustCompile(`\b(?:defmodule|def|defp|end|do|use|import|alias|require|if|unless|case|cond|with|fn)\b`),
			Type:    chroma.Keyword,
		},
		{
			Pattern: regexp.MustCompile(`\b(?:true|false|nil)\b`),
			Type:    chroma.KeywordConstant,
		},
		{
			Pattern: regexp.MustCompile(`:[a-zA-Z_][a-zA-Z0-9_]*`),
			Type:    chroma.LiteralStringSymbol,
		},
		{
			Pattern: regexp.MustCompile(`"[^"]*"`),
			Type:    chroma.LiteralString,
		},
		{
			Pattern: regexp.MustCompile(`#.*`),
			Type:    chroma.Comment,
		},
	},
}

// BashLexer recognizes shell prompts at the start of a line
// and a handful of commands common in tutorials.
var BashLexer = &RuleLexer{
	Rules: []Rule{
		{
			Pattern: regexp.MustCompile(`(?m)^(?:\$ |# )`),
			Type:    chroma.GenericPrompt,
		},
		{
			Pattern: regexp.MustCompile(`\bmix\b`),
			Type:    chroma.NameBuiltinPseudo,
		},
		{
			Pattern: regexp.MustCompile(`\b(?:git|cd|npm)\b`),
			Type:    chroma.NameBuiltin,
		},
	},
}
