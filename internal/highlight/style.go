package highlight

import chroma "github.com/alecthomas/chroma/v2"

// Classes maps token types to the CSS classes used to style them.
type Classes map[chroma.TokenType]string

// DefaultClasses styles tokens with Tailwind utility classes.
var DefaultClasses = Classes{
	chroma.Keyword:             "text-purple-400 font-semibold",
	chroma.KeywordConstant:     "text-blue-400",
	chroma.LiteralStringSymbol: "text-green-400",
	chroma.LiteralString:       "text-yellow-300",
	chroma.Comment:             "text-gray-400 italic",
	chroma.GenericPrompt:       "text-green-400 font-semibold",
	chroma.NameBuiltinPseudo:   "text-purple-400 font-semibold",
	chroma.NameBuiltin:         "text-blue-400 font-semibold",
}

// Lookup returns the class for a token type.
// If the type itself has no class,
// its sub-category and then its category are tried.
func (cs Classes) Lookup(t chroma.TokenType) (string, bool) {
	for _, tt := range [...]chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if c, ok := cs[tt]; ok {
			return c, true
		}
	}
	return "", false
}
