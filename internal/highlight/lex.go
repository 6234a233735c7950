package highlight

import (
	"regexp"
	"strings"
	"sync"

	"braces.dev/errtrace"
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Lexer analyzes source code and generates a stream of tokens.
//
// The values of the returned tokens, concatenated,
// must be identical to src.
type Lexer interface {
	Lex(src []byte) ([]chroma.Token, error)
}

// Rule classifies all matches of a pattern as a single token type.
type Rule struct {
	Pattern *regexp.Regexp
	Type    chroma.TokenType
}

// RuleLexer is a [Lexer] built from an ordered list of [Rule]s.
//
// Matches are claimed by earliest starting offset,
// with ties going to the rule listed first.
// After a match is claimed, every rule resumes searching
// from the end of the claimed region,
// so a match hidden by an earlier overlap is still found.
// Text not claimed by any rule is reported as [chroma.Text].
type RuleLexer struct {
	Rules []Rule

	once   sync.Once
	resume []*regexp.Regexp // per rule; see nextMatch
}

var _ Lexer = (*RuleLexer)(nil)

func (l *RuleLexer) init() {
	l.once.Do(func() {
		l.resume = make([]*regexp.Regexp, len(l.Rules))
		for i, r := range l.Rules {
			// Consumes the byte before the search offset
			// so that \b and ^ see their real context,
			// then finds the leftmost match after it.
			l.resume[i] = regexp.MustCompile(`^(?s:.)(?s:.*?)(` + r.Pattern.String() + `)`)
		}
	})
}

// nextMatch finds the leftmost non-empty match of rule i
// starting at or after from.
// It returns nil if there is none.
func (l *RuleLexer) nextMatch(src []byte, i, from int) []int {
	for from <= len(src) {
		var loc []int
		if from == 0 {
			loc = l.Rules[i].Pattern.FindIndex(src)
		} else if m := l.resume[i].FindSubmatchIndex(src[from-1:]); m != nil {
			loc = []int{from - 1 + m[2], from - 1 + m[3]}
		}
		if loc == nil {
			return nil
		}
		if loc[0] < loc[1] {
			return loc
		}
		from = loc[0] + 1
	}
	return nil
}

// Lex splits src into tokens.
func (l *RuleLexer) Lex(src []byte) ([]chroma.Token, error) {
	l.init()

	next := make([][]int, len(l.Rules))
	for i := range l.Rules {
		next[i] = l.nextMatch(src, i, 0)
	}

	var (
		tokens []chroma.Token
		pos    int // end of the last claimed region
	)
	for {
		best := -1
		for i, loc := range next {
			if loc != nil && loc[0] < pos {
				loc = l.nextMatch(src, i, pos)
				next[i] = loc
			}
			if loc != nil && (best < 0 || loc[0] < next[best][0]) {
				best = i
			}
		}
		if best < 0 {
			break
		}

		loc := next[best]
		if pos < loc[0] {
			tokens = append(tokens, chroma.Token{
				Type:  chroma.Text,
				Value: string(src[pos:loc[0]]),
			})
		}
		tokens = append(tokens, chroma.Token{
			Type:  l.Rules[best].Type,
			Value: string(src[loc[0]:loc[1]]),
		})
		pos = loc[1]
	}
	if pos < len(src) {
		tokens = append(tokens, chroma.Token{
			Type:  chroma.Text,
			Value: string(src[pos:]),
		})
	}
	return tokens, nil
}

// ChromaLexer builds a [Lexer] from a Chroma lexer.
type ChromaLexer struct{ l chroma.Lexer }

var _ Lexer = (*ChromaLexer)(nil)

// NewChromaLexer looks up a Chroma lexer by name or alias.
// It reports false if Chroma does not know the language.
func NewChromaLexer(name string) (*ChromaLexer, bool) {
	l := lexers.Get(name)
	if l == nil {
		return nil, false
	}
	return &ChromaLexer{l: chroma.Coalesce(l)}, true
}

// Lex lexically analyzes the given source code using Chroma.
func (cl *ChromaLexer) Lex(src []byte) ([]chroma.Token, error) {
	text := string(src)
	tokens, err := chroma.Tokenise(cl.l, &chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	// Some Chroma lexers append a newline to the input.
	// Take it back out so that the token stream matches src.
	if n := len(tokens); n > 0 && !strings.HasSuffix(text, "\n") {
		last := &tokens[n-1]
		last.Value = strings.TrimSuffix(last.Value, "\n")
		if last.Value == "" {
			tokens = tokens[:n-1]
		}
	}
	return tokens, nil
}
