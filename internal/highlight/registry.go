package highlight

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Registry maps language tags to lexers.
//
// Tags are matched case-insensitively
// and with surrounding whitespace removed.
type Registry struct {
	// Fallback, if set, is consulted for tags
	// that were not registered explicitly.
	// Lexers it returns are cached.
	Fallback func(lang string) (Lexer, bool)

	mu     sync.RWMutex
	lexers map[string]Lexer
}

// NewRegistry builds a registry holding the built-in rule lexers.
func NewRegistry() *Registry {
	var r Registry
	r.Register(ElixirLexer, "elixir", "ex", "exs")
	r.Register(BashLexer, "bash", "sh", "shell")
	return &r
}

// NewChromaRegistry builds a registry that resolves every tag
// through Chroma's lexer collection.
func NewChromaRegistry() *Registry {
	return &Registry{
		Fallback: func(lang string) (Lexer, bool) {
			l, ok := NewChromaLexer(lang)
			if !ok {
				return nil, false
			}
			return l, true
		},
	}
}

func foldTag(lang string) string {
	// Casers are stateful and must not be shared.
	return cases.Fold().String(strings.TrimSpace(lang))
}

// Register associates a lexer with one or more language tags,
// replacing any previous association.
func (r *Registry) Register(lexer Lexer, langs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lexers == nil {
		r.lexers = make(map[string]Lexer)
	}
	for _, lang := range langs {
		r.lexers[foldTag(lang)] = lexer
	}
}

// Lookup returns the lexer for the given language tag.
// It reports false if the tag is not recognized.
func (r *Registry) Lookup(lang string) (Lexer, bool) {
	lang = foldTag(lang)
	if lang == "" {
		return nil, false
	}

	r.mu.RLock()
	l, ok := r.lexers[lang]
	r.mu.RUnlock()
	if ok || r.Fallback == nil {
		return l, ok
	}

	l, ok = r.Fallback(lang)
	if ok {
		r.Register(l, lang)
	}
	return l, ok
}

// Names lists the registered language tags in sorted order.
// Tags only reachable through Fallback are not included.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.lexers))
	for name := range r.lexers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
