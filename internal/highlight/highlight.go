package highlight

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"braces.dev/errtrace"
	chroma "github.com/alecthomas/chroma/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrUnknownLanguage is returned for language tags
// that no lexer is registered for.
var ErrUnknownLanguage = errors.New("unknown language")

// Highlighter turns tagged source text into HTML.
//
// The zero value is ready to use.
type Highlighter struct {
	// Languages resolves language tags to lexers.
	// Defaults to NewRegistry().
	Languages *Registry

	// Classes used to style tokens.
	// Defaults to DefaultClasses.
	Classes Classes

	once         sync.Once
	defaultLangs *Registry
}

func (h *Highlighter) languages() *Registry {
	if h.Languages != nil {
		return h.Languages
	}
	h.once.Do(func() {
		h.defaultLangs = NewRegistry()
	})
	return h.defaultLangs
}

func (h *Highlighter) classes() Classes {
	if h.Classes != nil {
		return h.Classes
	}
	return DefaultClasses
}

// Tokens lexes text with the lexer registered for lang.
//
// It returns an error matching [ErrUnknownLanguage]
// if lang is not recognized.
func (h *Highlighter) Tokens(lang, text string) ([]chroma.Token, error) {
	lexer, ok := h.languages().Lookup(lang)
	if !ok {
		return nil, errtrace.Wrap(fmt.Errorf("%w: %q", ErrUnknownLanguage, lang))
	}
	return errtrace.Wrap2(lexer.Lex([]byte(text)))
}

// Nodes renders tokens as a list of sibling HTML nodes:
// text nodes for unstyled tokens
// and <span class="..."> elements for styled ones.
//
// Nodes returns nil if none of the tokens has a class,
// in which case the text needs no changes.
func (h *Highlighter) Nodes(tokens []chroma.Token) []*html.Node {
	classes := h.classes()

	var (
		nodes  []*html.Node
		plain  strings.Builder // pending unstyled text
		styled bool
	)
	flush := func() {
		if plain.Len() > 0 {
			nodes = append(nodes, &html.Node{Type: html.TextNode, Data: plain.String()})
			plain.Reset()
		}
	}
	for _, tok := range tokens {
		class, ok := classes.Lookup(tok.Type)
		if !ok || tok.Value == "" {
			plain.WriteString(tok.Value)
			continue
		}

		flush()
		styled = true
		span := &html.Node{
			Type:     html.ElementNode,
			Data:     "span",
			DataAtom: atom.Span,
			Attr:     []html.Attribute{{Key: "class", Val: class}},
		}
		span.AppendChild(&html.Node{Type: html.TextNode, Data: tok.Value})
		nodes = append(nodes, span)
	}
	flush()

	if !styled {
		return nil
	}
	return nodes
}

// HTML highlights text and returns it as an HTML fragment.
//
// Text with an unrecognized language tag, or with nothing to style,
// is returned escaped but otherwise unchanged.
func (h *Highlighter) HTML(lang, text string) (string, error) {
	tokens, err := h.Tokens(lang, text)
	if err != nil && !errors.Is(err, ErrUnknownLanguage) {
		return "", err
	}

	nodes := h.Nodes(tokens)
	if len(nodes) == 0 {
		return html.EscapeString(text), nil
	}

	var sb strings.Builder
	for _, n := range nodes {
		if err := html.Render(&sb, n); err != nil {
			return "", errtrace.Wrap(err)
		}
	}
	return sb.String(), nil
}
