// Package codeblock decorates tutorial code blocks in an HTML document.
//
// Each block gets a copy-to-clipboard button,
// and code elements that carry a language tag are syntax highlighted.
// All work happens on an explicit *html.Node tree
// so that it can run without a browser.
package codeblock

import (
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"braces.dev/errtrace"
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/andybalholm/cascadia"
	"github.com/benbjohnson/clock"
	"go.abhg.dev/tutorialblocks/internal/highlight"
	"golang.org/x/net/html"
)

// DefaultConfirmFor is how long a copy control
// shows its confirmation before reverting to idle.
const DefaultConfirmFor = 2000 * time.Millisecond

// LanguageAttr is the attribute that holds the language tag
// of a code element by default.
const LanguageAttr = "data-language"

// MarkerAttr is set on blocks that already have a copy control.
const MarkerAttr = "data-copy-control"

var (
	_defaultBlockSelector = cascadia.MustCompile(".tutorial-code-block")
	_defaultCodeSelector  = cascadia.MustCompile("code")

	_discardLog = log.New(io.Discard, "", 0)
)

var (
	// ErrMissingCode indicates that a block
	// has no element holding its source code.
	ErrMissingCode = errors.New("code block has no code element")

	// ErrAlreadyEnhanced indicates that a block
	// already has a copy control attached.
	ErrAlreadyEnhanced = errors.New("code block already has a copy control")
)

// Highlighter turns source text into highlighted HTML nodes.
//
// Tokens must report errors matching [highlight.ErrUnknownLanguage]
// for tags it does not support; such elements are left alone.
type Highlighter interface {
	Tokens(lang, text string) ([]chroma.Token, error)
	Nodes([]chroma.Token) []*html.Node
}

var _ Highlighter = (*highlight.Highlighter)(nil)

// Enhancer adds copy controls and highlighting to code blocks.
//
// The zero value is ready to use,
// but copies will fail until Clipboard is set.
type Enhancer struct {
	// BlockSelector matches tutorial code blocks.
	// Defaults to ".tutorial-code-block".
	BlockSelector cascadia.Matcher

	// CodeSelector matches the element inside a block
	// that holds the literal code.
	// The first match in each block is used.
	// Defaults to "code".
	CodeSelector cascadia.Matcher

	// HighlightSelector matches elements to highlight.
	// Defaults to <code> elements that have LanguageAttr set.
	HighlightSelector cascadia.Matcher

	// LanguageAttr names the attribute holding the language tag.
	// Defaults to "data-language".
	LanguageAttr string

	// Highlighter used for language-tagged elements.
	// Defaults to a highlight.Highlighter with the built-in languages.
	Highlighter Highlighter

	// Clipboard that copy controls write to.
	Clipboard Clipboard

	// Clock used to schedule copy controls reverting to idle.
	// Defaults to the system clock.
	Clock clock.Clock

	// ConfirmFor is how long a copy control stays confirmed
	// (or failed) before reverting to idle.
	// Defaults to DefaultConfirmFor.
	ConfirmFor time.Duration

	// DisableCopy and DisableHighlight turn off
	// the respective passes of Initialize.
	DisableCopy      bool
	DisableHighlight bool

	// Log receives warnings about blocks that could not be enhanced.
	Log *log.Logger

	// DebugLog receives a line for every element touched.
	//
	// Use nil to disable debug logging.
	DebugLog *log.Logger

	once         sync.Once
	highlighter  Highlighter
	highlightSel cascadia.Matcher
	clock        clock.Clock
}

func (e *Enhancer) init() {
	e.once.Do(func() {
		e.highlighter = e.Highlighter
		if e.highlighter == nil {
			e.highlighter = new(highlight.Highlighter)
		}
		e.highlightSel = e.HighlightSelector
		if e.highlightSel == nil {
			e.highlightSel = codeWithAttr(e.languageAttr())
		}
		e.clock = e.Clock
		if e.clock == nil {
			e.clock = clock.New()
		}
	})
}

func (e *Enhancer) log() *log.Logger {
	if e.Log != nil {
		return e.Log
	}
	return _discardLog
}

func (e *Enhancer) debugf(format string, args ...any) {
	if e.DebugLog != nil {
		e.DebugLog.Printf(format, args...)
	}
}

func (e *Enhancer) languageAttr() string {
	if e.LanguageAttr != "" {
		return e.LanguageAttr
	}
	return LanguageAttr
}

func matcherOr(m, fallback cascadia.Matcher) cascadia.Matcher {
	if m != nil {
		return m
	}
	return fallback
}

// Report summarizes a single Initialize pass.
type Report struct {
	// Controls attached during this pass, in document order.
	Controls []*CopyControl

	// Highlighted is the number of elements that were highlighted.
	Highlighted int

	// Skipped is the number of blocks left without a control
	// because they had no code element.
	Skipped int
}

// Initialize enhances every code block in doc.
//
// It attaches a copy control to each block,
// and then separately highlights each element with a language tag.
// Blocks that were enhanced by a previous call are left alone,
// so Initialize may safely run more than once over the same tree.
func (e *Enhancer) Initialize(doc *html.Node) *Report {
	e.init()

	var r Report
	if !e.DisableCopy {
		for _, block := range cascadia.QueryAll(doc, matcherOr(e.BlockSelector, _defaultBlockSelector)) {
			c, err := e.AttachCopyControl(block)
			switch {
			case err == nil:
				r.Controls = append(r.Controls, c)
			case errors.Is(err, ErrAlreadyEnhanced):
				e.debugf("skipping block: %v", err)
			default:
				e.log().Printf("skipping block: %v", err)
				r.Skipped++
			}
		}
	}

	if !e.DisableHighlight {
		attr := e.languageAttr()
		for _, el := range cascadia.QueryAll(doc, e.highlightSel) {
			lang, ok := getAttr(el, attr)
			if !ok {
				continue
			}
			if e.ApplyHighlight(el, lang) {
				r.Highlighted++
			}
		}
	}

	return &r
}

// AttachCopyControl adds a copy control to the given block.
//
// The block must contain an element matching CodeSelector.
// It returns [ErrMissingCode] if it does not,
// and [ErrAlreadyEnhanced] if the block already has a control.
func (e *Enhancer) AttachCopyControl(block *html.Node) (*CopyControl, error) {
	e.init()

	if _, ok := getAttr(block, MarkerAttr); ok {
		return nil, errtrace.Wrap(ErrAlreadyEnhanced)
	}

	code := cascadia.Query(block, matcherOr(e.CodeSelector, _defaultCodeSelector))
	if code == nil {
		return nil, errtrace.Wrap(ErrMissingCode)
	}

	confirmFor := e.ConfirmFor
	if confirmFor <= 0 {
		confirmFor = DefaultConfirmFor
	}

	c := &CopyControl{
		block:      block,
		button:     newButton(),
		text:       textContent(code),
		clipboard:  e.Clipboard,
		clock:      e.clock,
		confirmFor: confirmFor,
		log:        e.log(),
	}
	c.render()

	setAttr(block, MarkerAttr, "")
	addStyle(block, "position: relative")
	block.AppendChild(c.button)

	e.debugf("attached copy control (%d bytes of code)", len(c.text))
	return c, nil
}

// ApplyHighlight replaces the contents of el
// with a highlighted rendition of its text for the given language.
//
// It reports whether el was changed.
// Elements with an unrecognized language tag,
// or whose text has nothing to highlight, are not changed.
func (e *Enhancer) ApplyHighlight(el *html.Node, lang string) bool {
	e.init()

	text := textContent(el)
	tokens, err := e.highlighter.Tokens(lang, text)
	if err != nil {
		if errors.Is(err, highlight.ErrUnknownLanguage) {
			e.debugf("not highlighting: %v", err)
		} else {
			e.log().Printf("highlight %v: %v", lang, err)
		}
		return false
	}

	nodes := e.highlighter.Nodes(tokens)
	if len(nodes) == 0 {
		return false
	}

	removeChildren(el)
	for _, n := range nodes {
		el.AppendChild(n)
	}
	e.debugf("highlighted %v block", strings.TrimSpace(lang))
	return true
}
