package codeblock

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const _buttonClass = "absolute top-2 right-2 btn btn-xs btn-ghost opacity-60 hover:opacity-100"

// StateAttr holds the name of the control's state on its button.
const StateAttr = "data-copy-state"

// Outline icon paths for each state.
var _iconPaths = map[CopyState]string{
	CopyIdle:      "M8 16H6a2 2 0 01-2-2V6a2 2 0 012-2h8a2 2 0 012 2v2m-6 12h8a2 2 0 002-2v-8a2 2 0 00-2-2h-8a2 2 0 00-2 2v8a2 2 0 002 2z",
	CopyConfirmed: "M5 13l4 4L19 7",
	CopyFailed:    "M6 18L18 6M6 6l12 12",
}

func newButton() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "button",
		DataAtom: atom.Button,
		Attr: []html.Attribute{
			{Key: "type", Val: "button"},
			{Key: "class", Val: _buttonClass},
			{Key: "aria-live", Val: "polite"},
		},
	}
}

// render rewrites the button to reflect the current state.
// c.mu must be held, or c must not yet be shared.
func (c *CopyControl) render() {
	setAttr(c.button, StateAttr, c.state.String())
	removeChildren(c.button)
	c.button.AppendChild(icon(_iconPaths[c.state]))
	c.button.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: " " + c.state.Label(),
	})
}

func icon(d string) *html.Node {
	svg := &html.Node{
		Type:      html.ElementNode,
		Data:      "svg",
		DataAtom:  atom.Svg,
		Namespace: "svg",
		Attr: []html.Attribute{
			{Key: "class", Val: "w-4 h-4"},
			{Key: "fill", Val: "none"},
			{Key: "stroke", Val: "currentColor"},
			{Key: "viewBox", Val: "0 0 24 24"},
		},
	}
	svg.AppendChild(&html.Node{
		Type:      html.ElementNode,
		Data:      "path",
		Namespace: "svg",
		Attr: []html.Attribute{
			{Key: "stroke-linecap", Val: "round"},
			{Key: "stroke-linejoin", Val: "round"},
			{Key: "stroke-width", Val: "2"},
			{Key: "d", Val: d},
		},
	})
	return svg
}
