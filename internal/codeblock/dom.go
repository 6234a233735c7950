package codeblock

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// codeWithAttr matches <code> elements that have the given attribute,
// like the selector "code[attr]" would.
type codeWithAttr string

var _ cascadia.Matcher = codeWithAttr("")

func (attr codeWithAttr) Match(n *html.Node) bool {
	if n.Type != html.ElementNode || n.DataAtom != atom.Code {
		return false
	}
	_, ok := getAttr(n, string(attr))
	return ok
}

// textContent returns the text of n and all its descendants,
// the same way the DOM's textContent does.
func textContent(n *html.Node) string {
	var (
		sb    strings.Builder
		visit func(*html.Node)
	)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// addStyle appends a declaration to the element's style attribute,
// keeping whatever is already there.
func addStyle(n *html.Node, decl string) {
	style, _ := getAttr(n, "style")
	style = strings.TrimSpace(style)
	switch {
	case style == "":
		style = decl
	case strings.HasSuffix(style, ";"):
		style += " " + decl
	default:
		style += "; " + decl
	}
	setAttr(n, "style", style)
}
