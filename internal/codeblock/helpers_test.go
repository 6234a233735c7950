package codeblock

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseHTML(t testing.TB, src string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func renderHTML(t testing.TB, n *html.Node) string {
	t.Helper()

	var sb strings.Builder
	require.NoError(t, html.Render(&sb, n))
	return sb.String()
}

// fakeClipboard records everything written to it.
// If err is set, writes fail with it.
type fakeClipboard struct {
	err error

	mu     sync.Mutex
	writes []string
}

var _ Clipboard = (*fakeClipboard)(nil)

func (c *fakeClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.err != nil {
		return c.err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, text)
	return nil
}

func (c *fakeClipboard) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}
