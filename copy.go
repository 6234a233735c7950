package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"braces.dev/errtrace"
	"golang.org/x/net/html"
)

// blockCopier copies a single code block of a page to the clipboard
// by activating its copy control.
type blockCopier struct {
	Log      *log.Logger
	Enhancer Enhancer
}

// Copy copies the nth (1-based) code block in the file at path.
func (c *blockCopier) Copy(ctx context.Context, path string, n int) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errtrace.Wrap(err)
	}

	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("%v: %w", path, err))
	}

	controls := c.Enhancer.Initialize(doc).Controls
	if n < 1 || n > len(controls) {
		return errtrace.Wrap(fmt.Errorf("%v: no code block %d: found %d", path, n, len(controls)))
	}

	ctrl := controls[n-1]
	if err := <-ctrl.Activate(ctx); err != nil {
		return errtrace.Wrap(fmt.Errorf("%v: block %d: %w", path, n, err))
	}

	c.Log.Printf("%v: block %d: %v (%d bytes)", path, n, ctrl.Label(), len(ctrl.Text()))
	return nil
}
