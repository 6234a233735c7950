package codeblock

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"braces.dev/errtrace"
	"github.com/benbjohnson/clock"
	"golang.org/x/net/html"
)

// Clipboard is the system clipboard, or something like it.
type Clipboard interface {
	// WriteText places text on the clipboard.
	WriteText(ctx context.Context, text string) error
}

// ErrNoClipboard is reported by copy controls
// of an Enhancer that has no Clipboard.
var ErrNoClipboard = errors.New("no clipboard available")

// CopyState is the display state of a [CopyControl].
type CopyState int

const (
	// CopyIdle is the resting state: the control offers to copy.
	CopyIdle CopyState = iota

	// CopyConfirmed is shown after a successful copy.
	CopyConfirmed

	// CopyFailed is shown after the clipboard rejected a copy.
	CopyFailed
)

func (s CopyState) String() string {
	switch s {
	case CopyIdle:
		return "idle"
	case CopyConfirmed:
		return "confirmed"
	case CopyFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Label is the text shown on the control in this state.
func (s CopyState) Label() string {
	switch s {
	case CopyConfirmed:
		return "Copied!"
	case CopyFailed:
		return "Copy failed"
	default:
		return "Copy"
	}
}

// CopyControl is the copy button attached to a single code block.
//
// A control's state changes asynchronously,
// and each change rewrites the contents of its button node.
// Callers must not render the document
// while an activation or a revert is outstanding.
type CopyControl struct {
	block  *html.Node
	button *html.Node
	text   string

	clipboard  Clipboard
	clock      clock.Clock
	confirmFor time.Duration
	log        *log.Logger

	mu    sync.Mutex // guards state and button
	state CopyState
}

// Block returns the code block this control belongs to.
func (c *CopyControl) Block() *html.Node { return c.block }

// Button returns the control's <button> element.
func (c *CopyControl) Button() *html.Node { return c.button }

// Text returns the code that this control copies.
func (c *CopyControl) Text() string { return c.text }

// State reports the control's current state.
func (c *CopyControl) State() CopyState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Label reports the text currently shown on the control.
func (c *CopyControl) Label() string {
	return c.State().Label()
}

// Activate copies the block's code to the clipboard.
//
// The copy happens in the background.
// Once it finishes, the control moves to CopyConfirmed or CopyFailed,
// schedules its own return to CopyIdle,
// and the outcome is delivered on the returned channel.
//
// Activations are independent of each other:
// every one of them schedules its own revert.
func (c *CopyControl) Activate(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)

		err := c.write(ctx)
		if err != nil {
			c.log.Printf("copy: %v", err)
			c.transition(CopyFailed)
		} else {
			c.transition(CopyConfirmed)
		}
		done <- err
	}()
	return done
}

func (c *CopyControl) write(ctx context.Context) error {
	if c.clipboard == nil {
		return errtrace.Wrap(ErrNoClipboard)
	}
	return errtrace.Wrap(c.clipboard.WriteText(ctx, c.text))
}

// transition moves to state and schedules the revert to idle.
func (c *CopyControl) transition(state CopyState) {
	c.setState(state)
	c.clock.AfterFunc(c.confirmFor, func() {
		c.setState(CopyIdle)
	})
}

func (c *CopyControl) setState(state CopyState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = state
	c.render()
}
