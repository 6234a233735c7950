// Package linebuf splits a byte stream into lines.
package linebuf

import (
	"bytes"
	"io"
	"log"
	"sync"
)

// Writer is an io.Writer that calls a function
// once for every complete line written to it.
//
// Lines are passed without the trailing newline.
// Text after the last newline is held until more input arrives
// or Flush is called.
type Writer struct {
	line func([]byte)

	mu      sync.Mutex // guards partial
	partial bytes.Buffer
}

var _ io.Writer = (*Writer)(nil)

// NewWriter builds a Writer that reports lines to fn.
func NewWriter(fn func(line []byte)) *Writer {
	return &Writer{line: fn}
}

// Logger builds a Writer that prints each line to logger,
// preceded by prefix.
func Logger(logger *log.Logger, prefix string) *Writer {
	return NewWriter(func(line []byte) {
		logger.Printf("%s%s", prefix, line)
	})
}

func (w *Writer) Write(bs []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	total := len(bs)
	for {
		idx := bytes.IndexByte(bs, '\n')
		if idx < 0 {
			w.partial.Write(bs)
			break
		}

		line := bs[:idx]
		bs = bs[idx+1:]
		if w.partial.Len() > 0 {
			w.partial.Write(line)
			line = w.partial.Bytes()
		}
		w.line(line)
		w.partial.Reset()
	}
	return total, nil
}

// Flush reports any unterminated text as the final line.
func (w *Writer) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.partial.Len() > 0 {
		w.line(w.partial.Bytes())
		w.partial.Reset()
	}
}
