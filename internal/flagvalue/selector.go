package flagvalue

import (
	"flag"
	"fmt"

	"braces.dev/errtrace"
	"github.com/andybalholm/cascadia"
)

// Selector is a flag that accepts a CSS selector.
// The selector is compiled when the flag is set,
// so invalid selectors are reported as flag errors.
type Selector struct {
	src string
	m   cascadia.Matcher
}

var _ flag.Getter = (*Selector)(nil)

// Get returns the compiled selector, or nil if the flag wasn't set.
func (s *Selector) Get() any { return s.Matcher() }

// Matcher returns the compiled selector, or nil if the flag wasn't set.
func (s *Selector) Matcher() cascadia.Matcher {
	if s == nil || s.m == nil {
		return nil
	}
	return s.m
}

// String returns the selector as it was written.
func (s *Selector) String() string {
	if s == nil {
		return ""
	}
	return s.src
}

// Set compiles a selector.
func (s *Selector) Set(v string) error {
	sel, err := cascadia.Compile(v)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("bad selector %q: %w", v, err))
	}
	s.src = v
	s.m = sel
	return nil
}
