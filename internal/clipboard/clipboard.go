// Package clipboard provides ways to put text on the system clipboard.
package clipboard

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/tutorialblocks/internal/codeblock"
	"go.abhg.dev/tutorialblocks/internal/linebuf"
)

// ErrUnavailable is returned by [Detect]
// when no clipboard program could be found.
var ErrUnavailable = errors.New("no clipboard program found")

// Func adapts a function into a [codeblock.Clipboard].
type Func func(ctx context.Context, text string) error

var _ codeblock.Clipboard = Func(nil)

// WriteText calls f.
func (f Func) WriteText(ctx context.Context, text string) error {
	return f(ctx, text)
}

// OSC52 copies text by writing an OSC 52 escape sequence to a terminal.
// Terminals that support it place the text on the system clipboard,
// including over SSH.
type OSC52 struct {
	// W is the terminal to write to.
	W io.Writer
}

var _ codeblock.Clipboard = (*OSC52)(nil)

// WriteText writes the escape sequence for text to the terminal.
func (o *OSC52) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return errtrace.Wrap(err)
	}

	var buf bytes.Buffer
	buf.WriteString("\x1b]52;c;")
	buf.WriteString(base64.StdEncoding.EncodeToString([]byte(text)))
	buf.WriteString("\a")

	_, err := o.W.Write(buf.Bytes())
	return errtrace.Wrap(err)
}

// Command copies text by piping it into an external program
// such as pbcopy or xclip.
type Command struct {
	// Path is the program to run.
	Path string // required

	// Args are additional arguments for the program.
	Args []string

	// Log receives the program's output, if any.
	Log *log.Logger
}

var _ codeblock.Clipboard = (*Command)(nil)

// WriteText runs the program with text as its standard input.
func (c *Command) WriteText(ctx context.Context, text string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stderr = &stderr
	if c.Log != nil {
		out := linebuf.Logger(c.Log, c.Path+": ")
		defer out.Flush()
		cmd.Stdout = out
	}

	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return errtrace.Wrap(fmt.Errorf("%v: %w: %s", c.Path, err, msg))
		}
		return errtrace.Wrap(fmt.Errorf("%v: %w", c.Path, err))
	}
	return nil
}

// String describes the command line.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// _knownCommands lists clipboard programs in order of preference.
var _knownCommands = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"clip.exe"},
}

// LookPath resolves program names to paths.
// It matches [exec.LookPath].
type LookPath func(file string) (string, error)

// Detect returns a [Command] for the first known clipboard program
// found by lookPath.
// Pass nil to search $PATH.
func Detect(lookPath LookPath) (*Command, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, argv := range _knownCommands {
		path, err := lookPath(argv[0])
		if err != nil {
			continue
		}
		return &Command{Path: path, Args: argv[1:]}, nil
	}
	return nil, errtrace.Wrap(ErrUnavailable)
}
