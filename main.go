// tutorialblocks decorates the tutorial code blocks
// of server-rendered HTML pages.
//
// It adds a copy-to-clipboard button to every block,
// and highlights code elements that carry a language tag.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/tutorialblocks/internal/clipboard"
	"go.abhg.dev/tutorialblocks/internal/codeblock"
	"go.abhg.dev/tutorialblocks/internal/errdefer"
	"go.abhg.dev/tutorialblocks/internal/highlight"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(cmd.Run(ctx, os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	// LookPath finds clipboard programs for -clipboard=auto.
	// Defaults to searching $PATH.
	LookPath clipboard.LookPath

	log *log.Logger
}

func (cmd *mainCmd) Run(ctx context.Context, args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, errHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if err := cmd.run(ctx, opts); err != nil {
		cmd.log.Printf("tutorialblocks: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(ctx context.Context, opts *params) (err error) {
	debugLog, closeDebug, err := opts.Debug.Logger(cmd.Stderr)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("open debug log: %w", err))
	}
	defer errdefer.Run(&err, closeDebug)

	langs, err := newRegistry(opts.Engine, opts.Aliases)
	if err != nil {
		return err
	}

	enhancer := codeblock.Enhancer{
		BlockSelector:    opts.BlockSelector.Matcher(),
		CodeSelector:     opts.CodeSelector.Matcher(),
		LanguageAttr:     opts.LanguageAttr,
		Highlighter:      &highlight.Highlighter{Languages: langs},
		DisableCopy:      opts.NoCopy,
		DisableHighlight: opts.NoHighlight,
		Log:              cmd.log,
		DebugLog:         debugLog,
	}

	if opts.CopyBlock > 0 {
		cb, err := cmd.clipboard(opts.Clipboard)
		if err != nil {
			return err
		}
		enhancer.Clipboard = cb

		copier := blockCopier{
			Log:      cmd.log,
			Enhancer: &enhancer,
		}
		return copier.Copy(ctx, opts.Paths[0], opts.CopyBlock)
	}

	runner := Runner{
		Log:      cmd.log,
		Enhancer: &enhancer,
		Stdout:   cmd.Stdout,
		InPlace:  opts.Write,
		OutDir:   opts.OutputDir,
		Fragment: opts.Fragment,
	}
	return runner.Run(opts.Paths)
}

func newRegistry(engine string, aliases []langAlias) (*highlight.Registry, error) {
	var langs *highlight.Registry
	switch engine {
	case _engineChroma:
		langs = highlight.NewChromaRegistry()
	default:
		langs = highlight.NewRegistry()
	}

	for _, a := range aliases {
		lexer, ok := langs.Lookup(a.Value)
		if !ok {
			return nil, errtrace.Wrap(fmt.Errorf("alias %v: %w: %q", a.Key, highlight.ErrUnknownLanguage, a.Value))
		}
		langs.Register(lexer, a.Key)
	}
	return langs, nil
}

// clipboard builds the clipboard for the -clipboard flag.
func (cmd *mainCmd) clipboard(name string) (codeblock.Clipboard, error) {
	switch name = strings.TrimSpace(name); name {
	case "", "auto":
		c, err := clipboard.Detect(cmd.LookPath)
		if err == nil {
			c.Log = cmd.log
			return c, nil
		}
		if !errors.Is(err, clipboard.ErrUnavailable) {
			return nil, err
		}
		// No clipboard program.
		// Hope that the terminal understands OSC 52.
		return &clipboard.OSC52{W: cmd.Stdout}, nil
	case "osc52":
		return &clipboard.OSC52{W: cmd.Stdout}, nil
	case "none":
		return nil, nil
	default:
		argv := strings.Fields(name)
		return &clipboard.Command{
			Path: argv[0],
			Args: argv[1:],
			Log:  cmd.log,
		}, nil
	}
}
