package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"braces.dev/errtrace"
	"github.com/peterbourgon/ff/v3"
	"go.abhg.dev/tutorialblocks/internal/flagvalue"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

const (
	_engineRules  = "rules"
	_engineChroma = "chroma"

	_envVarPrefix = "TUTORIALBLOCKS"
)

type langAlias = flagvalue.KeyValue

// params holds all arguments for tutorialblocks.
type params struct {
	version bool
	help    Help

	Config string
	Debug  flagvalue.FileSwitch

	// Output:
	Write     bool
	OutputDir string
	Fragment  bool

	// Enhancement:
	BlockSelector flagvalue.Selector
	CodeSelector  flagvalue.Selector
	LanguageAttr  string
	Engine        string
	Aliases       []langAlias
	NoCopy        bool
	NoHighlight   bool

	// Copying:
	CopyBlock int
	Clipboard string

	Paths []string
}

// cliParser parses the command line arguments for tutorialblocks.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("tutorialblocks", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		DefaultHelp.Write(cmd.Stderr)
	}

	var p params

	// Output:
	flag.BoolVar(&p.Write, "w", false, "")
	flag.StringVar(&p.OutputDir, "out", "", "")
	flag.BoolVar(&p.Fragment, "fragment", false, "")

	// Enhancement:
	flag.Var(&p.BlockSelector, "selector", "")
	flag.Var(&p.CodeSelector, "code-selector", "")
	flag.StringVar(&p.LanguageAttr, "lang-attr", "", "")
	flag.StringVar(&p.Engine, "engine", _engineRules, "")
	flag.Var(flagvalue.ListOf(&p.Aliases), "alias", "")
	flag.BoolVar(&p.NoCopy, "no-copy", false, "")
	flag.BoolVar(&p.NoHighlight, "no-highlight", false, "")

	// Copying:
	flag.IntVar(&p.CopyBlock, "copy", 0, "")
	flag.StringVar(&p.Clipboard, "clipboard", "auto", "")

	// Program-level:
	flag.StringVar(&p.Config, "config", "", "")
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()

	// Flags take precedence over environment variables,
	// which take precedence over the config file.
	err := ff.Parse(flag, args,
		ff.WithEnvVarPrefix(_envVarPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		fmt.Fprintln(cmd.Stderr, err)
		return nil, errtrace.Wrap(err)
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "tutorialblocks", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil && h.Known() {
			p.help = h
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	p.Paths = args
	if err := p.validate(); err != nil {
		fmt.Fprintln(cmd.Stderr, err)
		UsageHelp.Write(cmd.Stderr)
		return nil, errtrace.Wrap(errInvalidArguments)
	}

	return p, nil
}

func (p *params) validate() error {
	switch {
	case len(p.Paths) == 0:
		return errors.New("please provide at least one file or directory")
	case p.Write && p.OutputDir != "":
		return errors.New("-w and -out cannot be used together")
	case p.Engine != _engineRules && p.Engine != _engineChroma:
		return fmt.Errorf("unknown engine %q: expected one of %q",
			p.Engine, []string{_engineRules, _engineChroma})
	case p.CopyBlock < 0:
		return errors.New("-copy expects a block number starting at 1")
	case p.CopyBlock > 0 && len(p.Paths) != 1:
		return errors.New("-copy expects exactly one file")
	case p.CopyBlock > 0 && p.NoCopy:
		return errors.New("-copy and -no-copy cannot be used together")
	}
	return nil
}
