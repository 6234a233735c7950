package main

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/tutorialblocks/internal/codeblock"
	"go.abhg.dev/tutorialblocks/internal/errdefer"
	"go.abhg.dev/tutorialblocks/internal/pathx"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Enhancer decorates the code blocks of a parsed HTML document.
type Enhancer interface {
	Initialize(*html.Node) *codeblock.Report
}

var _ Enhancer = (*codeblock.Enhancer)(nil)

// Runner enhances user-specified HTML files.
//
// In terms of code organization,
// Runner's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Runner struct {
	Log      *log.Logger
	Enhancer Enhancer

	// Stdout receives enhanced pages
	// if neither InPlace nor OutDir are set.
	Stdout io.Writer

	// InPlace rewrites input files.
	InPlace bool

	// OutDir, if set, receives enhanced pages
	// at the same relative paths as their inputs.
	OutDir string

	// Fragment parses inputs as HTML fragments
	// instead of complete documents.
	Fragment bool
}

// inputFile is an HTML file to enhance.
type inputFile struct {
	// Path to the file on disk.
	Path string

	// Path relative to the argument it was found through.
	// Used to place the file inside OutDir.
	Rel string
}

// Run enhances the HTML files at or under the given paths.
func (r *Runner) Run(paths []string) error {
	files, err := findHTMLFiles(paths, r.OutDir)
	if err != nil {
		return err
	}

	if r.OutDir != "" {
		if err := checkOutputCollisions(files); err != nil {
			return err
		}
	}

	for _, f := range files {
		if err := r.enhanceFile(f); err != nil {
			return errtrace.Wrap(fmt.Errorf("%v: %w", f.Path, err))
		}
	}
	return nil
}

// findHTMLFiles expands directories in paths into the HTML files in them.
// Files named explicitly are used regardless of their extension.
// Directories at or inside skipDir are not searched.
func findHTMLFiles(paths []string, skipDir string) ([]inputFile, error) {
	var files []inputFile
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		if !info.IsDir() {
			files = append(files, inputFile{Path: root, Rel: filepath.Base(root)})
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDir == "" || path == root {
					return nil
				}
				// Don't pick up our own output.
				skip, err := pathx.Within(skipDir, path)
				if err != nil || !skip {
					return err
				}
				return fs.SkipDir
			}
			if !isHTMLFile(path) {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, inputFile{Path: path, Rel: rel})
			return nil
		})
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return files, nil
}

// checkOutputCollisions reports an error
// if two inputs would be written to the same place inside OutDir.
func checkOutputCollisions(files []inputFile) error {
	owners := make(map[string]string, len(files)) // rel => path
	for _, f := range files {
		rel := filepath.Clean(f.Rel)
		if prev, ok := owners[rel]; ok {
			return errtrace.Wrap(fmt.Errorf("%v and %v would both be written to %v", prev, f.Path, rel))
		}
		owners[rel] = f.Path
	}
	return nil
}

func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}

func (r *Runner) enhanceFile(f inputFile) error {
	src, err := os.ReadFile(f.Path)
	if err != nil {
		return errtrace.Wrap(err)
	}

	out, report, err := r.enhance(src)
	if err != nil {
		return err
	}
	r.Log.Printf("%v: %d copy controls, %d highlighted, %d skipped",
		f.Path, len(report.Controls), report.Highlighted, report.Skipped)

	switch {
	case r.InPlace:
		info, err := os.Stat(f.Path)
		if err != nil {
			return errtrace.Wrap(err)
		}
		return errtrace.Wrap(os.WriteFile(f.Path, out, info.Mode().Perm()))

	case r.OutDir != "":
		return writeFile(filepath.Join(r.OutDir, f.Rel), out)

	default:
		_, err := r.Stdout.Write(out)
		return errtrace.Wrap(err)
	}
}

// enhance parses src, enhances it, and renders it back to HTML.
func (r *Runner) enhance(src []byte) ([]byte, *codeblock.Report, error) {
	var (
		root  *html.Node
		nodes []*html.Node // to render
	)
	if r.Fragment {
		body := &html.Node{
			Type:     html.ElementNode,
			Data:     "body",
			DataAtom: atom.Body,
		}
		frag, err := html.ParseFragment(bytes.NewReader(src), body)
		if err != nil {
			return nil, nil, errtrace.Wrap(err)
		}
		for _, n := range frag {
			body.AppendChild(n)
		}
		root = body
		nodes = frag
	} else {
		doc, err := html.Parse(bytes.NewReader(src))
		if err != nil {
			return nil, nil, errtrace.Wrap(err)
		}
		root = doc
		nodes = []*html.Node{doc}
	}

	report := r.Enhancer.Initialize(root)

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, nil, errtrace.Wrap(err)
		}
	}
	return buf.Bytes(), report, nil
}

func writeFile(path string, body []byte) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o1755); err != nil {
		return errtrace.Wrap(err)
	}

	f, err := os.Create(path)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	_, err = f.Write(body)
	return errtrace.Wrap(err)
}
