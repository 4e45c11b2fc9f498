// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify checks generated Markdown against the files it links.
// The document is parsed with goldmark and every image destination that
// is a local path is looked up under a root directory.
package verify

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// ErrMissingInput is returned when the Markdown file does not exist.
var ErrMissingInput = errors.New("input not found")

// DefaultRoot is the directory image links are resolved against.
const DefaultRoot = "public"

// ImageRef is one image destination found in the document.
type ImageRef struct {
	Destination string
	// Path is the resolved file, empty for remote destinations.
	Path   string
	Remote bool
	Exists bool
}

// Report summarizes one verified Markdown file.
type Report struct {
	File     string
	Headings map[int]int
	Images   []ImageRef
}

// Missing returns the local images whose files do not exist.
func (r Report) Missing() []ImageRef {
	var out []ImageRef
	for _, img := range r.Images {
		if !img.Remote && !img.Exists {
			out = append(out, img)
		}
	}
	return out
}

// HasMissing reports whether any local image is missing.
func (r Report) HasMissing() bool {
	return len(r.Missing()) > 0
}

// Check parses the Markdown at file and resolves its images under root.
func Check(file, root string) (Report, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return Report{}, fmt.Errorf("%w: %s", ErrMissingInput, file)
		}
		return Report{}, fmt.Errorf("reading %s: %w", file, err)
	}
	report := Inspect(src, root)
	report.File = file
	return report, nil
}

// Inspect walks the Markdown source and collects headings and images.
func Inspect(src []byte, root string) Report {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(src))

	report := Report{Headings: map[int]int{}}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			report.Headings[node.Level]++
		case *ast.Image:
			report.Images = append(report.Images, resolve(string(node.Destination), root))
		}
		return ast.WalkContinue, nil
	})
	return report
}

func resolve(dest, root string) ImageRef {
	ref := ImageRef{Destination: dest}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "data:") {
		ref.Remote = true
		return ref
	}
	local := dest
	if unescaped, err := url.PathUnescape(dest); err == nil {
		local = unescaped
	}
	ref.Path = filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(local, "/")))
	if info, err := os.Stat(ref.Path); err == nil && !info.IsDir() {
		ref.Exists = true
	}
	return ref
}

// Print writes a per-image listing followed by a summary line.
func Print(w io.Writer, r Report) {
	for _, img := range r.Images {
		switch {
		case img.Remote:
			fmt.Fprintf(w, "remote:  %s\n", img.Destination)
		case img.Exists:
			fmt.Fprintf(w, "ok:      %s\n", img.Destination)
		default:
			fmt.Fprintf(w, "missing: %s (%s)\n", img.Destination, img.Path)
		}
	}
	headings := 0
	for _, n := range r.Headings {
		headings += n
	}
	fmt.Fprintf(w, "\n%s: %d heading(s), %d image(s), %d missing\n",
		r.File, headings, len(r.Images), len(r.Missing()))
}
