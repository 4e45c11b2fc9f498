//go:build mage

// Package main contains Mage build targets for doc-utils developer tooling.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the commands default to.
var projectDirs = []string{
	"public/pic",
	"docs",
}

// Init creates the default image and Markdown directories.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "docutils"
	cmdPkg  = "./cmd/docutils"
)

func binPath() string {
	return filepath.Join(binDir, binName)
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := binPath()
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Clean removes the bin/ directory.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints Go line counts and the state of the default asset
// directories: images still waiting for WebP conversion and Markdown words.
func Stats() error {
	var prod, test int
	err := walkFiles(".", func(path string, data []byte) {
		if !strings.HasSuffix(path, ".go") {
			return
		}
		n := nonBlankLines(data)
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
	})
	if err != nil {
		return err
	}

	var webp, pending int
	err = walkFiles("public/pic", func(path string, _ []byte) {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".webp":
			webp++
		case ".png", ".jpg", ".jpeg", ".gif", ".bmp":
			pending++
		}
	})
	if err != nil {
		return err
	}

	var words int
	err = walkFiles("docs", func(path string, data []byte) {
		if filepath.Ext(path) == ".md" {
			words += len(bytes.Fields(data))
		}
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)
	fmt.Printf("Images (public/pic):            %d webp, %d pending\n", webp, pending)
	fmt.Printf("Words (docs/*.md):              %d\n", words)
	return nil
}

// walkFiles calls fn for every regular file under root, skipping hidden
// and underscore-prefixed directories. A missing root is not an error.
func walkFiles(root string, fn func(path string, data []byte)) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (d.Name()[0] == '.' || d.Name()[0] == '_') {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		fn(path, data)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func nonBlankLines(data []byte) int {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}
