//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Webp converts the images in public/pic to WebP.
func Webp() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "webp")
}

// Docx converts a .docx file to docs/<name>.md and extracts its images to
// public/pic.
func Docx(file string) error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "docx", file)
}

// Images extracts the images of a .docx file into public/pic.
func Images(file string) error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "images", file)
}

// Verify checks the images linked from a Markdown file under public/.
func Verify(file string) error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "verify", file)
}
