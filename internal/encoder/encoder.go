// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package encoder wraps the external programs that re-encode raster images
// as WebP. One process is launched per image; its output streams are
// discarded and exit status zero signals success.
package encoder

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/pdiddy/doc-utils/pkg/types"
)

const (
	binFFmpeg = "ffmpeg"
	binCWebP  = "cwebp"
)

// ErrNoEncoder is returned by Detect when no backend is installed.
var ErrNoEncoder = errors.New("no webp encoder available")

// Encoder converts one image file to WebP.
type Encoder interface {
	// Name returns the backend binary name ("ffmpeg" or "cwebp").
	Name() string

	// Available reports whether the binary is on PATH and answers a
	// version probe.
	Available() bool

	// Encode writes a WebP rendition of in to out at the given quality.
	// A non-nil error means the process failed or exited non-zero.
	Encode(in, out string, quality int) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec. Commands run
// with stdout and stderr left nil, which discards both streams.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// backend implements Encoder for one binary.
type backend struct {
	bin       string
	probeArgs []string
	argv      func(in, out string, quality int) []string
	exec      executor
}

func (b *backend) Name() string { return b.bin }

func (b *backend) Available() bool {
	if _, err := b.exec.LookPath(b.bin); err != nil {
		return false
	}
	return b.exec.RunSilent(b.bin, b.probeArgs...) == nil
}

func (b *backend) Encode(in, out string, quality int) error {
	if err := b.exec.RunSilent(b.bin, b.argv(in, out, quality)...); err != nil {
		return fmt.Errorf("running %s on %s: %w", b.bin, in, err)
	}
	return nil
}

func newFFmpeg(exec executor) *backend {
	return &backend{
		bin:       binFFmpeg,
		probeArgs: []string{"-version"},
		argv: func(in, out string, quality int) []string {
			return []string{"-i", in, "-c:v", "libwebp", "-q:v", strconv.Itoa(quality), out}
		},
		exec: exec,
	}
}

func newCWebP(exec executor) *backend {
	return &backend{
		bin:       binCWebP,
		probeArgs: []string{"-version"},
		argv: func(in, out string, quality int) []string {
			return []string{"-quiet", "-q", strconv.Itoa(quality), in, "-o", out}
		},
		exec: exec,
	}
}

var defaultExec = &osExecutor{}

// Detect returns the preferred backend when it is available. With
// types.EncoderAuto it tries ffmpeg first and falls back to cwebp.
func Detect(preferred types.EncoderBackend) (Encoder, error) {
	return detect(defaultExec, preferred)
}

func detect(exec executor, preferred types.EncoderBackend) (Encoder, error) {
	var candidates []*backend
	switch preferred {
	case types.EncoderFFmpeg:
		candidates = []*backend{newFFmpeg(exec)}
	case types.EncoderCWebP:
		candidates = []*backend{newCWebP(exec)}
	case types.EncoderAuto:
		candidates = []*backend{newFFmpeg(exec), newCWebP(exec)}
	default:
		return nil, fmt.Errorf("unknown encoder %q: use %s or %s", preferred, binFFmpeg, binCWebP)
	}

	for _, c := range candidates {
		if c.Available() {
			return c, nil
		}
	}

	if preferred != types.EncoderAuto {
		return nil, fmt.Errorf("%w: %s not found or not operational", ErrNoEncoder, preferred)
	}
	return nil, fmt.Errorf("%w: neither %s nor %s found or operational", ErrNoEncoder, binFFmpeg, binCWebP)
}
