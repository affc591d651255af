// Package report prints search results. Each path is classified by a
// fresh stat, so entries that vanished since the search print as files.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Kind is the classification printed in front of a path
type Kind string

const (
	KindFile      Kind = "File"
	KindDirectory Kind = "Directory"
)

// Classify stats path and reports whether it is a directory or a file
func Classify(path string) Kind {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return KindDirectory
	}
	return KindFile
}

// Printer writes the human-readable result listing
type Printer struct {
	w        io.Writer
	dirColor *color.Color
	hdrColor *color.Color
}

// NewPrinter creates a Printer. Color is applied only when useColor is set
// and the color library has not been disabled (NO_COLOR, non-TTY stdout).
func NewPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		w:        w,
		dirColor: color.New(color.FgBlue, color.Bold),
		hdrColor: color.New(color.FgGreen),
	}
	if !useColor {
		p.dirColor.DisableColor()
		p.hdrColor.DisableColor()
	}
	return p
}

// Searching prints the banner shown before a search starts
func (p *Printer) Searching(name string) {
	fmt.Fprintf(p.w, "Searching for files/folders named '%s'...\n", name)
}

// Results prints every path with its kind, or a no-match message
func (p *Printer) Results(paths []string) {
	if len(paths) == 0 {
		fmt.Fprintln(p.w, "No items found with the specified name.")
		return
	}

	p.hdrColor.Fprintf(p.w, "\nFound %d matches:\n", len(paths))
	for _, path := range paths {
		kind := Classify(path)
		if kind == KindDirectory {
			p.dirColor.Fprintf(p.w, "%s: %s\n", kind, path)
			continue
		}
		fmt.Fprintf(p.w, "%s: %s\n", kind, path)
	}
}
