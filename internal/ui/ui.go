// Package ui prints the user-facing progress lines of the CLI.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes "[*] ..." style status lines. Prefixes are coloured only
// when Color is set.
type Printer struct {
	Out   io.Writer
	Color bool
}

// Stdout returns a printer for os.Stdout, coloured when it is a terminal.
func Stdout() *Printer {
	return &Printer{Out: os.Stdout, Color: IsTTY(os.Stdout)}
}

// Discard is a printer that drops everything.
func Discard() *Printer {
	return &Printer{Out: io.Discard}
}

func (p *Printer) line(prefix string, attr color.Attribute, format string, args ...any) {
	if p == nil || p.Out == nil {
		return
	}
	if p.Color {
		c := color.New(attr)
		c.EnableColor()
		prefix = c.Sprint(prefix)
	}
	fmt.Fprintf(p.Out, prefix+" "+format+"\n", args...)
}

func (p *Printer) Info(format string, args ...any)    { p.line("[*]", color.FgCyan, format, args...) }
func (p *Printer) Step(format string, args ...any)    { p.line("[>]", color.FgBlue, format, args...) }
func (p *Printer) Warn(format string, args ...any)    { p.line("[!]", color.FgYellow, format, args...) }
func (p *Printer) Success(format string, args ...any) { p.line("[+++]", color.FgGreen, format, args...) }

// Plain writes format without a prefix.
func (p *Printer) Plain(format string, args ...any) {
	if p == nil || p.Out == nil {
		return
	}
	fmt.Fprintf(p.Out, format, args...)
}
