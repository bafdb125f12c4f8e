// Package trace renders custom chip register traffic for debugging.
package trace

import (
	"fmt"
	"io"

	"github.com/user-none/ema4k/emu"
)

var _ emu.Tracer = (*Printer)(nil)

// Printer writes one styled line per register access or warning.
type Printer struct {
	w      io.Writer
	styles styles

	// Reads enables tracing of register reads. Reads are frequent
	// (beam polling, INTREQR) so they are off by default.
	Reads bool

	// Skip suppresses accesses to the listed word offsets.
	Skip map[uint8]bool

	lines uint64
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		styles: newStyles(),
		Skip:   make(map[uint8]bool),
	}
}

// Lines returns the number of lines written.
func (p *Printer) Lines() uint64 {
	return p.lines
}

// SkipName suppresses every register called name and reports whether
// the name is known.
func (p *Printer) SkipName(name string) bool {
	found := false
	for off := 0; off < 256; off++ {
		if emu.RegisterName(uint8(off)) == name {
			p.Skip[uint8(off)] = true
			found = true
		}
	}
	return found
}

func (p *Printer) access(off uint8, name string, v uint16) string {
	return fmt.Sprintf(" $%03X %s $%04X", uint16(off)<<1, p.styles.name.Render(fmt.Sprintf("%-8s", name)), v)
}

// RegisterRead implements emu.Tracer.
func (p *Printer) RegisterRead(off uint8, name string, v uint16) {
	if !p.Reads || p.Skip[off] {
		return
	}
	p.println(p.styles.read.Render("R") + p.access(off, name, v))
}

// RegisterWrite implements emu.Tracer.
func (p *Printer) RegisterWrite(off uint8, name string, v uint16) {
	if p.Skip[off] {
		return
	}
	p.println(p.styles.write.Render("W") + p.access(off, name, v))
}

// Warning implements emu.Tracer.
func (p *Printer) Warning(component, msg string) {
	p.println(p.styles.warning.Render(component+":") + " " + msg)
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
	p.lines++
}
