package emu

import (
	"testing"

	"github.com/user-none/go-chip-m68k"
)

type fakeDrive struct {
	data     []uint16
	written  []uint16
	ports    [8]uint8
	control  uint8
	resets   int
	lastPort uint8
}

func (d *fakeDrive) ReadData() uint16 {
	if len(d.data) == 0 {
		return 0
	}
	v := d.data[0]
	d.data = d.data[1:]
	return v
}

func (d *fakeDrive) WriteData(v uint16) { d.written = append(d.written, v) }

func (d *fakeDrive) ReadPort(port uint8) uint8 {
	d.lastPort = port
	return d.ports[port]
}

func (d *fakeDrive) WritePort(port uint8, v uint8) { d.ports[port] = v }
func (d *fakeDrive) ReadControl(port uint8) uint8  { return d.control }
func (d *fakeDrive) Reset()                        { d.resets++ }

func newTestIDE(d DriveInterface) *IDEBridge {
	b := NewIDEBridge(d)
	b.SetQuiet(true)
	return b
}

func TestIDE_NoDrive(t *testing.T) {
	b := newTestIDE(nil)
	if got := b.Read(ideTaskFile|7<<2, m68k.Byte); got != noDriveStatus {
		t.Errorf("status with no drive: got 0x%02X, want 0x%02X", got, noDriveStatus)
	}
	if got := b.Read(ideDataPort, m68k.Word); got != noDriveDataWord {
		t.Errorf("data with no drive: got 0x%04X", got)
	}
}

func TestIDE_DataPort(t *testing.T) {
	d := &fakeDrive{data: []uint16{0x1234, 0x5678}}
	b := newTestIDE(d)
	if got := b.Read(ideDataPort, m68k.Word); got != 0x1234 {
		t.Errorf("first data word: got 0x%04X", got)
	}
	if got := b.Read(ideDataPort, m68k.Word); got != 0x5678 {
		t.Errorf("second data word: got 0x%04X", got)
	}
	b.Write(ideDataPort, m68k.Word, 0xbeef)
	if len(d.written) != 1 || d.written[0] != 0xbeef {
		t.Errorf("written data: %v", d.written)
	}
}

func TestIDE_TaskFileByte(t *testing.T) {
	d := &fakeDrive{}
	b := newTestIDE(d)
	b.Write(ideTaskFile|2<<2, m68k.Byte, 0x10) // sector count
	if d.ports[2] != 0x10 {
		t.Errorf("sector count: got 0x%02X", d.ports[2])
	}
	d.ports[7] = 0x50
	if got := b.Read(ideTaskFile|7<<2, m68k.Byte); got != 0x50 {
		t.Errorf("status: got 0x%02X", got)
	}
	if d.lastPort != 7 {
		t.Errorf("port read: %d", d.lastPort)
	}
}

func TestIDE_TaskFileWordShift(t *testing.T) {
	d := &fakeDrive{}
	b := newTestIDE(d)
	d.ports[7] = 0x58
	if got := b.Read(ideTaskFile|7<<2, m68k.Word); got != 0x5800 {
		t.Errorf("word status read: got 0x%04X, want 0x5800", got)
	}
	b.Write(ideTaskFile|3<<2, m68k.Word, 0x2200)
	if d.ports[3] != 0x22 {
		t.Errorf("word task file write: got 0x%02X", d.ports[3])
	}
}

func TestIDE_ShiftedTaskFileOnDataWindow(t *testing.T) {
	d := &fakeDrive{}
	b := newTestIDE(d)
	d.ports[1] = 0x04
	if got := b.Read(ideDataPort|1<<2, m68k.Word); got != 0x0400 {
		t.Errorf("error register via data window: got 0x%04X", got)
	}
}

func TestIDE_AltStatus(t *testing.T) {
	d := &fakeDrive{control: 0x40}
	b := newTestIDE(d)
	if got := b.Read(ideAltStatus|6<<2, m68k.Byte); got != 0x40 {
		t.Errorf("alt status: got 0x%02X", got)
	}
}

func TestIDE_IRQ(t *testing.T) {
	var ic InterruptController
	b := newTestIDE(&fakeDrive{})
	b.SetInterruptRaiser(&ic)

	if got := b.Read(ideIRQStatus, m68k.Byte); got != 0 {
		t.Errorf("IRQ status idle: got 0x%02X", got)
	}

	b.SetIRQ(true)
	if ic.Request&IntPorts == 0 {
		t.Error("PORTS not requested on IRQ rising edge")
	}
	if got := b.Read(ideIRQStatus, m68k.Word); got != ideIRQBit<<8 {
		t.Errorf("IRQ status word: got 0x%04X", got)
	}

	ic.Acknowledge(IntPorts)
	b.SetIRQ(true)
	if ic.Request&IntPorts != 0 {
		t.Error("PORTS requested again without a new edge")
	}

	b.SetIRQ(false)
	if b.IRQ() {
		t.Error("IRQ still latched")
	}
}

func TestIDE_Reset(t *testing.T) {
	d := &fakeDrive{}
	b := newTestIDE(d)
	b.SetIRQ(true)
	b.Reset()
	if b.IRQ() || d.resets != 1 {
		t.Errorf("after reset: irq %v resets %d", b.IRQ(), d.resets)
	}
	if b.Drive() != d {
		t.Error("Drive() does not return attached drive")
	}
}
