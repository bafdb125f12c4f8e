package emu

import (
	"log"

	"github.com/user-none/go-chip-m68k"
)

// A4000 IDE window decode, on addr & ideDecodeMask.
const (
	ideDecodeMask = 0x1002
	ideDataPort   = 0x0000 // 16-bit data, or shifted task file access
	ideTaskFile   = 0x0002 // 8-bit task file registers 1-7
	ideIRQStatus  = 0x1000 // bit 7 of the high byte: drive IRQ latched
	ideAltStatus  = 0x1002 // alternate status / device control

	ideIRQBit       = 0x80
	noDriveStatus   = 0x7f
	noDriveDataWord = 0xffff
)

// DriveInterface is the ATA register file behind the IDE shim. Ports are
// the task file offsets 0-7 (0x1f0-0x1f7); control ports select the
// alternate status block (0x3f6-0x3f7).
type DriveInterface interface {
	ReadData() uint16
	WriteData(v uint16)
	ReadPort(port uint8) uint8
	WritePort(port uint8, v uint8)
	ReadControl(port uint8) uint8
	Reset()
}

// NoDrive is an empty IDE bus. Status reads 0x7f so the guest sees no
// device attached.
type NoDrive struct{}

func (NoDrive) ReadData() uint16             { return noDriveDataWord }
func (NoDrive) WriteData(uint16)             {}
func (NoDrive) ReadPort(uint8) uint8         { return noDriveStatus }
func (NoDrive) WritePort(uint8, uint8)       {}
func (NoDrive) ReadControl(port uint8) uint8 { return noDriveStatus }
func (NoDrive) Reset()                       {}

// interruptRaiser is the part of the interrupt controller the bridge
// drives.
type interruptRaiser interface {
	Raise(bits uint16)
}

// IDEBridge maps the A4000 Gayle-less IDE interface onto a drive.
type IDEBridge struct {
	drive DriveInterface
	irq   bool

	raiser interruptRaiser
	quiet  bool
}

// NewIDEBridge wraps drive. A nil drive is an empty bus.
func NewIDEBridge(drive DriveInterface) *IDEBridge {
	if drive == nil {
		drive = NoDrive{}
	}
	return &IDEBridge{drive: drive}
}

// SetInterruptRaiser connects the drive IRQ to the Paula PORTS request.
func (b *IDEBridge) SetInterruptRaiser(r interruptRaiser) {
	b.raiser = r
}

// SetQuiet suppresses diagnostic logging.
func (b *IDEBridge) SetQuiet(quiet bool) {
	b.quiet = quiet
}

func (b *IDEBridge) logf(format string, args ...any) {
	if !b.quiet {
		log.Printf("ide: "+format, args...)
	}
}

// Drive returns the attached drive.
func (b *IDEBridge) Drive() DriveInterface {
	return b.drive
}

// SetIRQ latches the drive interrupt line. A rising edge requests PORTS.
func (b *IDEBridge) SetIRQ(level bool) {
	if level && !b.irq && b.raiser != nil {
		b.raiser.Raise(IntPorts)
	}
	b.irq = level
}

// IRQ reports the latched drive interrupt.
func (b *IDEBridge) IRQ() bool {
	return b.irq
}

// Reset clears the IRQ latch and resets the drive.
func (b *IDEBridge) Reset() {
	b.irq = false
	b.drive.Reset()
}

func ideDecode(addr uint32, size m68k.Size) (port uint8, shift uint) {
	port = uint8(addr>>2) & 7
	if size == m68k.Word {
		shift = 8
	}
	return port, shift
}

// Read handles a CPU read from the IDE window.
func (b *IDEBridge) Read(addr uint32, size m68k.Size) uint32 {
	port, shift := ideDecode(addr, size)
	switch addr & ideDecodeMask {
	case ideDataPort:
		if port != 0 {
			b.logf("16-bit read of task file register %d", port)
			return uint32(b.drive.ReadPort(port)) << shift
		}
		if size == m68k.Byte {
			b.logf("8-bit read of data register")
		}
		return uint32(b.drive.ReadData())
	case ideTaskFile:
		if port == 0 {
			b.logf("8-bit read of data register")
		}
		return uint32(b.drive.ReadPort(port)) << shift
	case ideIRQStatus:
		if b.irq {
			return ideIRQBit << shift
		}
		return 0
	default:
		return uint32(b.drive.ReadControl(port)) << shift
	}
}

// Write handles a CPU write to the IDE window.
func (b *IDEBridge) Write(addr uint32, size m68k.Size, v uint32) {
	port, shift := ideDecode(addr, size)
	switch addr & ideDecodeMask {
	case ideDataPort:
		if port != 0 {
			b.logf("16-bit write of task file register %d", port)
			b.drive.WritePort(port, uint8(v>>shift))
			return
		}
		if size == m68k.Byte {
			b.logf("8-bit write of data register")
		}
		b.drive.WriteData(uint16(v))
	case ideTaskFile:
		if size == m68k.Word {
			b.logf("16-bit write of task file register %d", port)
		}
		b.drive.WritePort(port, uint8(v>>shift))
	default:
		b.logf("unhandled write 0x%x size %d at 0x%x", v, size, addr)
	}
}
