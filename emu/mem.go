package emu

import (
	"fmt"
	"hash/crc32"

	"github.com/user-none/go-chip-m68k"
)

const (
	chipRAMSize = 0x200000 // 2MB
	chipRAMMask = chipRAMSize - 1

	ciaBase      = 0xbf0000
	ciaEnd       = 0xbfffff
	rtcBase      = 0xdc0000
	rtcEnd       = 0xdcffff
	ideBase      = 0xdd2000
	ideEnd       = 0xdd3fff
	customBase   = 0xdff000
	customEnd    = 0xdfffff
	customMirror = 0x1ff
	romBase      = 0xf80000
	romMask      = kickstartSize - 1

	// Motherboard fast RAM is filled downward from fastRAMEnd.
	fastRAMEnd     = 0x08000000
	MaxFastRAMSize = 112 << 20
)

// AmigaBus implements m68k.CycleBus with the A4000 memory map.
//
// Address map (CPU view):
//
//	0x000000-0x1FFFFF  chip RAM (Kickstart overlaid after reset)
//	0xBF0000-0xBFFFFF  CIA-A (odd bytes) and CIA-B (even bytes)
//	0xDC0000-0xDCFFFF  RP5C01A real-time clock
//	0xDD2000-0xDD3FFF  IDE interface
//	0xDFF000-0xDFFFFF  custom chip registers, mirrored every 512 bytes
//	0xF80000-0xFFFFFF  Kickstart ROM (512KB)
//	0x0xxxxxxx         motherboard fast RAM, ending at 0x08000000
//
// The 68000 core drives a 24-bit address bus, so fast RAM is only
// reachable through the memory inspector.
type AmigaBus struct {
	chipRAM [chipRAMSize]byte
	fastRAM []byte
	rom     []byte
	romCRC  uint32
	overlay bool

	fastBase uint32

	cs  *Chipset
	rtc *RTC
	ide *IDEBridge
	io  *IO
}

// NewAmigaBus creates the bus. rom must be a normalised 512KB Kickstart
// image. fastRAMSize is in bytes.
func NewAmigaBus(rom []byte, fastRAMSize int, cs *Chipset, rtc *RTC, ide *IDEBridge, io *IO) (*AmigaBus, error) {
	if len(rom) != kickstartSize {
		return nil, fmt.Errorf("kickstart image must be %d bytes, got %d", kickstartSize, len(rom))
	}
	if fastRAMSize < 0 || fastRAMSize > MaxFastRAMSize {
		return nil, fmt.Errorf("fast RAM size %d MB exceeds the %d MB maximum", fastRAMSize>>20, MaxFastRAMSize>>20)
	}
	b := &AmigaBus{
		rom:      rom,
		romCRC:   crc32.ChecksumIEEE(rom),
		fastRAM:  make([]byte, fastRAMSize),
		fastBase: fastRAMEnd - uint32(fastRAMSize),
		overlay:  true,
		cs:       cs,
		rtc:      rtc,
		ide:      ide,
		io:       io,
	}
	io.SetOverlayHandler(b.SetOverlay)
	return b, nil
}

// SetOverlay maps or unmaps Kickstart at address 0.
func (b *AmigaBus) SetOverlay(enabled bool) {
	b.overlay = enabled
}

// Overlay reports whether Kickstart is mapped at address 0.
func (b *AmigaBus) Overlay() bool {
	return b.overlay
}

// ReadChipWord implements ChipMemory for the DMA engines.
func (b *AmigaBus) ReadChipWord(addr uint32) uint16 {
	return uint16(readMasked(b.chipRAM[:], chipRAMMask, m68k.Word, addr&^1))
}

// Read implements m68k.Bus.
func (b *AmigaBus) Read(s m68k.Size, addr uint32) uint32 {
	return b.ReadCycle(0, s, addr)
}

// ReadCycle implements m68k.CycleBus.
func (b *AmigaBus) ReadCycle(cycle uint64, s m68k.Size, addr uint32) uint32 {
	if addr >= b.fastBase && addr < fastRAMEnd {
		return readBounded(b.fastRAM, s, addr-b.fastBase)
	}
	addr &= 0xFFFFFF // 24-bit address bus

	switch {
	case addr < chipRAMSize:
		if b.overlay {
			return readMasked(b.rom, romMask, s, addr)
		}
		return readMasked(b.chipRAM[:], chipRAMMask, s, addr)
	case addr >= ciaBase && addr <= ciaEnd:
		return b.io.Read(addr, s)
	case addr >= rtcBase && addr <= rtcEnd:
		return b.rtc.Read(addr-rtcBase, s)
	case addr >= ideBase && addr <= ideEnd:
		return b.ide.Read(addr-ideBase, s)
	case addr >= customBase && addr <= customEnd:
		return b.cs.Read(addr&customMirror, s)
	case addr >= romBase:
		// The first access to the ROM proper releases the overlay.
		b.overlay = false
		return readMasked(b.rom, romMask, s, addr)
	default:
		return 0
	}
}

// Write implements m68k.Bus.
func (b *AmigaBus) Write(s m68k.Size, addr uint32, value uint32) {
	b.WriteCycle(0, s, addr, value)
}

// WriteCycle implements m68k.CycleBus.
func (b *AmigaBus) WriteCycle(cycle uint64, s m68k.Size, addr uint32, value uint32) {
	if addr >= b.fastBase && addr < fastRAMEnd {
		writeBounded(b.fastRAM, s, addr-b.fastBase, value)
		return
	}
	addr &= 0xFFFFFF // 24-bit address bus

	switch {
	case addr < chipRAMSize:
		// Writes reach chip RAM even while the overlay is active.
		writeMasked(b.chipRAM[:], chipRAMMask, s, addr, value)
	case addr >= ciaBase && addr <= ciaEnd:
		b.io.Write(addr, s, value)
	case addr >= rtcBase && addr <= rtcEnd:
		b.rtc.Write(addr-rtcBase, s, value)
	case addr >= ideBase && addr <= ideEnd:
		b.ide.Write(addr-ideBase, s, value)
	case addr >= customBase && addr <= customEnd:
		b.cs.Write(addr&customMirror, s, value)
	}
}

// Reset restores the power-on overlay. Implements m68k.Bus.
// RAM contents survive a reset, as on hardware.
func (b *AmigaBus) Reset() {
	b.overlay = true
}

// Clear zeroes chip and fast RAM.
func (b *AmigaBus) Clear() {
	b.chipRAM = [chipRAMSize]byte{}
	clear(b.fastRAM)
}

// GetROMCRC32 returns the CRC32 of the loaded Kickstart.
func (b *AmigaBus) GetROMCRC32() uint32 {
	return b.romCRC
}

// FastRAMSize returns the size of motherboard fast RAM in bytes.
func (b *AmigaBus) FastRAMSize() int {
	return len(b.fastRAM)
}

// readMasked reads big-endian data from a power-of-two sized buffer,
// wrapping at its end.
func readMasked(mem []byte, mask uint32, s m68k.Size, addr uint32) uint32 {
	idx := addr & mask
	switch s {
	case m68k.Byte:
		return uint32(mem[idx])
	case m68k.Word:
		return uint32(mem[idx])<<8 | uint32(mem[(idx+1)&mask])
	case m68k.Long:
		return uint32(mem[idx])<<24 | uint32(mem[(idx+1)&mask])<<16 |
			uint32(mem[(idx+2)&mask])<<8 | uint32(mem[(idx+3)&mask])
	}
	return 0
}

// writeMasked writes big-endian data to a power-of-two sized buffer.
func writeMasked(mem []byte, mask uint32, s m68k.Size, addr uint32, value uint32) {
	idx := addr & mask
	switch s {
	case m68k.Byte:
		mem[idx] = byte(value)
	case m68k.Word:
		mem[idx] = byte(value >> 8)
		mem[(idx+1)&mask] = byte(value)
	case m68k.Long:
		mem[idx] = byte(value >> 24)
		mem[(idx+1)&mask] = byte(value >> 16)
		mem[(idx+2)&mask] = byte(value >> 8)
		mem[(idx+3)&mask] = byte(value)
	}
}

func sizeBytes(s m68k.Size) uint32 {
	switch s {
	case m68k.Byte:
		return 1
	case m68k.Word:
		return 2
	}
	return 4
}

// readBounded reads big-endian data, returning 0 for bytes past the end.
func readBounded(mem []byte, s m68k.Size, offset uint32) uint32 {
	n := sizeBytes(s)
	memLen := uint32(len(mem))
	var val uint32
	for i := uint32(0); i < n; i++ {
		val <<= 8
		if offset+i < memLen {
			val |= uint32(mem[offset+i])
		}
	}
	return val
}

// writeBounded writes big-endian data, dropping bytes past the end.
func writeBounded(mem []byte, s m68k.Size, offset uint32, value uint32) {
	n := sizeBytes(s)
	memLen := uint32(len(mem))
	for i := uint32(0); i < n; i++ {
		if offset+i < memLen {
			mem[offset+i] = byte(value >> (8 * (n - 1 - i)))
		}
	}
}
