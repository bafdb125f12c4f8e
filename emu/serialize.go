package emu

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math"

	"github.com/user-none/go-chip-m68k"
)

// Save state format constants
const (
	stateVersion    = 1
	stateMagic      = "eMA4KState\x00\x00"
	stateHeaderSize = 22 // magic(12) + version(2) + romCRC(4) + dataCRC(4)
)

// busSerializeFixedSize covers chip RAM, overlay(1) and fastRAMLen(4).
// Fast RAM contents follow and vary with the configuration.
const busSerializeFixedSize = chipRAMSize + 1 + 4

// boolByte converts a bool to a uint8 (0 or 1).
func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

type codecMode uint8

const (
	codecCount codecMode = iota
	codecSave
	codecLoad
)

// stateCodec walks a component's fields once for all three passes:
// counting the size, saving into buf and loading from buf. Values are
// little-endian. The first failure is kept in err and later calls are
// ignored.
type stateCodec struct {
	mode codecMode
	buf  []byte
	off  int
	err  error
}

func (c *stateCodec) ok(n int) bool {
	if c.err != nil {
		return false
	}
	if c.mode != codecCount && c.off+n > len(c.buf) {
		c.err = errors.New("save state buffer too small")
		return false
	}
	return true
}

func (c *stateCodec) fail(msg string) {
	if c.err == nil {
		c.err = errors.New(msg)
	}
}

func (c *stateCodec) U8(v *uint8) {
	if !c.ok(1) {
		return
	}
	switch c.mode {
	case codecSave:
		c.buf[c.off] = *v
	case codecLoad:
		*v = c.buf[c.off]
	}
	c.off++
}

func (c *stateCodec) Bool(v *bool) {
	b := boolByte(*v)
	c.U8(&b)
	if c.mode == codecLoad {
		*v = b != 0
	}
}

func (c *stateCodec) U16(v *uint16) {
	if !c.ok(2) {
		return
	}
	switch c.mode {
	case codecSave:
		binary.LittleEndian.PutUint16(c.buf[c.off:], *v)
	case codecLoad:
		*v = binary.LittleEndian.Uint16(c.buf[c.off:])
	}
	c.off += 2
}

func (c *stateCodec) U32(v *uint32) {
	if !c.ok(4) {
		return
	}
	switch c.mode {
	case codecSave:
		binary.LittleEndian.PutUint32(c.buf[c.off:], *v)
	case codecLoad:
		*v = binary.LittleEndian.Uint32(c.buf[c.off:])
	}
	c.off += 4
}

func (c *stateCodec) U64(v *uint64) {
	if !c.ok(8) {
		return
	}
	switch c.mode {
	case codecSave:
		binary.LittleEndian.PutUint64(c.buf[c.off:], *v)
	case codecLoad:
		*v = binary.LittleEndian.Uint64(c.buf[c.off:])
	}
	c.off += 8
}

func (c *stateCodec) F64(v *float64) {
	bits := math.Float64bits(*v)
	c.U64(&bits)
	if c.mode == codecLoad {
		*v = math.Float64frombits(bits)
	}
}

func (c *stateCodec) Int(v *int) {
	u := uint32(*v)
	c.U32(&u)
	if c.mode == codecLoad {
		*v = int(u)
	}
}

func (c *stateCodec) Bytes(b []byte) {
	if !c.ok(len(b)) {
		return
	}
	switch c.mode {
	case codecSave:
		copy(c.buf[c.off:], b)
	case codecLoad:
		copy(b, c.buf[c.off:c.off+len(b)])
	}
	c.off += len(b)
}

// Version reads or writes a component version byte, failing the load
// when the state is newer than current.
func (c *stateCodec) Version(current uint8, component string) {
	v := current
	c.U8(&v)
	if c.mode == codecLoad && v > current {
		c.fail("unsupported " + component + " state version")
	}
}

// codecSize counts the bytes fn writes.
func codecSize(fn func(c *stateCodec)) int {
	c := &stateCodec{mode: codecCount}
	fn(c)
	return c.off
}

// SerializeSize returns the save state size for the default
// configuration, which has no fast RAM.
func SerializeSize() int {
	return serializeSize(0)
}

func serializeSize(fastRAMSize int) int {
	return stateHeaderSize +
		m68k.SerializeSize +
		busSerializeFixedSize + fastRAMSize +
		ChipsetSerializeSize +
		RTCSerializeSize +
		IOSerializeSize +
		emulatorSerializeSize
}

// SerializeSize returns the total size in bytes needed for a save state.
// Fast RAM is configurable, so this depends on the machine.
func (e *Emulator) SerializeSize() int {
	return serializeSize(e.bus.FastRAMSize())
}

// Serialize creates a save state and returns it as a byte slice.
func (e *Emulator) Serialize() ([]byte, error) {
	size := e.SerializeSize()
	data := make([]byte, size)

	// Write header
	copy(data[0:12], stateMagic)
	binary.LittleEndian.PutUint16(data[12:14], stateVersion)
	binary.LittleEndian.PutUint32(data[14:18], e.bus.romCRC)

	offset := stateHeaderSize

	// M68K CPU
	if err := e.m68k.Serialize(data[offset:]); err != nil {
		return nil, err
	}
	offset += m68k.SerializeSize

	c := &stateCodec{mode: codecSave, buf: data, off: offset}
	e.bus.codec(c)
	e.cs.codec(c)
	e.rtc.codec(c)
	e.io.codec(c)
	e.codec(c)
	if c.err != nil {
		return nil, c.err
	}

	// Calculate and write data CRC32 (over everything after header)
	dataCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	binary.LittleEndian.PutUint32(data[18:22], dataCRC)

	return data, nil
}

// Deserialize restores emulator state from a save state byte slice.
// Region and fast RAM size are NOT restored; the state must come from a
// machine with the same configuration.
func (e *Emulator) Deserialize(data []byte) error {
	if err := e.VerifyState(data); err != nil {
		return err
	}

	offset := stateHeaderSize

	// M68K CPU
	if err := e.m68k.Deserialize(data[offset:]); err != nil {
		return err
	}
	offset += m68k.SerializeSize

	c := &stateCodec{mode: codecLoad, buf: data, off: offset}
	e.bus.codec(c)
	e.cs.codec(c)
	e.rtc.codec(c)
	e.io.codec(c)
	e.codec(c)
	return c.err
}

// VerifyState checks if a save state is valid without loading it.
func (e *Emulator) VerifyState(data []byte) error {
	expectedSize := e.SerializeSize()
	if len(data) < expectedSize {
		return errors.New("save state too short")
	}

	if string(data[0:12]) != stateMagic {
		return errors.New("invalid save state magic")
	}

	version := binary.LittleEndian.Uint16(data[12:14])
	if version > stateVersion {
		return errors.New("unsupported save state version")
	}

	romCRC := binary.LittleEndian.Uint32(data[14:18])
	if romCRC != e.bus.romCRC {
		return errors.New("save state is for a different ROM")
	}

	expectedCRC := binary.LittleEndian.Uint32(data[18:22])
	actualCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	if expectedCRC != actualCRC {
		return errors.New("save state data is corrupted")
	}

	return nil
}

// codec walks the bus RAM and overlay latch.
func (b *AmigaBus) codec(c *stateCodec) {
	c.Bytes(b.chipRAM[:])
	c.Bool(&b.overlay)
	fastLen := uint32(len(b.fastRAM))
	c.U32(&fastLen)
	if c.mode == codecLoad && int(fastLen) != len(b.fastRAM) {
		c.fail("save state fast RAM size does not match")
		return
	}
	c.Bytes(b.fastRAM)
}

// emulatorSerializeSize covers the inline Emulator state:
// cpuCarry(4) + irqLevel(1) + lineCycles(4) + samplePhase(8) + ideIRQ(1)
const emulatorSerializeSize = 18

// codec walks the inline Emulator state.
func (e *Emulator) codec(c *stateCodec) {
	c.Int(&e.cpuCarry)
	c.U8(&e.irqLevel)
	c.Int(&e.lineCycles)
	c.F64(&e.samplePhase)
	c.Bool(&e.ide.irq)
}
