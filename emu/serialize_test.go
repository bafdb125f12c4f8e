package emu

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/user-none/go-chip-m68k"
)

// createTestEmulator creates a quiet NTSC Emulator running the NOP loop
// of makeKickstart.
func createTestEmulator() *Emulator {
	cfg := DefaultConfig()
	cfg.Region = RegionNTSC
	cfg.Quiet = true
	e, err := NewEmulatorWithConfig(makeKickstart(), cfg)
	if err != nil {
		panic("createTestEmulator: " + err.Error())
	}
	return e
}

func TestSerializeSize(t *testing.T) {
	size1 := SerializeSize()
	size2 := SerializeSize()

	if size1 != size2 {
		t.Errorf("SerializeSize not consistent: %d vs %d", size1, size2)
	}

	if size1 < stateHeaderSize+chipRAMSize {
		t.Errorf("SerializeSize too small: %d", size1)
	}

	e := createTestEmulator()
	if e.SerializeSize() != size1 {
		t.Errorf("default machine size %d, package size %d", e.SerializeSize(), size1)
	}
}

func TestSerializeSize_MatchesCodec(t *testing.T) {
	e := createTestEmulator()
	n := codecSize(e.cs.codec)
	if n != ChipsetSerializeSize {
		t.Errorf("chipset codec %d bytes, ChipsetSerializeSize %d", n, ChipsetSerializeSize)
	}
	if n := codecSize(e.rtc.codec); n != RTCSerializeSize {
		t.Errorf("RTC codec %d bytes, RTCSerializeSize %d", n, RTCSerializeSize)
	}
	if n := codecSize(e.io.codec); n != IOSerializeSize {
		t.Errorf("IO codec %d bytes, IOSerializeSize %d", n, IOSerializeSize)
	}
	if n := codecSize(e.codec); n != emulatorSerializeSize {
		t.Errorf("emulator codec %d bytes, emulatorSerializeSize %d", n, emulatorSerializeSize)
	}
	if n := codecSize(e.bus.codec); n != busSerializeFixedSize {
		t.Errorf("bus codec %d bytes, busSerializeFixedSize %d", n, busSerializeFixedSize)
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	base := createTestEmulator()

	// Run a few M68K steps to change CPU state
	for i := 0; i < 10; i++ {
		base.m68k.Step()
	}

	// Write recognizable values to chip RAM and the chipset via the bus
	base.bus.WriteCycle(0, m68k.Byte, 0x1000, 0xAB)
	base.bus.WriteCycle(0, m68k.Byte, 0x1001, 0xCD)
	base.bus.WriteCycle(0, m68k.Word, 0xDFF180, 0x0F80)
	base.bus.WriteCycle(0, m68k.Word, 0xDFF09A, 0xC020)
	base.cs.Advance(1000)
	cycles := base.cs.Timing().Cycles()

	// Serialize
	state, err := base.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	// Corrupt emulator state
	base.bus.WriteCycle(0, m68k.Byte, 0x1000, 0xFF)
	base.bus.WriteCycle(0, m68k.Word, 0xDFF180, 0x0000)
	base.cs.Reset()
	base.cs.Advance(50)

	// Deserialize
	err = base.Deserialize(state)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	// Verify RAM was restored
	if got := base.bus.ReadChipWord(0x1000); got != 0xABCD {
		t.Errorf("chip RAM[0x1000]: expected 0xABCD, got 0x%04X", got)
	}

	// Verify chipset was restored
	if base.cs.Palette.Color[0] != 0xff8800 {
		t.Errorf("COLOR00: expected 0xFF8800, got 0x%06X", base.cs.Palette.Color[0])
	}
	if base.cs.IRQ.Enable != IntMasterEnable|IntVertBlank {
		t.Errorf("INTENA: got 0x%04X", base.cs.IRQ.Enable)
	}
	if base.cs.Timing().Cycles() != cycles {
		t.Errorf("timing cycles: expected %d, got %d", cycles, base.cs.Timing().Cycles())
	}
}

func TestSerialize_ChipsetRoundTrip(t *testing.T) {
	cs := newTestChipset(false)
	cs.WriteWord(regBPLCON0, 0x4000)
	cs.WriteWord(regCOP1LCL, 0x1234)
	cs.WriteWord(regBLTSIZE, 3<<6|3)
	cs.Keyboard.Length = 2
	cs.Keyboard.Buffer[1] = 0x45
	cs.Drive[2].Track = 40
	cs.Advance(500)

	buf := make([]byte, ChipsetSerializeSize)
	if err := cs.Serialize(buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	cs2 := newTestChipset(false)
	if err := cs2.Deserialize(buf); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if cs2.Display != cs.Display {
		t.Error("display state differs")
	}
	if cs2.Copper != cs.Copper || cs2.Blitter != cs.Blitter {
		t.Error("copper or blitter state differs")
	}
	if cs2.Keyboard != cs.Keyboard || cs2.Drive != cs.Drive {
		t.Error("keyboard or drive state differs")
	}
	if cs2.Timing().Cycles() != 500 {
		t.Errorf("timing cycles: got %d, want 500", cs2.Timing().Cycles())
	}
}

func TestSerialize_ChipsetBufferTooSmall(t *testing.T) {
	cs := newTestChipset(false)
	if err := cs.Serialize(make([]byte, 10)); err == nil {
		t.Error("expected error for short buffer")
	}
}

func TestSerialize_FastRAM(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quiet = true
	cfg.FastRAMSize = 1 << 20
	e, err := NewEmulatorWithConfig(makeKickstart(), cfg)
	if err != nil {
		t.Fatalf("NewEmulatorWithConfig: %v", err)
	}
	if e.SerializeSize() != SerializeSize()+1<<20 {
		t.Errorf("size with fast RAM: %d", e.SerializeSize())
	}

	addr := uint32(fastRAMEnd - 16)
	e.bus.Write(m68k.Long, addr, 0xcafef00d)
	state, err := e.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	e.bus.Write(m68k.Long, addr, 0)
	if err := e.Deserialize(state); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got := e.bus.Read(m68k.Long, addr); got != 0xcafef00d {
		t.Errorf("fast RAM: got 0x%08X", got)
	}

	// A machine without fast RAM cannot load this state.
	if err := createTestEmulator().Deserialize(state); err == nil {
		t.Error("expected error loading fast RAM state into chip-only machine")
	}
}

func TestVerifyState_ValidState(t *testing.T) {
	base := createTestEmulator()

	state, err := base.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	err = base.VerifyState(state)
	if err != nil {
		t.Errorf("VerifyState should pass for valid state: %v", err)
	}
}

func TestVerifyState_InvalidMagic(t *testing.T) {
	base := createTestEmulator()

	state, err := base.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	// Corrupt magic bytes
	state[0] = 'X'

	err = base.VerifyState(state)
	if err == nil {
		t.Error("VerifyState should reject invalid magic bytes")
	}
}

func TestVerifyState_UnsupportedVersion(t *testing.T) {
	base := createTestEmulator()

	state, err := base.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	// Set a future version number
	binary.LittleEndian.PutUint16(state[12:14], 9999)

	err = base.VerifyState(state)
	if err == nil {
		t.Error("VerifyState should reject unsupported version")
	}
}

func TestVerifyState_CorruptData(t *testing.T) {
	base := createTestEmulator()

	state, err := base.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	// Corrupt state data (after header)
	state[stateHeaderSize+5] ^= 0xFF

	err = base.VerifyState(state)
	if err == nil {
		t.Error("VerifyState should reject corrupted data")
	}
}

func TestVerifyState_WrongROM(t *testing.T) {
	base1 := createTestEmulator()

	state, err := base1.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	// Same header, different contents
	differentROM := makeKickstart()
	differentROM[0x1000] = 0x42

	base2, err := NewEmulator(differentROM, RegionNTSC)
	if err != nil {
		t.Fatalf("NewEmulator failed: %v", err)
	}

	err = base2.VerifyState(state)
	if err == nil {
		t.Error("VerifyState should reject state from different ROM")
	}
}

func TestVerifyState_TooShort(t *testing.T) {
	base := createTestEmulator()

	// Create data smaller than header
	state := make([]byte, stateHeaderSize-1)

	err := base.VerifyState(state)
	if err == nil {
		t.Error("VerifyState should reject data smaller than header")
	}
}

func TestDeserialize_PreservesRegion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quiet = true

	// Create NTSC emulator and serialize
	cfg.Region = RegionNTSC
	baseNTSC, err := NewEmulatorWithConfig(makeKickstart(), cfg)
	if err != nil {
		t.Fatalf("NewEmulator NTSC failed: %v", err)
	}

	state, err := baseNTSC.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	// Create PAL emulator with same ROM
	cfg.Region = RegionPAL
	basePAL, err := NewEmulatorWithConfig(makeKickstart(), cfg)
	if err != nil {
		t.Fatalf("NewEmulator PAL failed: %v", err)
	}

	if basePAL.GetRegion() != RegionPAL {
		t.Fatal("Initial region should be PAL")
	}

	// Load NTSC state into PAL emulator
	err = basePAL.Deserialize(state)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	// Region should still be PAL
	if basePAL.GetRegion() != RegionPAL || basePAL.cs.NTSC() {
		t.Errorf("Region should be preserved as PAL, got %v", basePAL.GetRegion())
	}
}

func TestSerialize_StateIntegrity(t *testing.T) {
	base := createTestEmulator()

	state, err := base.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	// Check magic bytes
	if string(state[0:12]) != stateMagic {
		t.Errorf("Magic bytes: expected %q, got %q", stateMagic, string(state[0:12]))
	}

	// Check version
	version := binary.LittleEndian.Uint16(state[12:14])
	if version != stateVersion {
		t.Errorf("Version: expected %d, got %d", stateVersion, version)
	}

	// Verify ROM CRC32 matches
	romCRC := binary.LittleEndian.Uint32(state[14:18])
	expectedROMCRC := base.bus.GetROMCRC32()
	if romCRC != expectedROMCRC {
		t.Errorf("ROM CRC32: expected 0x%08X, got 0x%08X", expectedROMCRC, romCRC)
	}

	// Verify data CRC32
	dataCRC := binary.LittleEndian.Uint32(state[18:22])
	calculatedCRC := crc32.ChecksumIEEE(state[stateHeaderSize:])
	if dataCRC != calculatedCRC {
		t.Errorf("Data CRC32: expected 0x%08X, got 0x%08X", calculatedCRC, dataCRC)
	}
}
