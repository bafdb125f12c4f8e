package emu

import (
	"encoding/binary"
	"testing"

	"github.com/user-none/go-chip-m68k"
)

const testResetPC = 0xf80100

// makeKickstart builds a 512KB image with the Kickstart magic, a reset
// PC pointing at a NOP loop and version 40.68.
func makeKickstart() []byte {
	rom := make([]byte, kickstartSize)
	binary.BigEndian.PutUint16(rom[0:], kickstartMagic512)
	binary.BigEndian.PutUint16(rom[2:], 0x4ef9) // JMP
	binary.BigEndian.PutUint32(rom[4:], testResetPC)
	binary.BigEndian.PutUint16(rom[0x0c:], 40)
	binary.BigEndian.PutUint16(rom[0x0e:], 68)
	pc := testResetPC & romMask
	binary.BigEndian.PutUint16(rom[pc:], 0x4e71)   // NOP
	binary.BigEndian.PutUint16(rom[pc+2:], 0x60fc) // BRA.S to the NOP
	return rom
}

// makeTestBus creates an AmigaBus with all devices attached.
func makeTestBus(t *testing.T, fastRAM int) *AmigaBus {
	t.Helper()
	cs := newTestChipset(false)
	rtc := newTestRTC()
	ide := newTestIDE(nil)
	io := NewIO(cs)
	bus, err := NewAmigaBus(makeKickstart(), fastRAM, cs, rtc, ide, io)
	if err != nil {
		t.Fatalf("NewAmigaBus: %v", err)
	}
	cs.SetChipMemory(bus)
	return bus
}

func TestAmigaBus_OverlayAtReset(t *testing.T) {
	bus := makeTestBus(t, 0)
	if !bus.Overlay() {
		t.Fatal("overlay not active at power-on")
	}
	if got := bus.Read(m68k.Long, 4); got != testResetPC {
		t.Errorf("reset PC through overlay: got 0x%08X", got)
	}
}

func TestAmigaBus_WritesReachChipRAMUnderOverlay(t *testing.T) {
	bus := makeTestBus(t, 0)
	bus.Write(m68k.Word, 0x300, 0xabcd)
	if got := bus.Read(m68k.Word, 0x300); got != 0 {
		t.Errorf("read under overlay: got 0x%04X, want ROM data", got)
	}
	if got := bus.ReadChipWord(0x300); got != 0xabcd {
		t.Errorf("chip RAM: got 0x%04X, want 0xABCD", got)
	}
}

func TestAmigaBus_ROMAccessClearsOverlay(t *testing.T) {
	bus := makeTestBus(t, 0)
	bus.Write(m68k.Long, 0x200, 0x12345678)
	bus.Read(m68k.Word, romBase)
	if bus.Overlay() {
		t.Fatal("overlay still active after ROM access")
	}
	if got := bus.Read(m68k.Long, 0x200); got != 0x12345678 {
		t.Errorf("chip RAM after overlay: got 0x%08X", got)
	}
}

func TestAmigaBus_CIAOverlayBit(t *testing.T) {
	bus := makeTestBus(t, 0)
	bus.Write(m68k.Byte, 0xbfe201, ciaAOverlay) // DDRA: OVL is an output
	bus.Write(m68k.Byte, 0xbfe001, 0)           // PRA: OVL low
	if bus.Overlay() {
		t.Error("overlay still active after CIA-A OVL cleared")
	}
	bus.Write(m68k.Byte, 0xbfe001, ciaAOverlay)
	if !bus.Overlay() {
		t.Error("overlay not restored by CIA-A OVL")
	}
}

func TestAmigaBus_ResetRestoresOverlay(t *testing.T) {
	bus := makeTestBus(t, 0)
	bus.SetOverlay(false)
	bus.Write(m68k.Byte, 0x10, 0x55)
	bus.Reset()
	if !bus.Overlay() {
		t.Error("overlay not restored by reset")
	}
	if bus.chipRAM[0x10] != 0x55 {
		t.Error("chip RAM cleared by reset")
	}
	bus.Clear()
	if bus.chipRAM[0x10] != 0 {
		t.Error("chip RAM not cleared")
	}
}

func TestAmigaBus_ROM(t *testing.T) {
	bus := makeTestBus(t, 0)
	if got := bus.Read(m68k.Word, romBase); got != kickstartMagic512 {
		t.Errorf("ROM magic: got 0x%04X", got)
	}
	if got := bus.Read(m68k.Word, 0xfffffe); got != 0 {
		t.Errorf("ROM end: got 0x%04X", got)
	}
	bus.Write(m68k.Word, romBase, 0)
	if got := bus.Read(m68k.Word, romBase); got != kickstartMagic512 {
		t.Error("ROM is writable")
	}
}

func TestAmigaBus_ChipRAMMirrorsAt24Bits(t *testing.T) {
	bus := makeTestBus(t, 0)
	bus.SetOverlay(false)
	bus.Write(m68k.Word, 0x01000010, 0x4242)
	if got := bus.Read(m68k.Word, 0x10); got != 0x4242 {
		t.Errorf("24-bit wrap: got 0x%04X", got)
	}
}

func TestAmigaBus_CustomRegisters(t *testing.T) {
	bus := makeTestBus(t, 0)
	bus.Write(m68k.Word, 0xdff180, 0x0f00)
	if bus.cs.Palette.Color[0] != 0xff0000 {
		t.Errorf("COLOR00 via bus: 0x%06X", bus.cs.Palette.Color[0])
	}
	bus.Write(m68k.Word, 0xdff382, 0x00f0) // mirror of COLOR01
	if bus.cs.Palette.Color[1] != 0x00ff00 {
		t.Errorf("COLOR01 via mirror: 0x%06X", bus.cs.Palette.Color[1])
	}
	if got := bus.Read(m68k.Word, 0xdff07c); got != lisaVersion {
		t.Errorf("DENISEID via bus: 0x%04X", got)
	}
}

func TestAmigaBus_RTC(t *testing.T) {
	bus := makeTestBus(t, 0)
	if got := bus.Read(m68k.Byte, rtcBase+rtcSecond1*4+3); got != 9 {
		t.Errorf("RTC seconds via bus: got %d", got)
	}
}

func TestAmigaBus_IDE(t *testing.T) {
	bus := makeTestBus(t, 0)
	if got := bus.Read(m68k.Byte, ideBase+ideTaskFile+7*4); got != noDriveStatus {
		t.Errorf("IDE status via bus: got 0x%02X", got)
	}
}

func TestAmigaBus_FastRAM(t *testing.T) {
	bus := makeTestBus(t, 1<<20)
	base := uint32(fastRAMEnd - 1<<20)
	bus.Write(m68k.Long, base, 0xdeadbeef)
	if got := bus.Read(m68k.Long, base); got != 0xdeadbeef {
		t.Errorf("fast RAM: got 0x%08X", got)
	}
	if bus.fastRAM[0] != 0xde {
		t.Error("fast RAM not big-endian")
	}
	bus.Write(m68k.Long, fastRAMEnd-2, 0x11223344)
	if got := bus.Read(m68k.Long, fastRAMEnd-2); got != 0x11220000 {
		t.Errorf("fast RAM end: got 0x%08X", got)
	}
}

func TestAmigaBus_UnmappedReadsZero(t *testing.T) {
	bus := makeTestBus(t, 0)
	if got := bus.Read(m68k.Word, 0x400000); got != 0 {
		t.Errorf("unmapped read: got 0x%04X", got)
	}
}

func TestNewAmigaBus_Errors(t *testing.T) {
	cs := newTestChipset(false)
	io := NewIO(cs)
	if _, err := NewAmigaBus(make([]byte, 100), 0, cs, newTestRTC(), newTestIDE(nil), io); err == nil {
		t.Error("expected error for short ROM")
	}
	if _, err := NewAmigaBus(makeKickstart(), MaxFastRAMSize+1, cs, newTestRTC(), newTestIDE(nil), io); err == nil {
		t.Error("expected error for oversized fast RAM")
	}
}

func TestAmigaBus_ROMCRC(t *testing.T) {
	a := makeTestBus(t, 0)
	b := makeTestBus(t, 0)
	if a.GetROMCRC32() != b.GetROMCRC32() || a.GetROMCRC32() == 0 {
		t.Errorf("ROM CRC: 0x%08X 0x%08X", a.GetROMCRC32(), b.GetROMCRC32())
	}
}
