package emu

import (
	"encoding/binary"
	"testing"
)

func TestNormalizeKickstart_512K(t *testing.T) {
	rom := makeKickstart()
	out, err := NormalizeKickstart(rom)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(out) != kickstartSize {
		t.Fatalf("size: got %d, want %d", len(out), kickstartSize)
	}
	out[0x10] = 0xAA
	if rom[0x10] == 0xAA {
		t.Error("normalized image should be a copy")
	}
}

func TestNormalizeKickstart_256KMirrored(t *testing.T) {
	rom := make([]byte, kickstartSmallSize)
	binary.BigEndian.PutUint16(rom[0:], kickstartMagic256)
	rom[0x1234] = 0x5A

	out, err := NormalizeKickstart(rom)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(out) != kickstartSize {
		t.Fatalf("size: got %d, want %d", len(out), kickstartSize)
	}
	if out[0x1234] != 0x5A || out[kickstartSmallSize+0x1234] != 0x5A {
		t.Error("256KB image should appear in both halves")
	}
}

func TestNormalizeKickstart_BadSize(t *testing.T) {
	for _, n := range []int{0, 0x100, kickstartSize + 1, 0x100000} {
		if _, err := NormalizeKickstart(make([]byte, n)); err == nil {
			t.Errorf("size %d: expected error, got nil", n)
		}
	}
}

func TestValidateKickstartHeader_Valid(t *testing.T) {
	if err := ValidateKickstartHeader(makeKickstart()); err != nil {
		t.Errorf("512KB magic: expected nil, got %v", err)
	}

	rom := make([]byte, 8)
	binary.BigEndian.PutUint16(rom, kickstartMagic256)
	if err := ValidateKickstartHeader(rom); err != nil {
		t.Errorf("256KB magic: expected nil, got %v", err)
	}
}

func TestValidateKickstartHeader_Invalid(t *testing.T) {
	rom := makeKickstart()
	rom[0] = 0x00
	rom[1] = 0x00
	if err := ValidateKickstartHeader(rom); err == nil {
		t.Error("expected error for bad magic, got nil")
	}
}

func TestValidateKickstartHeader_TooShort(t *testing.T) {
	if err := ValidateKickstartHeader([]byte{0x11}); err == nil {
		t.Error("expected error for short image, got nil")
	}
}

func TestKickstartVersion(t *testing.T) {
	ver, rev, err := KickstartVersion(makeKickstart())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if ver != 40 || rev != 68 {
		t.Errorf("got %d.%d, want 40.68", ver, rev)
	}
}

func TestKickstartVersion_TooShort(t *testing.T) {
	if _, _, err := KickstartVersion(make([]byte, 0x0e)); err == nil {
		t.Error("expected error for short image, got nil")
	}
}

func TestNewEmulator_RejectsBadImage(t *testing.T) {
	if _, err := NewEmulator(make([]byte, 1000), RegionPAL); err == nil {
		t.Error("expected error for wrong-size image")
	}
}

func TestNewEmulator_AcceptsUnknownHeader(t *testing.T) {
	rom := makeKickstart()
	rom[0] = 0
	rom[1] = 0
	cfg := DefaultConfig()
	cfg.Quiet = true
	if _, err := NewEmulatorWithConfig(rom, cfg); err != nil {
		t.Errorf("unknown header should only warn, got %v", err)
	}
}
