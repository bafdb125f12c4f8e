package emu

import (
	"encoding/binary"
	"fmt"
)

const (
	kickstartSize      = 0x80000 // 512KB
	kickstartSmallSize = 0x40000 // 256KB, mirrored

	// Kickstart images begin with a magic word followed by a JMP.
	kickstartMagic512 = 0x1114
	kickstartMagic256 = 0x1111
)

// NormalizeKickstart validates a Kickstart image and returns a 512KB copy.
// 256KB images are mirrored into both halves.
func NormalizeKickstart(rom []byte) ([]byte, error) {
	switch len(rom) {
	case kickstartSize:
		out := make([]byte, kickstartSize)
		copy(out, rom)
		return out, nil
	case kickstartSmallSize:
		out := make([]byte, kickstartSize)
		copy(out, rom)
		copy(out[kickstartSmallSize:], rom)
		return out, nil
	default:
		return nil, fmt.Errorf("kickstart image must be 256KB or 512KB, got %d bytes", len(rom))
	}
}

// ValidateKickstartHeader checks the magic word at the start of the image.
func ValidateKickstartHeader(rom []byte) error {
	if len(rom) < 4 {
		return fmt.Errorf("kickstart image too short to contain header (%d bytes)", len(rom))
	}
	magic := binary.BigEndian.Uint16(rom[0:2])
	switch magic {
	case kickstartMagic512, kickstartMagic256:
		return nil
	default:
		return fmt.Errorf("unrecognized kickstart magic: %04X", magic)
	}
}

// KickstartVersion returns the version and revision stored at offset
// $0C, e.g. 40.68 for Kickstart 3.1 on the A4000.
func KickstartVersion(rom []byte) (version, revision uint16, err error) {
	if len(rom) < 0x10 {
		return 0, 0, fmt.Errorf("kickstart image too short to contain version (%d bytes)", len(rom))
	}
	return binary.BigEndian.Uint16(rom[0x0c:0x0e]), binary.BigEndian.Uint16(rom[0x0e:0x10]), nil
}
