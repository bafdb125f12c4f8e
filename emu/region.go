package emu

import emucore "github.com/user-none/eblitui/api"

// Region is an alias for emucore.Region so internal code compiles unchanged.
type Region = emucore.Region

const (
	RegionNTSC = emucore.RegionNTSC
	RegionPAL  = emucore.RegionPAL
)

// RegionTiming holds the frame timing of a video standard. The DMA clock
// drives everything; the 68000 core runs at twice that rate.
type RegionTiming struct {
	ClockHz   float64 // DMA (colour) clock
	Scanlines int     // lines in a long frame
	FPS       int     // nominal frames per second
}

// NTSC timing: 3.579545 MHz, 263 lines, 60 Hz
var NTSCTiming = RegionTiming{
	ClockHz:   NTSCClockHz,
	Scanlines: ntscLongFrame,
	FPS:       60,
}

// PAL timing: 3.546895 MHz, 313 lines, 50 Hz
var PALTiming = RegionTiming{
	ClockHz:   PALClockHz,
	Scanlines: palLongFrame,
	FPS:       50,
}

// GetTimingForRegion returns the appropriate timing constants
func GetTimingForRegion(r Region) RegionTiming {
	if r == RegionNTSC {
		return NTSCTiming
	}
	return PALTiming
}

// DetectRegion returns the video standard for a Kickstart image. Kickstart
// supports both standards and reads the Agnus/Alice jumper at boot, so the
// image carries no region; the default is returned.
func DetectRegion(rom []byte) Region {
	return DefaultRegion()
}

// DefaultRegion returns the default region (PAL).
func DefaultRegion() Region {
	return RegionPAL
}
