package emu

import (
	"testing"

	emucore "github.com/user-none/eblitui/api"
)

func TestDetectRegion_Kickstart(t *testing.T) {
	if got := DetectRegion(makeKickstart()); got != RegionPAL {
		t.Errorf("kickstart: got %v, want PAL", got)
	}
}

func TestDetectRegion_Empty(t *testing.T) {
	if got := DetectRegion(nil); got != DefaultRegion() {
		t.Errorf("empty: got %v, want default", got)
	}
}

func TestGetTimingForRegion(t *testing.T) {
	ntsc := GetTimingForRegion(RegionNTSC)
	if ntsc.FPS != 60 || ntsc.Scanlines != 263 || ntsc.ClockHz != NTSCClockHz {
		t.Errorf("NTSC timing: got %+v", ntsc)
	}
	pal := GetTimingForRegion(RegionPAL)
	if pal.FPS != 50 || pal.Scanlines != 313 || pal.ClockHz != PALClockHz {
		t.Errorf("PAL timing: got %+v", pal)
	}
}

func TestRegion_AliasesCore(t *testing.T) {
	var r emucore.Region = RegionNTSC
	if r != emucore.RegionNTSC {
		t.Error("RegionNTSC should equal emucore.RegionNTSC")
	}
}
