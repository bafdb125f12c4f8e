package adapter

import (
	"testing"

	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/ema4k/emu"
)

func TestFactory_SystemInfo(t *testing.T) {
	info := (&Factory{}).SystemInfo()
	if info.ScreenWidth != emu.ScreenWidth || info.MaxScreenHeight != emu.MaxScreenHeight {
		t.Errorf("screen size: %dx%d", info.ScreenWidth, info.MaxScreenHeight)
	}
	if info.SerializeSize != emu.SerializeSize() {
		t.Errorf("serialize size: got %d, want %d", info.SerializeSize, emu.SerializeSize())
	}
	if len(info.CoreOptions) != 1 || info.CoreOptions[0].Key != "swap_ports" {
		t.Errorf("core options: %+v", info.CoreOptions)
	}
}

func TestFactory_CreateEmulatorRejectsBadImage(t *testing.T) {
	e, err := (&Factory{}).CreateEmulator(make([]byte, 100), emucore.RegionPAL)
	if err == nil {
		t.Error("expected error for wrong-size image")
	}
	if e != nil {
		t.Error("emulator should be nil on error")
	}
}

func TestFactory_DetectRegion(t *testing.T) {
	region, fromDB := (&Factory{}).DetectRegion(nil)
	if region != emucore.RegionPAL || fromDB {
		t.Errorf("got %v, %v", region, fromDB)
	}
}
