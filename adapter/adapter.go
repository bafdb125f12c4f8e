package adapter

import (
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/ema4k/emu"
)

// Compile-time interface check.
var _ emucore.CoreFactory = (*Factory)(nil)

// Factory implements emucore.CoreFactory for the A4000 emulator.
type Factory struct{}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:            "ema4k",
		ConsoleName:     "Commodore Amiga 4000",
		Extensions:      []string{".rom", ".bin"},
		ScreenWidth:     emu.ScreenWidth,
		MaxScreenHeight: emu.MaxScreenHeight,
		AspectRatio:     4.0 / 3.0,
		SampleRate:      emu.SampleRate,
		Buttons: []emucore.Button{
			{Name: "Fire", ID: 4, DefaultKey: "J", DefaultPad: "A"},
			{Name: "Fire 2", ID: 5, DefaultKey: "K", DefaultPad: "B"},
		},
		Players: 2,
		CoreOptions: []emucore.CoreOption{
			{
				Key:         "swap_ports",
				Label:       "Swap Joystick Ports",
				Description: "Put player 1 on the mouse port",
				Type:        emucore.CoreOptionBool,
				Default:     "false",
				Category:    emucore.CoreOptionCategoryInput,
			},
		},
		RDBName:       "Commodore - Amiga",
		ThumbnailRepo: "Commodore_-_Amiga",
		DataDirName:   "ema4k",
		ConsoleID:     53,
		CoreName:      emu.Name,
		CoreVersion:   emu.Version,
		SerializeSize: emu.SerializeSize(),
	}
}

// CreateEmulator creates a new emulator instance with the given Kickstart
// image and region.
func (f *Factory) CreateEmulator(rom []byte, region emucore.Region) (emucore.Emulator, error) {
	e, err := emu.NewEmulator(rom, region)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// DetectRegion returns the default video standard. Kickstart images carry
// no region, so the bool return is false.
func (f *Factory) DetectRegion(rom []byte) (emucore.Region, bool) {
	return emu.DetectRegion(rom), false
}
