package main

import (
	libretro "github.com/user-none/eblitui/libretro"
	"github.com/user-none/ema4k/adapter"
)

func init() {
	libretro.RegisterFactory(&adapter.Factory{}, []libretro.RetropadMapping{
		{RetroID: libretro.JoypadB, BitID: 4}, // Fire
		{RetroID: libretro.JoypadA, BitID: 5}, // Fire 2
	})
}

func main() {}
