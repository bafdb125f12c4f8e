//go:build !libretro && !ios

package main

import (
	"flag"
	"log"

	"github.com/user-none/eblitui/standalone"
	"github.com/user-none/ema4k/adapter"
)

func main() {
	romPath := flag.String("rom", "", "path to Kickstart image (opens UI if not provided)")
	regionFlag := flag.String("region", "auto", "region: auto, ntsc, or pal")
	swapPorts := flag.Bool("swap-ports", false, "put player 1 on the mouse port")
	flag.Parse()

	factory := &adapter.Factory{}

	if *romPath != "" {
		options := map[string]string{}
		if *swapPorts {
			options["swap_ports"] = "true"
		} else {
			options["swap_ports"] = "false"
		}
		if err := standalone.RunDirect(factory, *romPath, *regionFlag, options); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := standalone.Run(factory); err != nil {
		log.Fatal(err)
	}
}
