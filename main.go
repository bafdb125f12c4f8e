package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	emubridge "github.com/user-none/ema4k/bridge/ebiten"
	"github.com/user-none/ema4k/cli"
	"github.com/user-none/ema4k/emu"
	"github.com/user-none/ema4k/trace"
)

func main() {
	romPath := flag.String("rom", "", "path to Kickstart image (required)")
	regionFlag := flag.String("region", "auto", "region: auto, ntsc, or pal")
	fastRAM := flag.Int("fastram", 0, "motherboard fast RAM in MB (0-112)")
	clockFlag := flag.String("clock", "host", "real-time clock source: host or virtual")
	swapPorts := flag.Bool("swap-ports", false, "put player 1 on the mouse port")
	traceRegs := flag.Bool("trace", false, "print custom chip register writes")
	traceReads := flag.Bool("trace-reads", false, "also print register reads (with -trace)")
	traceSkip := flag.String("trace-skip", "", "comma separated registers to leave out of the trace")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("Kickstart path is required. Usage: ema4k -rom <path>")
	}

	romData, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("Failed to load Kickstart: %v", err)
	}

	cfg := emu.DefaultConfig()

	switch strings.ToLower(*regionFlag) {
	case "auto":
		cfg.Region = emu.DetectRegion(romData)
	case "ntsc":
		cfg.Region = emu.RegionNTSC
	case "pal":
		cfg.Region = emu.RegionPAL
	default:
		log.Fatalf("Invalid region: %s (use auto, ntsc, or pal)", *regionFlag)
	}

	switch strings.ToLower(*clockFlag) {
	case "host":
		cfg.Clock = emu.ClockHost
	case "virtual":
		cfg.Clock = emu.ClockVirtual
	default:
		log.Fatalf("Invalid clock: %s (use host or virtual)", *clockFlag)
	}

	cfg.FastRAMSize = *fastRAM << 20

	if *traceRegs {
		p := trace.NewPrinter(os.Stdout)
		p.Reads = *traceReads
		for _, name := range strings.Split(*traceSkip, ",") {
			name = strings.ToUpper(strings.TrimSpace(name))
			if name != "" && !p.SkipName(name) {
				log.Printf("Unknown register in -trace-skip: %s", name)
			}
		}
		cfg.Tracer = p
	}

	e, err := emubridge.NewEmulator(romData, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize emulator: %v", err)
	}

	e.SetSwapPorts(*swapPorts)

	if ver, rev, err := emu.KickstartVersion(romData); err == nil {
		log.Printf("%s, Kickstart %d.%d", e, ver, rev)
	}

	// Load clock RAM save file if it exists
	nvrPath := strings.TrimSuffix(*romPath, filepath.Ext(*romPath)) + ".nvr"
	if e.HasSRAM() {
		if data, err := os.ReadFile(nvrPath); err == nil {
			e.SetSRAM(data)
		}
	}

	ebiten.SetWindowSize(emu.ScreenWidth*2, emu.DefaultScreenHeight*2)
	ebiten.SetWindowTitle(emu.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(348, 348, -1, -1)
	ebiten.SetTPS(60)

	runner := cli.NewRunner(e)
	defer runner.Close()
	defer e.Close()

	// Save clock RAM on exit
	defer func() {
		if e.HasSRAM() {
			if data := e.GetSRAM(); data != nil {
				os.WriteFile(nvrPath, data, 0644)
			}
		}
	}()

	if err := ebiten.RunGame(runner); err != nil {
		log.Fatal(err)
	}
}
