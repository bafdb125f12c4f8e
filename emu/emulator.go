package emu

import (
	"fmt"
	"image"
	"log"
	"time"

	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/go-chip-m68k"
)

// Compile-time interface checks.
var _ emucore.Emulator = (*Emulator)(nil)
var _ emucore.SaveStater = (*Emulator)(nil)
var _ emucore.BatterySaver = (*Emulator)(nil)
var _ emucore.MemoryInspector = (*Emulator)(nil)
var _ emucore.MemoryMapper = (*Emulator)(nil)

// Display constants. Each DMA cycle inside the visible window covers two
// lores pixels.
const (
	ScreenWidth         = 320
	DefaultScreenHeight = 256
	MaxScreenHeight     = 256

	ntscScreenHeight = 200
	visibleFirstX    = 0x40
	visibleFirstY    = 0x2c
	pixelsPerCycle   = 2
)

// CPU pacing. The 68000 runs at twice the DMA clock and is stepped in
// small chunks so the chipset stays close to the instruction stream.
const (
	cpuCyclesPerDMACycle = 2
	cpuChunkCycles       = 16
)

// ClockSource selects what the real-time clock reports.
type ClockSource int

const (
	// ClockHost reads the host wall clock.
	ClockHost ClockSource = iota
	// ClockVirtual starts at Config.StartTime and advances with emulated
	// uptime, so runs are reproducible.
	ClockVirtual
)

// Config holds the machine configuration fixed at construction.
type Config struct {
	Region      Region
	FastRAMSize int // bytes, 0 to MaxFastRAMSize
	Clock       ClockSource
	StartTime   time.Time
	Drive       DriveInterface // nil for an empty IDE bus
	Tracer      Tracer
	Quiet       bool
}

// DefaultConfig returns a PAL machine with chip RAM only and the host
// clock.
func DefaultConfig() Config {
	return Config{Region: DefaultRegion(), Clock: ClockHost}
}

// Emulator is a complete A4000 machine: CPU, memory map, AGA chipset,
// real-time clock, IDE bridge and game ports.
type Emulator struct {
	m68k *m68k.CPU
	bus  *AmigaBus
	cs   *Chipset
	rtc  *RTC
	ide  *IDEBridge
	io   *IO

	config Config
	region Region
	timing RegionTiming

	// CPU cycles not yet converted to DMA cycles
	cpuCarry int

	// Interrupt level last reported by the chipset. Paula drives a level
	// line, so it is presented to the CPU again before every chunk.
	irqLevel uint8

	framebuffer  *image.RGBA
	activeHeight int
	frameDone    bool

	lineCycles  int
	samplePhase float64
	audioBuffer []int16
}

// NewEmulator creates a machine with the default configuration for
// region.
func NewEmulator(rom []byte, region Region) (*Emulator, error) {
	cfg := DefaultConfig()
	cfg.Region = region
	return NewEmulatorWithConfig(rom, cfg)
}

// NewEmulatorWithConfig creates a machine from a Kickstart image and cfg.
func NewEmulatorWithConfig(rom []byte, cfg Config) (*Emulator, error) {
	kick, err := NormalizeKickstart(rom)
	if err != nil {
		return nil, err
	}
	if err := ValidateKickstartHeader(kick); err != nil && !cfg.Quiet {
		log.Printf("emu: %v", err)
	}

	ntsc := cfg.Region == RegionNTSC
	e := &Emulator{
		config:      cfg,
		region:      cfg.Region,
		timing:      GetTimingForRegion(cfg.Region),
		audioBuffer: make([]int16, 0, audioBufferFrames),
	}

	e.cs = NewChipset(ntsc, nil)
	e.cs.SetQuiet(cfg.Quiet)
	if cfg.Tracer != nil {
		e.cs.SetTracer(cfg.Tracer)
	}

	e.rtc = NewRTC(e.clock())
	e.rtc.SetQuiet(cfg.Quiet)

	e.ide = NewIDEBridge(cfg.Drive)
	e.ide.SetQuiet(cfg.Quiet)
	e.ide.SetInterruptRaiser(&e.cs.IRQ)

	e.io = NewIO(e.cs)

	e.bus, err = NewAmigaBus(kick, cfg.FastRAMSize, e.cs, e.rtc, e.ide, e.io)
	if err != nil {
		return nil, err
	}
	e.cs.SetChipMemory(e.bus)
	e.cs.SetInterruptSink(e)
	e.cs.SetVideoSink(e)

	e.activeHeight = DefaultScreenHeight
	if ntsc {
		e.activeHeight = ntscScreenHeight
	}
	e.framebuffer = image.NewRGBA(image.Rect(0, 0, ScreenWidth, MaxScreenHeight))

	e.m68k = m68k.New(e.bus)
	return e, nil
}

// clock returns the time source for the real-time clock.
func (e *Emulator) clock() func() time.Time {
	if e.config.Clock != ClockVirtual {
		return time.Now
	}
	start := e.config.StartTime
	if start.IsZero() {
		start = time.Now()
	}
	return func() time.Time {
		return start.Add(e.cs.Timing().Elapsed())
	}
}

// Reset performs a cold reset: Kickstart is overlaid at address 0 again,
// the chipset and CIAs are cleared and the CPU fetches its reset vectors.
// RAM contents and uptime are kept.
func (e *Emulator) Reset() {
	e.bus.Reset()
	e.cs.Reset()
	e.io.Reset()
	e.ide.Reset()
	e.m68k = m68k.New(e.bus)
	e.cpuCarry = 0
	e.irqLevel = 0
}

// RunFrame executes one frame of emulation.
func (e *Emulator) RunFrame() {
	e.audioBuffer = e.audioBuffer[:0]
	e.frameDone = false

	for !e.frameDone {
		if e.irqLevel > 0 {
			e.m68k.RequestInterrupt(e.irqLevel, nil)
		}

		consumed := e.m68k.StepCycles(cpuChunkCycles)
		if consumed == 0 {
			// CPU halted (double bus fault); the beam keeps running.
			consumed = cpuChunkCycles
		}

		total := e.cpuCarry + consumed
		e.cpuCarry = total % cpuCyclesPerDMACycle
		e.cs.Advance(total / cpuCyclesPerDMACycle)
	}
}

// SetInterruptLevel implements InterruptSink.
func (e *Emulator) SetInterruptLevel(level uint8) {
	e.irqLevel = level
}

// DrawCycle implements VideoSink. The background colour is painted over
// the visible window.
func (e *Emulator) DrawCycle(x, y uint16, rgb uint32) {
	e.lineCycles++

	if x < visibleFirstX || y < visibleFirstY {
		return
	}
	px := int(x-visibleFirstX) * pixelsPerCycle
	py := int(y - visibleFirstY)
	if px >= ScreenWidth || py >= e.activeHeight {
		return
	}

	pix := e.framebuffer.Pix
	off := py*e.framebuffer.Stride + px*4
	r, g, b := uint8(rgb>>16), uint8(rgb>>8), uint8(rgb)
	for i := 0; i < pixelsPerCycle; i++ {
		pix[off] = r
		pix[off+1] = g
		pix[off+2] = b
		pix[off+3] = 0xff
		off += 4
	}
}

// ScanlineDone implements VideoSink.
func (e *Emulator) ScanlineDone(y uint16) {
	e.queueLineAudio()
}

// FrameDone implements VideoSink.
func (e *Emulator) FrameDone() {
	e.frameDone = true
}

// SetInput unpacks a button bitmask and sets joystick state for the given
// player. Bit 4 is fire and bit 5 the second button.
func (e *Emulator) SetInput(player int, buttons uint32) {
	up := buttons&(1<<emucore.ButtonUp) != 0
	down := buttons&(1<<emucore.ButtonDown) != 0
	left := buttons&(1<<emucore.ButtonLeft) != 0
	right := buttons&(1<<emucore.ButtonRight) != 0
	fire := buttons&(1<<4) != 0
	fire2 := buttons&(1<<5) != 0

	switch player {
	case 0:
		e.io.InputP1.Set(up, down, left, right, fire, fire2)
	case 1:
		e.io.InputP2.Set(up, down, left, right, fire, fire2)
	}
	e.io.UpdatePorts()
}

// SetSwapPorts moves player 1 to game port 1 and player 2 to port 2.
func (e *Emulator) SetSwapPorts(swap bool) {
	e.io.SwapPorts = swap
	e.io.UpdatePorts()
}

// GetFramebuffer returns raw RGBA pixel data for current frame.
func (e *Emulator) GetFramebuffer() []byte {
	return e.framebuffer.Pix
}

// GetFramebufferStride returns the stride (bytes per row) of the framebuffer.
func (e *Emulator) GetFramebufferStride() int {
	return e.framebuffer.Stride
}

// GetActiveHeight returns the visible display height.
func (e *Emulator) GetActiveHeight() int {
	return e.activeHeight
}

// GetRegion returns the emulator's region setting.
func (e *Emulator) GetRegion() Region {
	return e.region
}

// GetTiming returns FPS and scanline count for the current region.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{
		FPS:       e.timing.FPS,
		Scanlines: e.timing.Scanlines,
	}
}

// SetRegion keeps the video standard chosen at construction. Alice's
// clock is fixed by the crystal, so a change needs a new machine.
func (e *Emulator) SetRegion(region Region) {
	if region != e.region && !e.config.Quiet {
		log.Printf("emu: region change to %v ignored; create a new emulator instead", region)
	}
}

// Chipset returns the custom chip state.
func (e *Emulator) Chipset() *Chipset {
	return e.cs
}

// RTC returns the real-time clock.
func (e *Emulator) RTC() *RTC {
	return e.rtc
}

// IDE returns the IDE bridge.
func (e *Emulator) IDE() *IDEBridge {
	return e.ide
}

// Bus returns the CPU memory map.
func (e *Emulator) Bus() *AmigaBus {
	return e.bus
}

// HasSRAM reports battery-backed storage. The clock RAM always exists.
func (e *Emulator) HasSRAM() bool {
	return true
}

// GetSRAM returns a copy of the clock's battery-backed RAM.
func (e *Emulator) GetSRAM() []byte {
	return e.rtc.RAM()
}

// SetSRAM loads the clock's battery-backed RAM from a save file.
func (e *Emulator) SetSRAM(data []byte) {
	e.rtc.SetRAM(data)
}

// GetChipRAM returns a copy of chip RAM.
func (e *Emulator) GetChipRAM() []byte {
	out := make([]byte, chipRAMSize)
	copy(out, e.bus.chipRAM[:])
	return out
}

// SetChipRAM writes data into chip RAM.
func (e *Emulator) SetChipRAM(data []byte) {
	copy(e.bus.chipRAM[:], data)
}

// Close releases any resources held by the emulator.
func (e *Emulator) Close() {}

// SetOption applies a core option change identified by key.
func (e *Emulator) SetOption(key string, value string) {
	switch key {
	case "swap_ports":
		e.SetSwapPorts(value == "true")
	}
}

// ReadMemory reads from a flat address into buf and returns the number
// of bytes read. Chip RAM starts at 0; fast RAM uses its CPU addresses.
func (e *Emulator) ReadMemory(addr uint32, buf []byte) uint32 {
	var count uint32
	for i := range buf {
		cur := addr + uint32(i)
		switch {
		case cur < chipRAMSize:
			buf[i] = e.bus.chipRAM[cur]
		case len(e.bus.fastRAM) > 0 && cur >= e.bus.fastBase && cur < fastRAMEnd:
			buf[i] = e.bus.fastRAM[cur-e.bus.fastBase]
		default:
			return count
		}
		count++
	}
	return count
}

// MemoryMap returns a list of available memory regions with sizes.
func (e *Emulator) MemoryMap() []emucore.MemoryRegion {
	return []emucore.MemoryRegion{
		{Type: emucore.MemorySystemRAM, Size: chipRAMSize},
		{Type: emucore.MemorySaveRAM, Size: rtcRAMSize},
	}
}

// ReadRegion returns a copy of the specified memory region.
func (e *Emulator) ReadRegion(regionType int) []byte {
	switch regionType {
	case emucore.MemorySystemRAM:
		return e.GetChipRAM()
	case emucore.MemorySaveRAM:
		return e.GetSRAM()
	default:
		return nil
	}
}

// WriteRegion writes data to the specified memory region.
func (e *Emulator) WriteRegion(regionType int, data []byte) {
	switch regionType {
	case emucore.MemorySystemRAM:
		e.SetChipRAM(data)
	case emucore.MemorySaveRAM:
		e.SetSRAM(data)
	}
}

// String describes the machine configuration.
func (e *Emulator) String() string {
	std := "PAL"
	if e.cs.NTSC() {
		std = "NTSC"
	}
	return fmt.Sprintf("A4000 %s, 2MB chip, %dMB fast", std, e.bus.FastRAMSize()>>20)
}
