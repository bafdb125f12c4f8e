package emu

import (
	"fmt"
	"log"
)

const (
	numAudioChannels = 4
	numBitplanes     = 8
	numSprites       = 8
	numColors        = 256
	numDrives        = 4
	numMousePorts    = 2
	keyboardBufLen   = 16

	// defaultCopperBoundary is the lowest register byte offset the copper
	// may write without COPCON danger (AGA).
	defaultCopperBoundary = 0x40
)

// AudioChannel is the register state of one Paula audio channel.
type AudioChannel struct {
	DataAddress uint32 // AUDxLC
	DMAAddress  uint32 // current fetch address
	Length      uint16 // words
	Period      uint16
	Volume      uint8 // 0-64
	DACData     uint16
}

// Blitter channel indexes into BlitterState.Ptr and Mod.
const (
	blitA = iota
	blitB
	blitC
	blitD
)

// BlitterState holds blitter flags and registers. Only the busy/word
// counter is simulated; the blit itself is not performed.
type BlitterState struct {
	Busy      bool
	Priority  bool
	Zero      bool
	LineMode  bool
	Reverse   bool
	Remaining uint32 // words left in the running blit

	Con0, Con1          uint16
	FirstMask, LastMask uint16
	SizeV               uint16 // ECS BLTSIZV
	Ptr                 [4]uint32
	Mod                 [4]uint16
	Data                [3]uint16 // A, B, C holding registers
}

// CopperStateKind is the copper execution state.
type CopperStateKind uint8

const (
	CopperIdle CopperStateKind = iota
	CopperLoadingWord1
	CopperLoadingWord2
	CopperWaitingForBeam
	CopperWakingUp
)

func (k CopperStateKind) String() string {
	switch k {
	case CopperIdle:
		return "idle"
	case CopperLoadingWord1:
		return "loading word 1"
	case CopperLoadingWord2:
		return "loading word 2"
	case CopperWaitingForBeam:
		return "waiting for beam"
	case CopperWakingUp:
		return "waking up"
	}
	return "unknown"
}

// CopperState holds the copper registers and sequencer state.
type CopperState struct {
	Location     [2]uint32 // COP1LC, COP2LC
	PC           uint32
	State        CopperStateKind
	SkipNextMove bool // last instruction was a successful SKIP
	Danger       bool // COPCON: writes below the boundary allowed
	IR1, IR2     uint16
}

// DisplayState is the Alice beam counter and Lisa display configuration.
type DisplayState struct {
	BeamX uint16 // 0-2047
	BeamY uint16 // 0-511

	HTotal, VTotal          uint16
	HSyncStart, HSyncStop   uint16
	HCenter                 uint16
	VSyncStart, VSyncStop   uint16
	HBlankStart, HBlankStop uint16
	VBlankStart, VBlankStop uint16
	DIWStart, DIWStop       uint16
	DDFStart, DDFStop       uint16
	BeamCon0                uint16

	LongFrame bool
	LongLine  bool

	BPLCON0           uint16
	BitplanesUsed     uint8 // 0-8
	BitplaneScanDbl   bool
	SpriteScanDbl     bool
	KillEHB           bool
	PF2Priority       bool
	SpriteResolution  uint8
	BitplaneFetchSize uint8 // 0 = 1 word, 1 = 2 words, 2 = 4 words
	SpriteFetchSize   uint8

	// raw register copies for the fields above
	BPLCON1, BPLCON2, BPLCON3, BPLCON4 uint16
	FMODE                              uint16
	DIWHigh                            uint16

	BitplaneModulo [2]uint16 // odd, even
	BitplanePtr    [numBitplanes]uint32
	BitplaneData   [numBitplanes]uint16
	SpritePtr      [numSprites]uint32
}

// SpriteState is the position, control and data latch of one sprite.
type SpriteState struct {
	Pos, Ctl     uint16
	DataA, DataB uint16
}

// PlayfieldState holds the per-playfield scroll and priority fields.
type PlayfieldState struct {
	HScroll           uint8
	ColorOffset       uint8 // PF2 only: 0, 2, 4 ... 128
	PriorityVsSprites uint8 // 0 (front) to 4
}

// PaletteState is the 256-entry 24-bit colour table.
type PaletteState struct {
	ReadMode   bool  // BPLCON2 RDRAM
	LowNibble  bool  // BPLCON3 LOCT
	BankOffset uint8 // 0, 32 ... 224
	Color      [numColors]uint32
}

// FloppyControlState is the disk DMA controller.
type FloppyControlState struct {
	DMAAddress  uint32
	DMALength   uint16
	DataBuffer  uint16
	DMAEnable   bool
	Write       bool
	ReallyWrite bool // write bit seen on two consecutive DSKLEN writes
	Sync        uint16
	Active      bool // DMA transfer in progress
}

// FloppyDriveState is the mechanical state of one drive.
type FloppyDriveState struct {
	Motor    bool
	Inserted bool
	Track    uint8
	Head     uint8
}

// KeyboardState is the pending keycode queue.
type KeyboardState struct {
	Length uint8
	Buffer [keyboardBufLen]uint8
}

// MousePortState is one game port: mouse counters or joystick lines.
type MousePortState struct {
	X, Y      uint8
	Buttons   uint8 // bit 0 fire, bit 1 second button
	Direction uint8 // joystick lines, see joy* bits
}

// CollisionState holds CLXDAT and its control registers.
type CollisionState struct {
	Data uint16
	Con  uint16
	Con2 uint16
}

// SerialState is the UART data and baud rate registers.
type SerialState struct {
	Data   uint16
	Period uint16
}

// Chipset is the complete AGA custom chip state of one machine.
type Chipset struct {
	Audio     [numAudioChannels]AudioChannel
	Blitter   BlitterState
	Copper    CopperState
	Display   DisplayState
	Playfield [2]PlayfieldState
	DMACON    uint16
	ADKCON    uint16
	IRQ       InterruptController
	Palette   PaletteState
	Floppy    FloppyControlState
	Drive     [numDrives]FloppyDriveState
	Keyboard  KeyboardState
	Ports     [numMousePorts]MousePortState
	Collision CollisionState
	Sprites   [numSprites]SpriteState
	Serial    SerialState
	PotGo     uint16

	// configuration, kept across Reset
	ntsc           bool
	copperBoundary uint16
	timing         *TimingConverter

	// collaborators
	mem    ChipMemory
	irq    InterruptSink
	video  VideoSink
	tracer Tracer
	quiet  bool
}

// ChipMemory gives the copper and DMA engines word access to chip RAM.
type ChipMemory interface {
	ReadChipWord(addr uint32) uint16
}

// Tracer observes register traffic for diagnostics.
type Tracer interface {
	RegisterRead(wordOffset uint8, name string, value uint16)
	RegisterWrite(wordOffset uint8, name string, value uint16)
	Warning(component, msg string)
}

// NewChipset creates a chipset for the given video standard. mem may be
// nil when the copper is not used.
func NewChipset(ntsc bool, mem ChipMemory) *Chipset {
	cs := &Chipset{
		ntsc:           ntsc,
		copperBoundary: defaultCopperBoundary,
		timing:         NewTimingConverter(ntsc),
		mem:            mem,
	}
	cs.Reset()
	return cs
}

// SetChipMemory connects the chip RAM used by the copper.
func (cs *Chipset) SetChipMemory(mem ChipMemory) {
	cs.mem = mem
}

// SetInterruptSink connects the CPU interrupt line.
func (cs *Chipset) SetInterruptSink(s InterruptSink) {
	cs.irq = s
}

// SetVideoSink connects the presentation collaborator.
func (cs *Chipset) SetVideoSink(s VideoSink) {
	cs.video = s
}

// SetTracer installs a register tracer. nil disables tracing.
func (cs *Chipset) SetTracer(t Tracer) {
	cs.tracer = t
}

// SetQuiet suppresses diagnostic logging.
func (cs *Chipset) SetQuiet(quiet bool) {
	cs.quiet = quiet
}

// SetCopperBoundary changes the lowest byte offset the copper may write
// without COPCON danger.
func (cs *Chipset) SetCopperBoundary(offset uint16) {
	cs.copperBoundary = offset
}

// NTSC reports the video standard fixed at construction.
func (cs *Chipset) NTSC() bool {
	return cs.ntsc
}

// Timing returns the cycle/time converter.
func (cs *Chipset) Timing() *TimingConverter {
	return cs.timing
}

// Reset zeroes all register state. Configuration, collaborators and the
// uptime counters are kept.
func (cs *Chipset) Reset() {
	cs.Audio = [numAudioChannels]AudioChannel{}
	cs.Blitter = BlitterState{}
	cs.Copper = CopperState{}
	cs.Display = DisplayState{}
	cs.Playfield = [2]PlayfieldState{}
	cs.DMACON = 0
	cs.ADKCON = 0
	cs.IRQ.Reset()
	cs.Palette = PaletteState{}
	cs.Floppy = FloppyControlState{}
	cs.Drive = [numDrives]FloppyDriveState{}
	cs.Keyboard = KeyboardState{}
	cs.Ports = [numMousePorts]MousePortState{}
	cs.Collision = CollisionState{}
	cs.Sprites = [numSprites]SpriteState{}
	cs.Serial = SerialState{}
	cs.PotGo = 0
}

// logf reports a chipset diagnostic to the tracer, or to the log
// unless quiet.
func (cs *Chipset) logf(format string, args ...any) {
	if cs.tracer != nil {
		cs.tracer.Warning("chipset", fmt.Sprintf(format, args...))
		return
	}
	if cs.quiet {
		return
	}
	log.Printf("chipset: "+format, args...)
}
