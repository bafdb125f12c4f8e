package emu

import "time"

// Beam geometry in DMA cycles and lines.
const (
	palLineLength   = 227
	ntscShortLine   = 227
	ntscLongLine    = 228
	palShortFrame   = 312
	palLongFrame    = 313
	ntscShortFrame  = 262
	ntscLongFrame   = 263
	spriteSlotFirst = 0x15
	spriteSlotLast  = 0x33
)

// VideoSink receives the beam output of the stepping loop.
type VideoSink interface {
	// DrawCycle is called once per DMA cycle with the beam position and
	// the current background colour.
	DrawCycle(x, y uint16, rgb uint32)
	ScanlineDone(y uint16)
	FrameDone()
}

// BusOwner is the user of one chip bus cycle.
type BusOwner uint8

const (
	OwnerCPU BusOwner = iota
	OwnerRefresh
	OwnerDisk
	OwnerAudio
	OwnerSprite
	OwnerBitplane
	OwnerCopper
	OwnerBlitter
)

func (o BusOwner) String() string {
	switch o {
	case OwnerCPU:
		return "cpu"
	case OwnerRefresh:
		return "refresh"
	case OwnerDisk:
		return "disk"
	case OwnerAudio:
		return "audio"
	case OwnerSprite:
		return "sprite"
	case OwnerBitplane:
		return "bitplane"
	case OwnerCopper:
		return "copper"
	case OwnerBlitter:
		return "blitter"
	}
	return "unknown"
}

// dmaOn reports whether the master enable and the given DMACON bits are set.
func (cs *Chipset) dmaOn(bits uint16) bool {
	return cs.DMACON&dmaEnable != 0 && cs.DMACON&bits == bits
}

// CycleOwner decides who uses the bus at the current horizontal position.
// Fixed slots take priority over the copper, the copper over the blitter,
// and the CPU gets whatever is left.
func (cs *Chipset) CycleOwner() BusOwner {
	x := cs.Display.BeamX
	switch x {
	case 0, 1, 3, 5:
		return OwnerRefresh
	case 7, 9, 11:
		if cs.Floppy.Active && cs.dmaOn(dmaDisk) {
			return OwnerDisk
		}
	case 13, 15, 17, 19:
		if cs.dmaOn(1 << ((x - 13) / 2)) {
			return OwnerAudio
		}
	}
	if x&1 == 1 {
		if x >= spriteSlotFirst && x <= spriteSlotLast && cs.dmaOn(dmaSprite) {
			return OwnerSprite
		}
	} else {
		if cs.bitplaneSlot(x) {
			return OwnerBitplane
		}
		if cs.copperNeedsBus() && cs.dmaOn(dmaCopper) {
			return OwnerCopper
		}
	}
	if cs.Blitter.Busy && cs.dmaOn(dmaBlitter) {
		return OwnerBlitter
	}
	return OwnerCPU
}

// bitplaneSlot reports whether x falls in the data fetch window of a
// line inside the vertical display window.
func (cs *Chipset) bitplaneSlot(x uint16) bool {
	d := &cs.Display
	if d.BitplanesUsed == 0 || !cs.dmaOn(dmaBitplane) {
		return false
	}
	vstart := d.DIWStart >> 8
	vstop := d.DIWStop >> 8
	if vstop&0x80 == 0 {
		vstop |= 0x100
	}
	if d.BeamY < vstart || d.BeamY >= vstop {
		return false
	}
	start := d.DDFStart & 0xfc
	stop := d.DDFStop&0xfc + 8
	return x >= start && x < stop
}

func (cs *Chipset) lineLength() uint16 {
	if !cs.ntsc {
		return palLineLength
	}
	if cs.Display.LongLine {
		return ntscLongLine
	}
	return ntscShortLine
}

func (cs *Chipset) frameHeight() uint16 {
	long := cs.Display.LongFrame
	switch {
	case cs.ntsc && long:
		return ntscLongFrame
	case cs.ntsc:
		return ntscShortFrame
	case long:
		return palLongFrame
	}
	return palShortFrame
}

// Step runs one DMA cycle and returns the owner of its bus slot.
func (cs *Chipset) Step() BusOwner {
	owner := cs.CycleOwner()
	switch owner {
	case OwnerCopper:
		cs.StepCopper()
	case OwnerBlitter:
		cs.stepBlitter()
	case OwnerDisk:
		cs.stepDisk()
	}
	// A waiting copper compares the beam without using the bus.
	if owner != OwnerCopper && cs.Copper.State == CopperWaitingForBeam && cs.dmaOn(dmaCopper) {
		cs.StepCopper()
	}

	if cs.video != nil {
		cs.video.DrawCycle(cs.Display.BeamX, cs.Display.BeamY, cs.Palette.Color[0])
	}

	cs.timing.Advance(1)
	cs.advanceBeam()
	cs.deliverInterrupt()
	return owner
}

// Advance runs n DMA cycles.
func (cs *Chipset) Advance(n int) {
	for i := 0; i < n; i++ {
		cs.Step()
	}
}

// CatchUp runs cycles until the virtual clock reaches t and returns the
// number of cycles run.
func (cs *Chipset) CatchUp(t time.Duration) int {
	n := 0
	for cs.timing.NextWake() <= t {
		cs.Step()
		n++
	}
	return n
}

func (cs *Chipset) advanceBeam() {
	d := &cs.Display
	d.BeamX++
	if d.BeamX < cs.lineLength() {
		return
	}
	d.BeamX = 0
	if cs.ntsc {
		d.LongLine = !d.LongLine
	}
	if cs.video != nil {
		cs.video.ScanlineDone(d.BeamY)
	}
	d.BeamY++
	if d.BeamY >= cs.frameHeight() {
		d.BeamY = 0
		cs.endFrame()
	}
}

// endFrame handles vertical blank: the copper restarts at COP1LC and
// VERTB is requested.
func (cs *Chipset) endFrame() {
	if cs.Display.BPLCON0&bplcon0Interlace != 0 {
		cs.Display.LongFrame = !cs.Display.LongFrame
	}
	if cs.video != nil {
		cs.video.FrameDone()
	}
	cs.copperJump(0)
	cs.IRQ.Raise(IntVertBlank)
}

func (cs *Chipset) deliverInterrupt() {
	if cs.irq != nil {
		cs.irq.SetInterruptLevel(cs.IRQ.Level())
	}
}

// stepBlitter retires one word of the running blit.
func (cs *Chipset) stepBlitter() {
	b := &cs.Blitter
	if !b.Busy {
		return
	}
	if b.Remaining > 0 {
		b.Remaining--
	}
	if b.Remaining == 0 {
		b.Busy = false
		b.Zero = true
		cs.IRQ.Raise(IntBlitter)
	}
}

// stepDisk retires one word of disk DMA. No drive supplies data, so the
// transfer only counts down and signals completion.
func (cs *Chipset) stepDisk() {
	f := &cs.Floppy
	if f.DMALength > 0 {
		f.DMALength--
		f.DMAAddress += 2
	}
	if f.DMALength == 0 {
		f.Active = false
		cs.IRQ.Raise(IntDiskBlock)
	}
}
