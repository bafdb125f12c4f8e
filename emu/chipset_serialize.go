package emu

import "errors"

const chipsetSerializeVersion = 1

// ChipsetSerializeSize is the total bytes needed for chipset
// serialization. The layout is defined by Chipset.codec.
var ChipsetSerializeSize = codecSize(new(Chipset).codec)

// codec walks every register field plus the uptime counters.
func (cs *Chipset) codec(c *stateCodec) {
	c.Version(chipsetSerializeVersion, "chipset")

	for i := range cs.Audio {
		a := &cs.Audio[i]
		c.U32(&a.DataAddress)
		c.U32(&a.DMAAddress)
		c.U16(&a.Length)
		c.U16(&a.Period)
		c.U8(&a.Volume)
		c.U16(&a.DACData)
	}

	b := &cs.Blitter
	c.Bool(&b.Busy)
	c.Bool(&b.Priority)
	c.Bool(&b.Zero)
	c.Bool(&b.LineMode)
	c.Bool(&b.Reverse)
	c.U32(&b.Remaining)
	c.U16(&b.Con0)
	c.U16(&b.Con1)
	c.U16(&b.FirstMask)
	c.U16(&b.LastMask)
	c.U16(&b.SizeV)
	for i := range b.Ptr {
		c.U32(&b.Ptr[i])
		c.U16(&b.Mod[i])
	}
	for i := range b.Data {
		c.U16(&b.Data[i])
	}

	cp := &cs.Copper
	c.U32(&cp.Location[0])
	c.U32(&cp.Location[1])
	c.U32(&cp.PC)
	c.U8((*uint8)(&cp.State))
	c.Bool(&cp.SkipNextMove)
	c.Bool(&cp.Danger)
	c.U16(&cp.IR1)
	c.U16(&cp.IR2)

	cs.Display.codec(c)

	for i := range cs.Playfield {
		p := &cs.Playfield[i]
		c.U8(&p.HScroll)
		c.U8(&p.ColorOffset)
		c.U8(&p.PriorityVsSprites)
	}

	c.U16(&cs.DMACON)
	c.U16(&cs.ADKCON)
	c.U16(&cs.IRQ.Enable)
	c.U16(&cs.IRQ.Request)

	pal := &cs.Palette
	c.Bool(&pal.ReadMode)
	c.Bool(&pal.LowNibble)
	c.U8(&pal.BankOffset)
	for i := range pal.Color {
		c.U32(&pal.Color[i])
	}

	f := &cs.Floppy
	c.U32(&f.DMAAddress)
	c.U16(&f.DMALength)
	c.U16(&f.DataBuffer)
	c.Bool(&f.DMAEnable)
	c.Bool(&f.Write)
	c.Bool(&f.ReallyWrite)
	c.U16(&f.Sync)
	c.Bool(&f.Active)

	for i := range cs.Drive {
		d := &cs.Drive[i]
		c.Bool(&d.Motor)
		c.Bool(&d.Inserted)
		c.U8(&d.Track)
		c.U8(&d.Head)
	}

	c.U8(&cs.Keyboard.Length)
	c.Bytes(cs.Keyboard.Buffer[:])

	for i := range cs.Ports {
		p := &cs.Ports[i]
		c.U8(&p.X)
		c.U8(&p.Y)
		c.U8(&p.Buttons)
		c.U8(&p.Direction)
	}

	c.U16(&cs.Collision.Data)
	c.U16(&cs.Collision.Con)
	c.U16(&cs.Collision.Con2)

	for i := range cs.Sprites {
		s := &cs.Sprites[i]
		c.U16(&s.Pos)
		c.U16(&s.Ctl)
		c.U16(&s.DataA)
		c.U16(&s.DataB)
	}

	c.U16(&cs.Serial.Data)
	c.U16(&cs.Serial.Period)
	c.U16(&cs.PotGo)

	// A zero Chipset (size pass) has no converter.
	var days uint32
	var cycles uint64
	if cs.timing != nil {
		days, cycles = cs.timing.Days(), cs.timing.Cycles()
	}
	c.U32(&days)
	c.U64(&cycles)
	if c.mode == codecLoad && cs.timing != nil {
		cs.timing.Restore(days, cycles)
	}
}

func (d *DisplayState) codec(c *stateCodec) {
	for _, v := range []*uint16{
		&d.BeamX, &d.BeamY,
		&d.HTotal, &d.VTotal,
		&d.HSyncStart, &d.HSyncStop, &d.HCenter,
		&d.VSyncStart, &d.VSyncStop,
		&d.HBlankStart, &d.HBlankStop,
		&d.VBlankStart, &d.VBlankStop,
		&d.DIWStart, &d.DIWStop,
		&d.DDFStart, &d.DDFStop,
		&d.BeamCon0,
	} {
		c.U16(v)
	}
	c.Bool(&d.LongFrame)
	c.Bool(&d.LongLine)

	c.U16(&d.BPLCON0)
	c.U8(&d.BitplanesUsed)
	c.Bool(&d.BitplaneScanDbl)
	c.Bool(&d.SpriteScanDbl)
	c.Bool(&d.KillEHB)
	c.Bool(&d.PF2Priority)
	c.U8(&d.SpriteResolution)
	c.U8(&d.BitplaneFetchSize)
	c.U8(&d.SpriteFetchSize)

	c.U16(&d.BPLCON1)
	c.U16(&d.BPLCON2)
	c.U16(&d.BPLCON3)
	c.U16(&d.BPLCON4)
	c.U16(&d.FMODE)
	c.U16(&d.DIWHigh)

	c.U16(&d.BitplaneModulo[0])
	c.U16(&d.BitplaneModulo[1])
	for i := range d.BitplanePtr {
		c.U32(&d.BitplanePtr[i])
		c.U16(&d.BitplaneData[i])
	}
	for i := range d.SpritePtr {
		c.U32(&d.SpritePtr[i])
	}
}

// Serialize writes chipset state to buf. buf must be at least
// ChipsetSerializeSize bytes.
func (cs *Chipset) Serialize(buf []byte) error {
	if len(buf) < ChipsetSerializeSize {
		return errors.New("chipset serialize buffer too small")
	}
	c := &stateCodec{mode: codecSave, buf: buf}
	cs.codec(c)
	return c.err
}

// Deserialize reads chipset state from buf. Configuration and
// collaborators are kept.
func (cs *Chipset) Deserialize(buf []byte) error {
	if len(buf) < ChipsetSerializeSize {
		return errors.New("chipset deserialize buffer too small")
	}
	c := &stateCodec{mode: codecLoad, buf: buf}
	cs.codec(c)
	return c.err
}
