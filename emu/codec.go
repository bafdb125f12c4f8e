package emu

import "github.com/user-none/go-chip-m68k"

// regKind classifies how a register offset decodes.
type regKind uint8

const (
	regUnused   regKind = iota // no register at this offset
	regReadOnly                // status register, writes ignored
	regWord                    // plain write-only latch
	regPtrHigh                 // high half of a chip RAM pointer
	regPtrLow                  // low half of a chip RAM pointer
	regSetClear                // bit 15 selects set or clear
	regStrobe                  // write triggers an action, value ignored
	regPalette                 // COLOR00-COLOR31
	regHandler                 // irregular write semantics
)

// regDesc describes one of the 256 register word offsets.
type regDesc struct {
	kind regKind
	mask uint16

	word func(cs *Chipset) *uint16
	long func(cs *Chipset) *uint32

	read  func(cs *Chipset) uint16
	write func(cs *Chipset, v uint16)
}

// registerTable is the decode table. It is built once and never written.
var registerTable = buildRegisterTable()

func buildRegisterTable() [256]regDesc {
	var t [256]regDesc

	status := func(off uint8, fn func(*Chipset) uint16) {
		t[off] = regDesc{kind: regReadOnly, read: fn}
	}
	word := func(off uint8, fn func(*Chipset) *uint16) {
		t[off] = regDesc{kind: regWord, mask: 0xffff, word: fn}
	}
	pointer := func(off uint8, fn func(*Chipset) *uint32) {
		t[off] = regDesc{kind: regPtrHigh, long: fn}
		t[off+1] = regDesc{kind: regPtrLow, long: fn}
	}
	setClear := func(off uint8, mask uint16, fn func(*Chipset) *uint16) {
		t[off] = regDesc{kind: regSetClear, mask: mask, word: fn}
	}
	strobe := func(off uint8, fn func(*Chipset, uint16)) {
		t[off] = regDesc{kind: regStrobe, write: fn}
	}
	handler := func(off uint8, fn func(*Chipset, uint16)) {
		t[off] = regDesc{kind: regHandler, write: fn}
	}

	// Status
	status(regBLTDDAT, func(cs *Chipset) uint16 { return 0 })
	status(regDMACONR, (*Chipset).readDMACONR)
	status(regVPOSR, (*Chipset).readVPOSR)
	status(regVHPOSR, (*Chipset).readVHPOSR)
	status(regDSKDATR, func(cs *Chipset) uint16 { return 0 })
	status(regJOY0DAT, func(cs *Chipset) uint16 { return cs.joyData(0) })
	status(regJOY1DAT, func(cs *Chipset) uint16 { return cs.joyData(1) })
	status(regCLXDAT, (*Chipset).readCLXDAT)
	status(regADKCONR, func(cs *Chipset) uint16 { return cs.ADKCON })
	status(regPOT0DAT, func(cs *Chipset) uint16 { return 0 })
	status(regPOT1DAT, func(cs *Chipset) uint16 { return 0 })
	status(regPOTGOR, (*Chipset).readPOTGOR)
	status(regSERDATR, (*Chipset).readSERDATR)
	status(regDSKBYTR, (*Chipset).readDSKBYTR)
	status(regINTENAR, func(cs *Chipset) uint16 { return cs.IRQ.Enable })
	status(regINTREQR, func(cs *Chipset) uint16 { return cs.IRQ.Request })
	status(regDENISEID, func(cs *Chipset) uint16 { return lisaVersion })
	status(regHHPOSR, func(cs *Chipset) uint16 { return 0 })

	// Disk
	pointer(regDSKPTH, func(cs *Chipset) *uint32 { return &cs.Floppy.DMAAddress })
	handler(regDSKLEN, (*Chipset).writeDSKLEN)
	word(regDSKDAT, func(cs *Chipset) *uint16 { return &cs.Floppy.DataBuffer })
	word(regDSKSYNC, func(cs *Chipset) *uint16 { return &cs.Floppy.Sync })

	// Beam counters and copper control
	strobe(regREFPTR, nil)
	handler(regVPOSW, (*Chipset).writeVPOSW)
	handler(regVHPOSW, (*Chipset).writeVHPOSW)
	handler(regCOPCON, func(cs *Chipset, v uint16) { cs.Copper.Danger = v&copconDanger != 0 })

	// Serial and pots
	handler(regSERDAT, (*Chipset).writeSERDAT)
	word(regSERPER, func(cs *Chipset) *uint16 { return &cs.Serial.Period })
	word(regPOTGO, func(cs *Chipset) *uint16 { return &cs.PotGo })
	handler(regJOYTEST, (*Chipset).writeJOYTEST)
	strobe(regSTREQU, nil)
	strobe(regSTRVBL, nil)
	strobe(regSTRHOR, nil)
	strobe(regSTRLONG, nil)

	// Blitter
	word(regBLTCON0, func(cs *Chipset) *uint16 { return &cs.Blitter.Con0 })
	handler(regBLTCON1, (*Chipset).writeBLTCON1)
	word(regBLTAFWM, func(cs *Chipset) *uint16 { return &cs.Blitter.FirstMask })
	word(regBLTALWM, func(cs *Chipset) *uint16 { return &cs.Blitter.LastMask })
	pointer(regBLTCPTH, func(cs *Chipset) *uint32 { return &cs.Blitter.Ptr[blitC] })
	pointer(regBLTBPTH, func(cs *Chipset) *uint32 { return &cs.Blitter.Ptr[blitB] })
	pointer(regBLTAPTH, func(cs *Chipset) *uint32 { return &cs.Blitter.Ptr[blitA] })
	pointer(regBLTDPTH, func(cs *Chipset) *uint32 { return &cs.Blitter.Ptr[blitD] })
	handler(regBLTSIZE, (*Chipset).writeBLTSIZE)
	handler(regBLTCON0L, func(cs *Chipset, v uint16) { cs.Blitter.Con0 = cs.Blitter.Con0&0xff00 | v&0x00ff })
	word(regBLTSIZV, func(cs *Chipset) *uint16 { return &cs.Blitter.SizeV })
	handler(regBLTSIZH, (*Chipset).writeBLTSIZH)
	word(regBLTCMOD, func(cs *Chipset) *uint16 { return &cs.Blitter.Mod[blitC] })
	word(regBLTBMOD, func(cs *Chipset) *uint16 { return &cs.Blitter.Mod[blitB] })
	word(regBLTAMOD, func(cs *Chipset) *uint16 { return &cs.Blitter.Mod[blitA] })
	word(regBLTDMOD, func(cs *Chipset) *uint16 { return &cs.Blitter.Mod[blitD] })
	word(regBLTCDAT, func(cs *Chipset) *uint16 { return &cs.Blitter.Data[blitC] })
	word(regBLTBDAT, func(cs *Chipset) *uint16 { return &cs.Blitter.Data[blitB] })
	word(regBLTADAT, func(cs *Chipset) *uint16 { return &cs.Blitter.Data[blitA] })
	strobe(regSPRHDAT, nil)
	strobe(regBPLHDAT, nil)

	// Copper
	pointer(regCOP1LCH, func(cs *Chipset) *uint32 { return &cs.Copper.Location[0] })
	pointer(regCOP2LCH, func(cs *Chipset) *uint32 { return &cs.Copper.Location[1] })
	strobe(regCOPJMP1, func(cs *Chipset, _ uint16) { cs.copperJump(0) })
	strobe(regCOPJMP2, func(cs *Chipset, _ uint16) { cs.copperJump(1) })
	strobe(regCOPINS, nil)

	// Display window
	word(regDIWSTRT, func(cs *Chipset) *uint16 { return &cs.Display.DIWStart })
	word(regDIWSTOP, func(cs *Chipset) *uint16 { return &cs.Display.DIWStop })
	word(regDDFSTRT, func(cs *Chipset) *uint16 { return &cs.Display.DDFStart })
	word(regDDFSTOP, func(cs *Chipset) *uint16 { return &cs.Display.DDFStop })

	// DMA, interrupts and collisions
	handler(regDMACON, (*Chipset).writeDMACON)
	word(regCLXCON, func(cs *Chipset) *uint16 { return &cs.Collision.Con })
	handler(regINTENA, func(cs *Chipset, v uint16) { cs.IRQ.SetClearWrite(InterruptEnable, v) })
	handler(regINTREQ, func(cs *Chipset, v uint16) { cs.IRQ.SetClearWrite(InterruptRequest, v) })
	setClear(regADKCON, adkconWriteMask, func(cs *Chipset) *uint16 { return &cs.ADKCON })

	// Audio
	for ch := 0; ch < numAudioChannels; ch++ {
		base := uint8(audioChannelBase + ch<<audioChannelShift)
		pointer(base, func(cs *Chipset) *uint32 { return &cs.Audio[ch].DataAddress })
		word(base+2, func(cs *Chipset) *uint16 { return &cs.Audio[ch].Length })
		word(base+3, func(cs *Chipset) *uint16 { return &cs.Audio[ch].Period })
		handler(base+4, func(cs *Chipset, v uint16) { cs.writeAudioVolume(ch, v) })
		word(base+5, func(cs *Chipset) *uint16 { return &cs.Audio[ch].DACData })
	}

	// Bitplanes
	for i := 0; i < numBitplanes; i++ {
		pointer(uint8(regBPL1PTH+2*i), func(cs *Chipset) *uint32 { return &cs.Display.BitplanePtr[i] })
		word(uint8(regBPL1DAT+i), func(cs *Chipset) *uint16 { return &cs.Display.BitplaneData[i] })
	}
	handler(regBPLCON0, (*Chipset).writeBPLCON0)
	handler(regBPLCON1, (*Chipset).writeBPLCON1)
	handler(regBPLCON2, (*Chipset).writeBPLCON2)
	handler(regBPLCON3, (*Chipset).writeBPLCON3)
	word(regBPL1MOD, func(cs *Chipset) *uint16 { return &cs.Display.BitplaneModulo[0] })
	word(regBPL2MOD, func(cs *Chipset) *uint16 { return &cs.Display.BitplaneModulo[1] })
	word(regBPLCON4, func(cs *Chipset) *uint16 { return &cs.Display.BPLCON4 })
	word(regCLXCON2, func(cs *Chipset) *uint16 { return &cs.Collision.Con2 })

	// Sprites
	for i := 0; i < numSprites; i++ {
		pointer(uint8(regSPR0PTH+2*i), func(cs *Chipset) *uint32 { return &cs.Display.SpritePtr[i] })
		base := uint8(regSPR0POS + 4*i)
		word(base, func(cs *Chipset) *uint16 { return &cs.Sprites[i].Pos })
		word(base+1, func(cs *Chipset) *uint16 { return &cs.Sprites[i].Ctl })
		word(base+2, func(cs *Chipset) *uint16 { return &cs.Sprites[i].DataA })
		word(base+3, func(cs *Chipset) *uint16 { return &cs.Sprites[i].DataB })
	}

	// Palette
	for off := regCOLOR00; off <= regCOLOR31; off++ {
		t[off] = regDesc{kind: regPalette}
	}

	// Beam programming
	word(regHTOTAL, func(cs *Chipset) *uint16 { return &cs.Display.HTotal })
	word(regHSSTOP, func(cs *Chipset) *uint16 { return &cs.Display.HSyncStop })
	word(regHBSTRT, func(cs *Chipset) *uint16 { return &cs.Display.HBlankStart })
	word(regHBSTOP, func(cs *Chipset) *uint16 { return &cs.Display.HBlankStop })
	word(regVTOTAL, func(cs *Chipset) *uint16 { return &cs.Display.VTotal })
	word(regVSSTOP, func(cs *Chipset) *uint16 { return &cs.Display.VSyncStop })
	word(regVBSTRT, func(cs *Chipset) *uint16 { return &cs.Display.VBlankStart })
	word(regVBSTOP, func(cs *Chipset) *uint16 { return &cs.Display.VBlankStop })
	for off := uint8(regHTOTAL + 8); off < regHHPOSR; off++ {
		strobe(off, nil) // SPRHSTRT, SPRHSTOP, BPLHSTRT, BPLHSTOP, HHPOSW
	}
	word(regBEAMCON0, func(cs *Chipset) *uint16 { return &cs.Display.BeamCon0 })
	word(regHSSTRT, func(cs *Chipset) *uint16 { return &cs.Display.HSyncStart })
	word(regVSSTRT, func(cs *Chipset) *uint16 { return &cs.Display.VSyncStart })
	word(regHCENTER, func(cs *Chipset) *uint16 { return &cs.Display.HCenter })
	word(regDIWHIGH, func(cs *Chipset) *uint16 { return &cs.Display.DIWHigh })
	for off := uint8(regDIWHIGH + 1); off <= regDIWHIGH+5; off++ {
		strobe(off, nil) // BPLHMOD, SPRHPTH/L, BPLHPTH/L
	}
	handler(regFMODE, (*Chipset).writeFMODE)
	strobe(regNOP, nil)

	return t
}

// ReadWord reads a register by word offset. Undefined and write-only
// registers read 0.
func (cs *Chipset) ReadWord(off uint8) uint16 {
	d := &registerTable[off]
	var v uint16
	switch d.kind {
	case regReadOnly:
		v = d.read(cs)
	case regPalette:
		v = cs.readColor(off)
	case regUnused:
		cs.logf("read from undefined register 0x%03x", uint16(off)<<1)
	default:
		cs.logf("read from write-only register %s", registerNames[off])
	}
	if cs.tracer != nil {
		cs.tracer.RegisterRead(off, registerNames[off], v)
	}
	return v
}

// WriteWord writes a register by word offset.
func (cs *Chipset) WriteWord(off uint8, v uint16) {
	if cs.tracer != nil {
		cs.tracer.RegisterWrite(off, registerNames[off], v)
	}
	d := &registerTable[off]
	switch d.kind {
	case regWord:
		*d.word(cs) = v & d.mask
	case regPtrHigh:
		p := d.long(cs)
		*p = *p&0xffff | uint32(v)<<16
	case regPtrLow:
		p := d.long(cs)
		*p = *p&0xffff0000 | uint32(v)
	case regSetClear:
		applySetClear(d.word(cs), v, d.mask)
	case regStrobe, regHandler:
		if d.write != nil {
			d.write(cs, v)
		}
	case regPalette:
		cs.writeColor(off, v)
	case regReadOnly:
		cs.logf("write 0x%04x to read-only register %s ignored", v, registerNames[off])
	default:
		cs.logf("write 0x%04x to undefined register 0x%03x ignored", v, uint16(off)<<1)
	}
}

// Read is the CPU-facing access to the custom chip window. addr is the
// offset within the 0xDFF000 block; the registers mirror every 512 bytes.
func (cs *Chipset) Read(addr uint32, size m68k.Size) uint32 {
	off := uint8(addr >> 1)
	switch size {
	case m68k.Byte:
		cs.logf("byte read from register %s", registerNames[off])
		v := cs.ReadWord(off)
		if addr&1 == 0 {
			return uint32(v >> 8)
		}
		return uint32(v & 0xff)
	case m68k.Long:
		return uint32(cs.ReadWord(off))<<16 | uint32(cs.ReadWord(off+1))
	default:
		return uint32(cs.ReadWord(off))
	}
}

// Write is the CPU-facing store to the custom chip window. Byte writes
// land in the half of the word selected by the address.
func (cs *Chipset) Write(addr uint32, size m68k.Size, v uint32) {
	off := uint8(addr >> 1)
	switch size {
	case m68k.Byte:
		cs.logf("byte write to register %s", registerNames[off])
		b := uint16(v & 0xff)
		if addr&1 == 0 {
			b <<= 8
		}
		cs.WriteWord(off, b)
	case m68k.Long:
		cs.WriteWord(off, uint16(v>>16))
		cs.WriteWord(off+1, uint16(v))
	default:
		cs.WriteWord(off, uint16(v))
	}
}

func boolBit(b bool, shift uint) uint16 {
	if b {
		return 1 << shift
	}
	return 0
}

func (cs *Chipset) readDMACONR() uint16 {
	return cs.DMACON |
		boolBit(cs.Blitter.Busy, dmaBlitterBusyShift) |
		boolBit(cs.Blitter.Zero, dmaBlitterZeroShift)
}

func (cs *Chipset) readVPOSR() uint16 {
	id := uint16(alicePALVersion)
	if cs.ntsc {
		id = aliceNTSCVersion
	}
	return cs.Display.BeamY>>8 |
		boolBit(cs.Display.LongLine, vposLongLineBit) |
		id |
		boolBit(cs.Display.LongFrame, vposLongFrameBit)
}

func (cs *Chipset) readVHPOSR() uint16 {
	return cs.Display.BeamY<<8 | cs.Display.BeamX&0xff
}

// readCLXDAT returns the collision bits and clears them. Bit 15 always
// reads as set.
func (cs *Chipset) readCLXDAT() uint16 {
	v := cs.Collision.Data | 0x8000
	cs.Collision.Data = 0
	return v
}

// readPOTGOR reports the pot lines pulled high except for pressed
// second buttons, which pull DATLY (port 1, bit 10) and DATRY (port 2,
// bit 14) low.
func (cs *Chipset) readPOTGOR() uint16 {
	v := uint16(0xff00)
	if cs.Ports[0].Buttons&portButton2 != 0 {
		v &^= 1 << 10
	}
	if cs.Ports[1].Buttons&portButton2 != 0 {
		v &^= 1 << 14
	}
	return v
}

// readSERDATR reports an idle UART: transmit buffer and shift register
// empty, receive line high.
func (cs *Chipset) readSERDATR() uint16 {
	return 0x3000 | 0x0800
}

func (cs *Chipset) readDSKBYTR() uint16 {
	v := uint16(0)
	if cs.Floppy.Active {
		v |= 1 << 14 // DMAON
	}
	if cs.Floppy.Write {
		v |= 1 << 13
	}
	return v
}

func (cs *Chipset) writeDMACON(v uint16) {
	applySetClear(&cs.DMACON, v, dmaconWriteMask)
	cs.Blitter.Priority = cs.DMACON&dmaBlitterPriority != 0
}

func (cs *Chipset) writeVPOSW(v uint16) {
	cs.Display.BeamY = cs.Display.BeamY&0xff | (v&0x07)<<8
	cs.Display.LongFrame = v&vposLongFrame != 0
	cs.Display.LongLine = v&vposLongLine != 0
}

func (cs *Chipset) writeVHPOSW(v uint16) {
	cs.Display.BeamY = v>>8 | cs.Display.BeamY&0x0700
	cs.Display.BeamX = v & 0x00ff
}

// writeSERDAT accepts a character and completes the transfer at once.
func (cs *Chipset) writeSERDAT(v uint16) {
	cs.Serial.Data = v
	cs.IRQ.Raise(IntSerialTBE)
}

// writeJOYTEST loads the mouse counters of both ports.
func (cs *Chipset) writeJOYTEST(v uint16) {
	for i := range cs.Ports {
		cs.Ports[i].Y = uint8(v>>8) & 0xfc
		cs.Ports[i].X = uint8(v) & 0xfc
	}
}

// writeDSKLEN starts disk DMA when bit 15 is set on two consecutive
// writes.
func (cs *Chipset) writeDSKLEN(v uint16) {
	f := &cs.Floppy
	enable := v&0x8000 != 0
	write := v&0x4000 != 0
	if enable && f.DMAEnable {
		f.ReallyWrite = write && f.Write
		f.Active = true
	}
	if !enable {
		f.Active = false
		f.ReallyWrite = false
	}
	f.DMAEnable = enable
	f.Write = write
	f.DMALength = v & 0x3fff
}

func (cs *Chipset) writeBLTCON1(v uint16) {
	cs.Blitter.Con1 = v
	cs.Blitter.LineMode = v&0x0001 != 0
	cs.Blitter.Reverse = v&0x0002 != 0
}

// writeBLTSIZE starts a blit of height (bits 15-6, 0 = 1024) by width
// (bits 5-0, 0 = 64) words.
func (cs *Chipset) writeBLTSIZE(v uint16) {
	h := uint32(v >> 6)
	if h == 0 {
		h = 1024
	}
	w := uint32(v & 0x3f)
	if w == 0 {
		w = 64
	}
	cs.startBlit(h * w)
}

// writeBLTSIZH starts an ECS blit using the height latched in BLTSIZV.
func (cs *Chipset) writeBLTSIZH(v uint16) {
	h := uint32(cs.Blitter.SizeV & 0x7fff)
	if h == 0 {
		h = 0x8000
	}
	w := uint32(v & 0x07ff)
	if w == 0 {
		w = 0x0800
	}
	cs.startBlit(h * w)
}

func (cs *Chipset) startBlit(words uint32) {
	cs.Blitter.Remaining = words
	cs.Blitter.Busy = true
	cs.Blitter.Zero = false
}

func (cs *Chipset) writeAudioVolume(ch int, v uint16) {
	if v&audioMaxVolume != 0 {
		cs.Audio[ch].Volume = audioMaxVolume
	} else {
		cs.Audio[ch].Volume = uint8(v & audioVolumeMask)
	}
}

func (cs *Chipset) writeBPLCON0(v uint16) {
	d := &cs.Display
	d.BPLCON0 = v
	planes := uint8((v&bplcon0PlaneMask)>>bplcon0PlaneShift | (v&bplcon0Plane3Bit)>>bplcon0Plane3Shift)
	if planes > numBitplanes {
		cs.logf("bad bitplane count %d, using %d", planes, planes&7)
		planes &= 7
	}
	d.BitplanesUsed = planes
}

func (cs *Chipset) writeBPLCON1(v uint16) {
	cs.Display.BPLCON1 = v
	cs.Playfield[0].HScroll = uint8((v&0x0c00)>>4 | (v&0x000f)<<2 | (v&0x0300)>>8)
	cs.Playfield[1].HScroll = uint8((v&0xc000)>>8 | (v&0x00f0)>>2 | (v&0x3000)>>12)
}

func (cs *Chipset) writeBPLCON2(v uint16) {
	cs.Display.BPLCON2 = v
	cs.Display.KillEHB = v&bplcon2KillEHB != 0
	cs.Palette.ReadMode = v&bplcon2ReadRAM != 0
	cs.Display.PF2Priority = v&bplcon2PF2Priority != 0
	cs.Playfield[1].PriorityVsSprites = uint8((v & bplcon2PF2SprMask) >> bplcon2PF2SprShift)
	cs.Playfield[0].PriorityVsSprites = uint8(v & bplcon2PF1SprMask)
}

func (cs *Chipset) writeBPLCON3(v uint16) {
	cs.Display.BPLCON3 = v
	cs.Palette.BankOffset = uint8((v & bplcon3BankMask) >> bplcon3BankShift)
	// 1<<0 maps to no offset
	cs.Playfield[1].ColorOffset = uint8(0xfe & (uint16(1) << ((v & bplcon3PF2OffMask) >> bplcon3PF2OffShift)))
	cs.Palette.LowNibble = v&bplcon3LowNibble != 0
	cs.Display.SpriteResolution = uint8((v & bplcon3SprResMask) >> bplcon3SprResShift)
}

func (cs *Chipset) writeFMODE(v uint16) {
	d := &cs.Display
	d.FMODE = v
	d.BitplaneScanDbl = v&fmodeBitplaneScanDbl != 0
	d.SpriteScanDbl = v&fmodeSpriteScanDbl != 0
	d.BitplaneFetchSize = uint8(boolBit(v&fmodeBplDoubleCAS != 0, 0) + boolBit(v&fmodeBpl32 != 0, 0))
	d.SpriteFetchSize = uint8(boolBit(v&fmodeSpriteDoubleCAS != 0, 0) + boolBit(v&fmodeSprite32 != 0, 0))
}

// colorIndex maps a COLORxx offset through the current bank.
func (cs *Chipset) colorIndex(off uint8) uint8 {
	return off - regCOLOR00 + cs.Palette.BankOffset
}

// writeColor stores a 12-bit colour. In low-nibble mode only the low
// nibble of each component is replaced; otherwise the value is broadcast
// to both nibbles.
func (cs *Chipset) writeColor(off uint8, v uint16) {
	idx := cs.colorIndex(off)
	if cs.Palette.ReadMode {
		cs.logf("write to colour register %d in read mode ignored", idx)
		return
	}
	low := uint32(v&0x0f00)<<8 | uint32(v&0x00f0)<<4 | uint32(v&0x000f)
	if cs.Palette.LowNibble {
		cs.Palette.Color[idx] = low | cs.Palette.Color[idx]&rgbHighNibbles
	} else {
		cs.Palette.Color[idx] = low | low<<4
	}
}

func (cs *Chipset) readColor(off uint8) uint16 {
	idx := cs.colorIndex(off)
	if !cs.Palette.ReadMode {
		cs.logf("read from colour register %d in write mode", idx)
	}
	c := cs.Palette.Color[idx]
	if cs.Palette.LowNibble {
		return uint16(c>>8&0x0f00 | c>>4&0x00f0 | c&0x000f)
	}
	return uint16(c>>12&0x0f00 | c>>8&0x00f0 | c>>4&0x000f)
}
