package emu

// Custom chip registers as 16-bit word offsets from 0xDFF000.
const (
	regBLTDDAT  = 0x000 >> 1
	regDMACONR  = 0x002 >> 1
	regVPOSR    = 0x004 >> 1
	regVHPOSR   = 0x006 >> 1
	regDSKDATR  = 0x008 >> 1
	regJOY0DAT  = 0x00a >> 1
	regJOY1DAT  = 0x00c >> 1
	regCLXDAT   = 0x00e >> 1
	regADKCONR  = 0x010 >> 1
	regPOT0DAT  = 0x012 >> 1
	regPOT1DAT  = 0x014 >> 1
	regPOTGOR   = 0x016 >> 1
	regSERDATR  = 0x018 >> 1
	regDSKBYTR  = 0x01a >> 1
	regINTENAR  = 0x01c >> 1
	regINTREQR  = 0x01e >> 1
	regDSKPTH   = 0x020 >> 1
	regDSKPTL   = 0x022 >> 1
	regDSKLEN   = 0x024 >> 1
	regDSKDAT   = 0x026 >> 1
	regREFPTR   = 0x028 >> 1
	regVPOSW    = 0x02a >> 1
	regVHPOSW   = 0x02c >> 1
	regCOPCON   = 0x02e >> 1
	regSERDAT   = 0x030 >> 1
	regSERPER   = 0x032 >> 1
	regPOTGO    = 0x034 >> 1
	regJOYTEST  = 0x036 >> 1
	regSTREQU   = 0x038 >> 1
	regSTRVBL   = 0x03a >> 1
	regSTRHOR   = 0x03c >> 1
	regSTRLONG  = 0x03e >> 1
	regBLTCON0  = 0x040 >> 1
	regBLTCON1  = 0x042 >> 1
	regBLTAFWM  = 0x044 >> 1
	regBLTALWM  = 0x046 >> 1
	regBLTCPTH  = 0x048 >> 1
	regBLTCPTL  = 0x04a >> 1
	regBLTBPTH  = 0x04c >> 1
	regBLTBPTL  = 0x04e >> 1
	regBLTAPTH  = 0x050 >> 1
	regBLTAPTL  = 0x052 >> 1
	regBLTDPTH  = 0x054 >> 1
	regBLTDPTL  = 0x056 >> 1
	regBLTSIZE  = 0x058 >> 1
	regBLTCON0L = 0x05a >> 1
	regBLTSIZV  = 0x05c >> 1
	regBLTSIZH  = 0x05e >> 1
	regBLTCMOD  = 0x060 >> 1
	regBLTBMOD  = 0x062 >> 1
	regBLTAMOD  = 0x064 >> 1
	regBLTDMOD  = 0x066 >> 1
	regBLTCDAT  = 0x070 >> 1
	regBLTBDAT  = 0x072 >> 1
	regBLTADAT  = 0x074 >> 1
	regSPRHDAT  = 0x078 >> 1
	regBPLHDAT  = 0x07a >> 1
	regDENISEID = 0x07c >> 1
	regDSKSYNC  = 0x07e >> 1
	regCOP1LCH  = 0x080 >> 1
	regCOP1LCL  = 0x082 >> 1
	regCOP2LCH  = 0x084 >> 1
	regCOP2LCL  = 0x086 >> 1
	regCOPJMP1  = 0x088 >> 1
	regCOPJMP2  = 0x08a >> 1
	regCOPINS   = 0x08c >> 1
	regDIWSTRT  = 0x08e >> 1
	regDIWSTOP  = 0x090 >> 1
	regDDFSTRT  = 0x092 >> 1
	regDDFSTOP  = 0x094 >> 1
	regDMACON   = 0x096 >> 1
	regCLXCON   = 0x098 >> 1
	regINTENA   = 0x09a >> 1
	regINTREQ   = 0x09c >> 1
	regADKCON   = 0x09e >> 1
	regAUD0LCH  = 0x0a0 >> 1
	regAUD3DAT  = 0x0da >> 1
	regBPL1PTH  = 0x0e0 >> 1
	regBPL8PTL  = 0x0fe >> 1
	regBPLCON0  = 0x100 >> 1
	regBPLCON1  = 0x102 >> 1
	regBPLCON2  = 0x104 >> 1
	regBPLCON3  = 0x106 >> 1
	regBPL1MOD  = 0x108 >> 1
	regBPL2MOD  = 0x10a >> 1
	regBPLCON4  = 0x10c >> 1
	regCLXCON2  = 0x10e >> 1
	regBPL1DAT  = 0x110 >> 1
	regBPL8DAT  = 0x11e >> 1
	regSPR0PTH  = 0x120 >> 1
	regSPR7PTL  = 0x13e >> 1
	regSPR0POS  = 0x140 >> 1
	regSPR7DATB = 0x17e >> 1
	regCOLOR00  = 0x180 >> 1
	regCOLOR31  = 0x1be >> 1
	regHTOTAL   = 0x1c0 >> 1
	regHSSTOP   = 0x1c2 >> 1
	regHBSTRT   = 0x1c4 >> 1
	regHBSTOP   = 0x1c6 >> 1
	regVTOTAL   = 0x1c8 >> 1
	regVSSTOP   = 0x1ca >> 1
	regVBSTRT   = 0x1cc >> 1
	regVBSTOP   = 0x1ce >> 1
	regHHPOSR   = 0x1da >> 1
	regBEAMCON0 = 0x1dc >> 1
	regHSSTRT   = 0x1de >> 1
	regVSSTRT   = 0x1e0 >> 1
	regHCENTER  = 0x1e2 >> 1
	regDIWHIGH  = 0x1e4 >> 1
	regFMODE    = 0x1fc >> 1
	regNOP      = 0x1fe >> 1
)

const (
	audioChannelBase  = regAUD0LCH
	audioChannelShift = 3 // 8 words per channel

	// Alice revision bits in VPOSR (8374 rev 3/4).
	aliceNTSCVersion = 0x33 << 8
	alicePALVersion  = 0x23 << 8

	// lisaVersion is returned by DENISEID.
	lisaVersion = 0x00f8

	setClearBit = 1 << 15

	dmaconWriteMask = 0x07ff
	intenaWriteMask = 0x7fff
	intreqWriteMask = 0x3fff
	adkconWriteMask = 0x7fff
)

// DMACON bits.
const (
	dmaBlitterBusyShift = 14
	dmaBlitterZeroShift = 13
	dmaBlitterPriority  = 1 << 10
	dmaEnable           = 1 << 9
	dmaBitplane         = 1 << 8
	dmaCopper           = 1 << 7
	dmaBlitter          = 1 << 6
	dmaSprite           = 1 << 5
	dmaDisk             = 1 << 4
	dmaAudioMask        = 0x000f
)

// BPLCON0-3 and FMODE bit fields.
const (
	bplcon0Hires         = 1 << 15
	bplcon0PlaneMask     = 0x7000
	bplcon0PlaneShift    = 12
	bplcon0HAM           = 1 << 11
	bplcon0DualPlayfield = 1 << 10
	bplcon0GenlockColor  = 1 << 9
	bplcon0GenlockAudio  = 1 << 8
	bplcon0UltraHires    = 1 << 7
	bplcon0SuperHires    = 1 << 6
	bplcon0Bypass        = 1 << 5
	bplcon0Plane3Bit     = 1 << 4
	bplcon0Plane3Shift   = 4 - 3
	bplcon0Interlace     = 1 << 2
	bplcon0ExternalSync  = 1 << 1
	bplcon0ECSEnable     = 1 << 0

	bplcon2KillEHB     = 1 << 9
	bplcon2ReadRAM     = 1 << 8
	bplcon2PF2Priority = 1 << 6
	bplcon2PF2SprMask  = 0x38
	bplcon2PF2SprShift = 3
	bplcon2PF1SprMask  = 0x07

	bplcon3BankMask      = 0xe000
	bplcon3BankShift     = 13 - 5
	bplcon3PF2OffMask    = 0x1c00
	bplcon3PF2OffShift   = 10
	bplcon3LowNibble     = 1 << 9
	bplcon3SprResMask    = 0x0600
	bplcon3SprResShift   = 6
	fmodeSpriteScanDbl   = 1 << 15
	fmodeBitplaneScanDbl = 1 << 14
	fmodeSpriteDoubleCAS = 1 << 3
	fmodeSprite32        = 1 << 2
	fmodeBplDoubleCAS    = 1 << 1
	fmodeBpl32           = 1 << 0

	copconDanger = 1 << 1

	audioMaxVolume   = 1 << 6
	audioVolumeMask  = 0x3f
	rgbHighNibbles   = 0x00f0f0f0
	vposLongFrame    = 1 << 15
	vposLongLine     = 1 << 7
	vposLongFrameBit = 15
	vposLongLineBit  = 7
)

// registerNames is the static diagnostic name table, indexed by word
// offset. It is only consulted by tracing and logging.
var registerNames = [256]string{
	"BLTDDAT", "DMACONR", "VPOSR", "VHPOSR", "DSKDATR", "JOY0DAT", "JOY1DAT", "CLXDAT",
	"ADKCONR", "POT0DAT", "POT1DAT", "POTGOR", "SERDATR", "DSKBYTR", "INTENAR", "INTREQR",
	"DSKPTH", "DSKPTL", "DSKLEN", "DSKDAT", "REFPTR", "VPOSW", "VHPOSW", "COPCON",
	"SERDAT", "SERPER", "POTGO", "JOYTEST", "STREQU", "STRVBL", "STRHOR", "STRLONG",
	"BLTCON0", "BLTCON1", "BLTAFWM", "BLTALWM", "BLTCPTH", "BLTCPTL", "BLTBPTH", "BLTBPTL",
	"BLTAPTH", "BLTAPTL", "BLTDPTH", "BLTDPTL", "BLTSIZE", "BLTCON0L", "BLTSIZV", "BLTSIZH",
	"BLTCMOD", "BLTBMOD", "BLTAMOD", "BLTDMOD", "REG0068", "REG006A", "REG006C", "REG006E",
	"BLTCDAT", "BLTBDAT", "BLTADAT", "REG0076", "SPRHDAT", "BPLHDAT", "DENISEID", "DSKSYNC",
	"COP1LCH", "COP1LCL", "COP2LCH", "COP2LCL", "COPJMP1", "COPJMP2", "COPINS", "DIWSTRT",
	"DIWSTOP", "DDFSTRT", "DDFSTOP", "DMACON", "CLXCON", "INTENA", "INTREQ", "ADKCON",
	"AUD0LCH", "AUD0LCL", "AUD0LEN", "AUD0PER", "AUD0VOL", "AUD0DAT", "REG00AC", "REG00AE",
	"AUD1LCH", "AUD1LCL", "AUD1LEN", "AUD1PER", "AUD1VOL", "AUD1DAT", "REG00BC", "REG00BE",
	"AUD2LCH", "AUD2LCL", "AUD2LEN", "AUD2PER", "AUD2VOL", "AUD2DAT", "REG00CC", "REG00CE",
	"AUD3LCH", "AUD3LCL", "AUD3LEN", "AUD3PER", "AUD3VOL", "AUD3DAT", "REG00DC", "REG00DE",
	"BPL1PTH", "BPL1PTL", "BPL2PTH", "BPL2PTL", "BPL3PTH", "BPL3PTL", "BPL4PTH", "BPL4PTL",
	"BPL5PTH", "BPL5PTL", "BPL6PTH", "BPL6PTL", "BPL7PTH", "BPL7PTL", "BPL8PTH", "BPL8PTL",
	"BPLCON0", "BPLCON1", "BPLCON2", "BPLCON3", "BPL1MOD", "BPL2MOD", "BPLCON4", "CLXCON2",
	"BPL1DAT", "BPL2DAT", "BPL3DAT", "BPL4DAT", "BPL5DAT", "BPL6DAT", "BPL7DAT", "BPL8DAT",
	"SPR0PTH", "SPR0PTL", "SPR1PTH", "SPR1PTL", "SPR2PTH", "SPR2PTL", "SPR3PTH", "SPR3PTL",
	"SPR4PTH", "SPR4PTL", "SPR5PTH", "SPR5PTL", "SPR6PTH", "SPR6PTL", "SPR7PTH", "SPR7PTL",
	"SPR0POS", "SPR0CTL", "SPR0DATA", "SPR0DATB", "SPR1POS", "SPR1CTL", "SPR1DATA", "SPR1DATB",
	"SPR2POS", "SPR2CTL", "SPR2DATA", "SPR2DATB", "SPR3POS", "SPR3CTL", "SPR3DATA", "SPR3DATB",
	"SPR4POS", "SPR4CTL", "SPR4DATA", "SPR4DATB", "SPR5POS", "SPR5CTL", "SPR5DATA", "SPR5DATB",
	"SPR6POS", "SPR6CTL", "SPR6DATA", "SPR6DATB", "SPR7POS", "SPR7CTL", "SPR7DATA", "SPR7DATB",
	"COLOR00", "COLOR01", "COLOR02", "COLOR03", "COLOR04", "COLOR05", "COLOR06", "COLOR07",
	"COLOR08", "COLOR09", "COLOR10", "COLOR11", "COLOR12", "COLOR13", "COLOR14", "COLOR15",
	"COLOR16", "COLOR17", "COLOR18", "COLOR19", "COLOR20", "COLOR21", "COLOR22", "COLOR23",
	"COLOR24", "COLOR25", "COLOR26", "COLOR27", "COLOR28", "COLOR29", "COLOR30", "COLOR31",
	"HTOTAL", "HSSTOP", "HBSTRT", "HBSTOP", "VTOTAL", "VSSTOP", "VBSTRT", "VBSTOP",
	"SPRHSTRT", "SPRHSTOP", "BPLHSTRT", "BPLHSTOP", "HHPOSW", "HHPOSR", "BEAMCON0", "HSSTRT",
	"VSSTRT", "HCENTER", "DIWHIGH", "BPLHMOD", "SPRHPTH", "SPRHPTL", "BPLHPTH", "BPLHPTL",
	"REG01F0", "REG01F2", "REG01F4", "REG01F6", "REG01F8", "REG01FA", "FMODE", "NOP",
}

// RegisterName returns the hardware name of a custom chip register.
func RegisterName(wordOffset uint8) string {
	return registerNames[wordOffset]
}
