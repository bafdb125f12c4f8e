package emu

import "errors"

const (
	rtcSerializeVersion = 1
	// RTCSerializeSize is the total bytes needed for RTC serialization.
	// version(1) + mode(1) + use24(1) + ram(13)
	RTCSerializeSize = 3 + rtcRAMSize
)

func (r *RTC) codec(c *stateCodec) {
	c.Version(rtcSerializeVersion, "RTC")
	c.U8(&r.mode)
	c.Bool(&r.use24)
	c.Bytes(r.ram[:])
}

// Serialize writes RTC state to buf. buf must be at least RTCSerializeSize bytes.
func (r *RTC) Serialize(buf []byte) error {
	if len(buf) < RTCSerializeSize {
		return errors.New("RTC serialize buffer too small")
	}
	c := &stateCodec{mode: codecSave, buf: buf}
	r.codec(c)
	return c.err
}

// Deserialize reads RTC state from buf. buf must be at least RTCSerializeSize bytes.
func (r *RTC) Deserialize(buf []byte) error {
	if len(buf) < RTCSerializeSize {
		return errors.New("RTC deserialize buffer too small")
	}
	c := &stateCodec{mode: codecLoad, buf: buf}
	r.codec(c)
	return c.err
}
