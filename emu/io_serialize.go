package emu

import "errors"

const (
	ioSerializeVersion = 1
	// IOSerializeSize is the total bytes needed for IO serialization.
	// version(1) + ciaA(16) + ciaB(16) + swapPorts(1) +
	// InputP1(6) + InputP2(6)
	IOSerializeSize = 46
)

func (inp *Input) codec(c *stateCodec) {
	c.Bool(&inp.up)
	c.Bool(&inp.down)
	c.Bool(&inp.left)
	c.Bool(&inp.right)
	c.Bool(&inp.fire)
	c.Bool(&inp.fire2)
}

func (io *IO) codec(c *stateCodec) {
	c.Version(ioSerializeVersion, "IO")
	c.Bytes(io.ciaA.regs[:])
	c.Bytes(io.ciaB.regs[:])
	c.Bool(&io.SwapPorts)
	io.InputP1.codec(c)
	io.InputP2.codec(c)
	if c.mode == codecLoad && c.err == nil {
		io.UpdatePorts()
	}
}

// Serialize writes IO state to buf. buf must be at least IOSerializeSize bytes.
func (io *IO) Serialize(buf []byte) error {
	if len(buf) < IOSerializeSize {
		return errors.New("IO serialize buffer too small")
	}
	c := &stateCodec{mode: codecSave, buf: buf}
	io.codec(c)
	return c.err
}

// Deserialize reads IO state from buf. buf must be at least IOSerializeSize bytes.
func (io *IO) Deserialize(buf []byte) error {
	if len(buf) < IOSerializeSize {
		return errors.New("IO deserialize buffer too small")
	}
	c := &stateCodec{mode: codecLoad, buf: buf}
	io.codec(c)
	return c.err
}
