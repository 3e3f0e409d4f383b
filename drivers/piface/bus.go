package piface

import "piface-go/drivers/mcp23s17"

// One 3-byte SPI transaction per register access.

func (d *Device) readReg(reg mcp23s17.Register) (byte, error) {
	f, err := mcp23s17.EncodeRead(d.addr, reg)
	if err != nil {
		return 0, err
	}
	if err := d.tx(f); err != nil {
		return 0, err
	}
	v := mcp23s17.Response(d.r)
	d.log.Debug("spi read", "reg", reg.String(), "raw", v)
	return v, nil
}

func (d *Device) writeReg(reg mcp23s17.Register, val byte) error {
	f, err := mcp23s17.EncodeWrite(d.addr, reg, val)
	if err != nil {
		return err
	}
	d.log.Debug("spi write", "reg", reg.String(), "raw", val)
	return d.tx(f)
}

func (d *Device) writeConfig(reg mcp23s17.Register, val byte) error {
	f, err := mcp23s17.EncodeConfig(d.addr, reg, val)
	if err != nil {
		return err
	}
	d.log.Debug("spi config", "reg", reg.String(), "raw", val)
	return d.tx(f)
}

func (d *Device) tx(f mcp23s17.Frame) error {
	d.w = f
	d.r = mcp23s17.Frame{}
	return d.conn.Tx(d.w[:], d.r[:])
}
