// Package piface drives PiFace Digital boards: eight outputs on MCP23S17
// port A and eight inputs on port B.
//
// Outputs are cached. WritePin only edits the pending byte; Flush (or Write)
// sends it, and skips the bus entirely when the device already holds that
// value:
//
//	pf, err := piface.New(spibus.Spidev{}, piface.DefaultConfig())
//	pf.WritePin(0, true)
//	pf.WritePin(3, true)
//	err = pf.Flush() // one transaction for both pins
//
// Inputs are sampled by Read; ReadPin decodes the last sample without
// touching the bus.
//
// A Device is not safe for concurrent use. Distinct Devices may be driven
// from separate goroutines.
package piface

import (
	"golang.org/x/exp/slog"

	"piface-go/drivers/mcp23s17"
	"piface-go/errcode"
	"piface-go/spibus"
	"piface-go/x/logx"
)

// Config describes one board. The zero value is not the default; use
// DefaultConfig.
type Config struct {
	Address      int  // board index 0-7
	Pullup       bool // enable port B pull-ups
	InvertInput  bool // logical input = ^physical
	InvertOutput bool // physical output = ^logical
	SkipInit     bool // leave chip configuration untouched; only read back outputs
	Addressing   Addressing
	Logger       *slog.Logger // nil discards
}

// DefaultConfig is board 0 with pull-ups on and no inversion.
func DefaultConfig() Config {
	return Config{Pullup: true}
}

// Device is one PiFace board with its own chip-select connection.
type Device struct {
	conn  spibus.Conn
	log   *slog.Logger
	board int
	cs    spibus.ChipSelect
	addr  uint8

	pullup  bool
	inMask  byte // XOR applied to raw inputs
	outMask byte // XOR applied to logical outputs

	inputs  byte // last Read, logical
	pending byte // next Flush, logical
	written byte // resident on the device, logical
	closed  bool

	// Fixed buffers to avoid per-call allocations.
	w mcp23s17.Frame
	r mcp23s17.Frame
}

// New opens the board's chip-select line and runs the bootstrap sequence.
// On any failure the connection is closed before returning.
func New(opener spibus.Opener, cfg Config) (*Device, error) {
	cs, addr, err := cfg.Addressing.Resolve(cfg.Address)
	if err != nil {
		return nil, err
	}
	log := logx.Or(cfg.Logger).With("board", cfg.Address, "cs", cs.String(), "addr", addr)

	conn, err := opener.Open(cs)
	if err != nil {
		return nil, errcode.Wrap(errcode.DeviceInit, "open", err)
	}
	d := &Device{
		conn:   conn,
		log:    log,
		board:  cfg.Address,
		cs:     cs,
		addr:   addr,
		pullup: cfg.Pullup,
	}
	if cfg.InvertInput {
		d.inMask = 0xFF
	}
	if cfg.InvertOutput {
		d.outMask = 0xFF
	}

	if err := d.bootstrap(!cfg.SkipInit); err != nil {
		log.Warn("bootstrap failed", "err", err)
		_ = conn.Close()
		return nil, errcode.Wrap(errcode.DeviceInit, "bootstrap", err)
	}
	log.Info("board opened", "outputs", d.written)
	return d, nil
}

// bootstrap configures the ports and seeds the output cache from the chip.
// Polarity inversion is applied in software, so IPOLB is cleared.
func (d *Device) bootstrap(configure bool) error {
	if configure {
		pullups := byte(0x00)
		if d.pullup {
			pullups = 0xFF
		}
		for _, c := range []struct {
			reg mcp23s17.Register
			val byte
		}{
			{mcp23s17.IOCON, mcp23s17.IOCONHAEN},
			{mcp23s17.IODIRA, 0x00},
			{mcp23s17.IODIRB, 0xFF},
			{mcp23s17.GPPUB, pullups},
			{mcp23s17.IPOLB, 0x00},
		} {
			if err := d.writeConfig(c.reg, c.val); err != nil {
				return err
			}
		}
	}

	raw, err := d.readReg(mcp23s17.GPIOA)
	if err != nil {
		return err
	}
	d.written = raw ^ d.outMask
	d.pending = d.written

	if configure {
		// Rewrite the value just read so the latch is known to hold it.
		if err := d.writeReg(mcp23s17.GPIOA, raw); err != nil {
			return err
		}
	}
	return nil
}

// Read samples the input port and returns the logical byte.
func (d *Device) Read() (byte, error) {
	if d.closed {
		return 0, errcode.Closed
	}
	raw, err := d.readReg(mcp23s17.GPIOB)
	if err != nil {
		return 0, errcode.Wrap(errcode.DeviceIO, "read", err)
	}
	d.inputs = raw ^ d.inMask
	return d.inputs, nil
}

// Write makes b the pending output byte and flushes it.
func (d *Device) Write(b byte) error {
	if d.closed {
		return errcode.Closed
	}
	d.pending = b
	return d.Flush()
}

// Flush sends the pending output byte, unless the device already holds it.
// On failure the device is presumed unchanged; the pending byte is kept so
// a later Flush retries it.
func (d *Device) Flush() error {
	if d.closed {
		return errcode.Closed
	}
	if d.pending == d.written {
		return nil
	}
	v := d.pending
	if err := d.writeReg(mcp23s17.GPIOA, v^d.outMask); err != nil {
		return errcode.Wrap(errcode.DeviceIO, "write", err)
	}
	d.written = v
	return nil
}

// ReadOutputs reads the output port back from the device and refreshes the
// confirmed output cache. The pending byte is left alone.
func (d *Device) ReadOutputs() (byte, error) {
	if d.closed {
		return 0, errcode.Closed
	}
	raw, err := d.readReg(mcp23s17.GPIOA)
	if err != nil {
		return 0, errcode.Wrap(errcode.DeviceIO, "read_outputs", err)
	}
	d.written = raw ^ d.outMask
	return d.written, nil
}

// Close releases the chip-select connection. Calling it again is a no-op.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.log.Info("board closed")
	return d.conn.Close()
}

// Introspection.
func (d *Device) Address() int                  { return d.board }
func (d *Device) ChipSelect() spibus.ChipSelect { return d.cs }
func (d *Device) SubAddress() uint8             { return d.addr }
func (d *Device) Closed() bool                  { return d.closed }

// Inputs is the last value returned by Read.
func (d *Device) Inputs() byte { return d.inputs }

// Outputs is the pending output byte.
func (d *Device) Outputs() byte { return d.pending }

// OutputsLast is the output byte last confirmed on the device.
func (d *Device) OutputsLast() byte { return d.written }
