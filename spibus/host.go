package spibus

import (
	"sync"

	"piface-go/drivers/mcp23s17"
	"piface-go/errcode"
)

// ----------------------------- emulator state -------------------------------

// hostChip is the register file of one emulated MCP23S17.
type hostChip struct {
	regs   [mcp23s17.NumRegisters]byte
	inputs byte // level on the port B pins
}

func newHostChip() *hostChip {
	c := &hostChip{}
	for r := mcp23s17.Register(0); r < mcp23s17.NumRegisters; r++ {
		c.regs[r] = mcp23s17.ResetValue(r)
	}
	return c
}

// HostBus emulates MCP23S17 chips on both chip-select lines for host-side
// tests. Chips are created lazily per (cs, sub-address) and always decode
// the sub-address bits; IOCON.HAEN is stored but not enforced.
type HostBus struct {
	// Loopback makes port B reads return the port A output latch.
	Loopback bool

	mu     sync.Mutex
	chips  map[busAddr]*hostChip
	open   int
	opened int
	txs    int
	txByCS [NumChipSelects]int

	failOpen error
	failTx   func(cs ChipSelect, w []byte) error
}

type busAddr struct {
	cs   ChipSelect
	addr uint8
}

// NewHostBus returns an emulator with no chips powered yet.
func NewHostBus() *HostBus {
	return &HostBus{chips: make(map[busAddr]*hostChip)}
}

func (h *HostBus) chip(cs ChipSelect, addr uint8) *hostChip {
	if h.chips == nil {
		h.chips = make(map[busAddr]*hostChip)
	}
	k := busAddr{cs, addr}
	c, ok := h.chips[k]
	if !ok {
		c = newHostChip()
		h.chips[k] = c
	}
	return c
}

// ----------------------------- Opener ---------------------------------------

func (h *HostBus) Open(cs ChipSelect) (Conn, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cs >= NumChipSelects {
		return nil, errcode.New(errcode.OpenFailed, "host open", "no such chip select: "+cs.String())
	}
	if h.failOpen != nil {
		return nil, errcode.Wrap(errcode.OpenFailed, "host open", h.failOpen)
	}
	h.open++
	h.opened++
	return &hostConn{bus: h, cs: cs}, nil
}

type hostConn struct {
	bus    *HostBus
	cs     ChipSelect
	closed bool
}

func (c *hostConn) Tx(w, r []byte) error {
	h := c.bus
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.closed {
		return errcode.Closed
	}
	h.txs++
	h.txByCS[c.cs]++
	if h.failTx != nil {
		if err := h.failTx(c.cs, w); err != nil {
			return err
		}
	}
	for i := range r {
		r[i] = 0
	}
	if len(w) < 3 || len(r) < len(w) {
		return nil // nothing an MCP23S17 would clock back
	}
	addr, read, ok := mcp23s17.ParseControl(w[0])
	if !ok {
		return nil
	}
	chip := h.chip(c.cs, addr)
	reg := mcp23s17.Register(w[1])
	if reg == 0x0B {
		reg = mcp23s17.IOCON
	}
	if int(reg) >= mcp23s17.NumRegisters {
		return nil
	}
	if read {
		r[2] = h.readReg(chip, reg)
		return nil
	}
	h.writeReg(chip, reg, w[2])
	return nil
}

func (h *HostBus) readReg(c *hostChip, reg mcp23s17.Register) byte {
	switch reg {
	case mcp23s17.GPIOA:
		return c.regs[mcp23s17.OLATA]
	case mcp23s17.GPIOB:
		v := c.inputs
		if h.Loopback {
			v = c.regs[mcp23s17.OLATA]
		}
		return v ^ c.regs[mcp23s17.IPOLB]
	}
	return c.regs[reg]
}

func (h *HostBus) writeReg(c *hostChip, reg mcp23s17.Register, v byte) {
	switch reg {
	case mcp23s17.GPIOA, mcp23s17.OLATA:
		c.regs[mcp23s17.GPIOA] = v
		c.regs[mcp23s17.OLATA] = v
	case mcp23s17.GPIOB, mcp23s17.OLATB:
		c.regs[mcp23s17.GPIOB] = v
		c.regs[mcp23s17.OLATB] = v
	case mcp23s17.INTFA, mcp23s17.INTFB, mcp23s17.INTCAPA, mcp23s17.INTCAPB:
		// read-only
	default:
		c.regs[reg] = v
	}
}

// Transfer is not used by the MCP23S17 framing; single bytes are clocked
// out and answered with zero.
func (c *hostConn) Transfer(b byte) (byte, error) {
	var r [1]byte
	err := c.Tx([]byte{b}, r[:])
	return r[0], err
}

func (c *hostConn) Close() error {
	h := c.bus
	h.mu.Lock()
	defer h.mu.Unlock()
	if !c.closed {
		c.closed = true
		h.open--
	}
	return nil
}

// ----------------------------- test hooks -----------------------------------

// SetInputs drives the port B pins of a chip.
func (h *HostBus) SetInputs(cs ChipSelect, addr uint8, v byte) {
	h.mu.Lock()
	h.chip(cs, addr).inputs = v
	h.mu.Unlock()
}

// Register returns the current value of a chip register.
func (h *HostBus) Register(cs ChipSelect, addr uint8, reg mcp23s17.Register) byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.chip(cs, addr).regs[reg]
}

// Transactions returns the number of Tx calls seen on all lines.
func (h *HostBus) Transactions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.txs
}

// TransactionsOn returns the number of Tx calls seen on one line.
func (h *HostBus) TransactionsOn(cs ChipSelect) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.txByCS[cs]
}

// OpenConns returns the number of connections not yet closed.
func (h *HostBus) OpenConns() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

// Opened returns the number of successful Open calls.
func (h *HostBus) Opened() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.opened
}

// FailOpen makes subsequent Open calls fail with err (nil clears).
func (h *HostBus) FailOpen(err error) {
	h.mu.Lock()
	h.failOpen = err
	h.mu.Unlock()
}

// FailTx installs a hook consulted before each Tx; a non-nil return fails
// the transfer without touching chip state (nil clears).
func (h *HostBus) FailTx(f func(cs ChipSelect, w []byte) error) {
	h.mu.Lock()
	h.failTx = f
	h.mu.Unlock()
}
