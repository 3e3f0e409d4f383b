package spibus

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"piface-go/errcode"
)

const (
	// DefaultSpeed is the MCP23S17 maximum clock.
	DefaultSpeed = 10 * physic.MegaHertz
	bitsPerWord  = 8
)

var (
	hostOnce sync.Once
	hostErr  error
)

// Spidev opens /dev/spidev<Bus>.<cs> through periph.io.
type Spidev struct {
	Bus   int
	Speed physic.Frequency // 0 => DefaultSpeed
	Mode  spi.Mode         // zero value is Mode0
}

// Name returns the device node for a chip-select line.
func (s Spidev) Name(cs ChipSelect) string {
	return fmt.Sprintf("/dev/spidev%d.%d", s.Bus, cs)
}

func (s Spidev) Open(cs ChipSelect) (Conn, error) {
	if cs >= NumChipSelects {
		return nil, errcode.New(errcode.OpenFailed, "spidev", "no such chip select: "+cs.String())
	}
	hostOnce.Do(func() { _, hostErr = host.Init() })
	if hostErr != nil {
		return nil, errcode.Wrap(errcode.OpenFailed, "spidev host init", hostErr)
	}
	name := s.Name(cs)
	port, err := spireg.Open(name)
	if err != nil {
		return nil, errcode.Wrap(errcode.OpenFailed, name, err)
	}
	speed := s.Speed
	if speed == 0 {
		speed = DefaultSpeed
	}
	c, err := port.Connect(speed, s.Mode, bitsPerWord)
	if err != nil {
		_ = port.Close()
		return nil, errcode.Wrap(errcode.OpenFailed, name, err)
	}
	return &spidevConn{port: port, conn: c}, nil
}

type spidevConn struct {
	port spi.PortCloser
	conn spi.Conn
}

func (c *spidevConn) Tx(w, r []byte) error { return c.conn.Tx(w, r) }

func (c *spidevConn) Transfer(b byte) (byte, error) {
	var r [1]byte
	if err := c.conn.Tx([]byte{b}, r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}

func (c *spidevConn) Close() error { return c.port.Close() }
