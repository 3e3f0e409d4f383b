// Package spibus defines the SPI transport consumed by the drivers, with a
// Linux spidev implementation and a host-side MCP23S17 emulator.
package spibus

import (
	"strconv"

	"tinygo.org/x/drivers"
)

// ChipSelect identifies one SPI chip-select line on the bus.
type ChipSelect uint8

const (
	CS0 ChipSelect = 0
	CS1 ChipSelect = 1

	// NumChipSelects is the number of lines available to the board.
	NumChipSelects = 2
)

func (c ChipSelect) String() string { return "cs" + strconv.Itoa(int(c)) }

// Conn is one open chip-select line. Tx is a synchronous full-duplex
// transfer; w and r have equal length.
type Conn interface {
	drivers.SPI
	Close() error
}

// Opener opens chip-select lines.
type Opener interface {
	Open(cs ChipSelect) (Conn, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(cs ChipSelect) (Conn, error)

func (f OpenerFunc) Open(cs ChipSelect) (Conn, error) { return f(cs) }
