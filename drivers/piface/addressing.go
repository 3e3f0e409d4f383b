package piface

import (
	"piface-go/drivers/mcp23s17"
	"piface-go/errcode"
	"piface-go/spibus"
	"piface-go/x/mathx"
)

// MaxBoards is the number of boards addressable on one SPI bus.
const MaxBoards = 8

// Addressing maps a board index onto a chip-select line and the 3-bit
// hardware sub-address set by the board's JP1/JP2 jumpers.
type Addressing uint8

const (
	// AddressingSplit puts boards 0-3 on CS0 and boards 4-7 on CS1, each
	// with sub-address 0-3.
	AddressingSplit Addressing = iota
	// AddressingShared puts every board on CS0 with sub-address = index.
	AddressingShared
)

func (a Addressing) String() string {
	switch a {
	case AddressingSplit:
		return "split"
	case AddressingShared:
		return "shared"
	default:
		return "unknown"
	}
}

// ParseAddressing is the inverse of String. The empty string selects the
// default.
func ParseAddressing(s string) (Addressing, error) {
	switch s {
	case "", "split":
		return AddressingSplit, nil
	case "shared":
		return AddressingShared, nil
	}
	return 0, errcode.New(errcode.InvalidConfig, "addressing", "unknown scheme "+s)
}

// Resolve returns the chip select and sub-address for a board index.
func (a Addressing) Resolve(board int) (spibus.ChipSelect, uint8, error) {
	if !mathx.Between(board, 0, MaxBoards-1) {
		return 0, 0, errcode.New(errcode.InvalidConfig, "addressing", "board address must be 0 to 7")
	}
	switch a {
	case AddressingSplit:
		return spibus.ChipSelect(board / 4), uint8(board % 4), nil
	case AddressingShared:
		return spibus.CS0, uint8(board) & mcp23s17.MaxAddress, nil
	}
	return 0, 0, errcode.New(errcode.InvalidConfig, "addressing", "unknown scheme")
}
