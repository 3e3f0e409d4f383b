// Package mcp23s17 provides the register map and command framing for the
// MCP23S17 16-bit SPI I/O expander, as used on the PiFace Digital board.
package mcp23s17

// Register is a register address in the IOCON.BANK=0 map.
type Register byte

const (
	// Control byte: 0100_A2A1A0_RW.
	opcode  = 0x40
	opRead  = 0x01
	opWrite = 0x00

	// MaxAddress is the largest 3-bit hardware sub-address.
	MaxAddress = 7

	// IOCON bits.
	IOCONHAEN = 0x08 // hardware address enable
)

// Register sub-addresses (BANK=0, A/B interleaved).
const (
	IODIRA   Register = 0x00 // R/W direction, 1 = input
	IODIRB   Register = 0x01
	IPOLA    Register = 0x02 // R/W input polarity, 1 = inverted
	IPOLB    Register = 0x03
	GPINTENA Register = 0x04
	GPINTENB Register = 0x05
	DEFVALA  Register = 0x06
	DEFVALB  Register = 0x07
	INTCONA  Register = 0x08
	INTCONB  Register = 0x09
	IOCON    Register = 0x0A // shared; 0x0B aliases it
	GPPUA    Register = 0x0C // R/W pull-ups, 1 = 100k pull-up
	GPPUB    Register = 0x0D
	INTFA    Register = 0x0E // R
	INTFB    Register = 0x0F // R
	INTCAPA  Register = 0x10 // R
	INTCAPB  Register = 0x11 // R
	GPIOA    Register = 0x12 // R/W port value
	GPIOB    Register = 0x13
	OLATA    Register = 0x14 // R/W output latch
	OLATB    Register = 0x15

	// NumRegisters is the size of the register file.
	NumRegisters = 0x16
)

// Class groups registers by how the driver may access them.
type Class uint8

const (
	ClassUnknown Class = iota
	ClassConfig        // direction, polarity, pull-up, interrupt setup, IOCON
	ClassPort          // GPIO and OLAT values
	ClassStatus        // read-only interrupt flags and captures
)

type regInfo struct {
	name  string
	class Class
}

// Datasheet table 3-5 (BANK=0). Indexed by register address.
var registers = [NumRegisters]regInfo{
	IODIRA:   {"IODIRA", ClassConfig},
	IODIRB:   {"IODIRB", ClassConfig},
	IPOLA:    {"IPOLA", ClassConfig},
	IPOLB:    {"IPOLB", ClassConfig},
	GPINTENA: {"GPINTENA", ClassConfig},
	GPINTENB: {"GPINTENB", ClassConfig},
	DEFVALA:  {"DEFVALA", ClassConfig},
	DEFVALB:  {"DEFVALB", ClassConfig},
	INTCONA:  {"INTCONA", ClassConfig},
	INTCONB:  {"INTCONB", ClassConfig},
	IOCON:    {"IOCON", ClassConfig},
	0x0B:     {"IOCON", ClassConfig},
	GPPUA:    {"GPPUA", ClassConfig},
	GPPUB:    {"GPPUB", ClassConfig},
	INTFA:    {"INTFA", ClassStatus},
	INTFB:    {"INTFB", ClassStatus},
	INTCAPA:  {"INTCAPA", ClassStatus},
	INTCAPB:  {"INTCAPB", ClassStatus},
	GPIOA:    {"GPIOA", ClassPort},
	GPIOB:    {"GPIOB", ClassPort},
	OLATA:    {"OLATA", ClassPort},
	OLATB:    {"OLATB", ClassPort},
}

// ResetValue is the power-on value of r: direction registers reset to all
// inputs, everything else to zero.
func ResetValue(r Register) byte {
	if r == IODIRA || r == IODIRB {
		return 0xFF
	}
	return 0x00
}

func (r Register) String() string {
	if int(r) < len(registers) {
		return registers[r].name
	}
	return "REG?"
}

// Class reports the access class of r, ClassUnknown outside the map.
func (r Register) Class() Class {
	if int(r) < len(registers) {
		return registers[r].class
	}
	return ClassUnknown
}
