package mcp23s17

import "piface-go/errcode"

// Frame is one 3-byte transaction: control, register, data.
// For reads the data byte is a dummy and the response arrives in slot 2.
type Frame [3]byte

// Control builds the control byte for a sub-address. It does not validate.
func Control(addr uint8, read bool) byte {
	b := byte(opcode) | (addr&MaxAddress)<<1
	if read {
		b |= opRead
	}
	return b
}

// ParseControl splits a control byte. ok is false if the opcode nibble does
// not match the MCP23S17 family.
func ParseControl(b byte) (addr uint8, read bool, ok bool) {
	if b&0xF0 != opcode {
		return 0, false, false
	}
	return (b >> 1) & MaxAddress, b&opRead != 0, true
}

// EncodeConfig builds a write frame for a configuration register.
func EncodeConfig(addr uint8, reg Register, value byte) (Frame, error) {
	if err := checkAddr("encode_config", addr); err != nil {
		return Frame{}, err
	}
	if reg.Class() != ClassConfig {
		return Frame{}, errcode.New(errcode.Protocol, "encode_config", "not a config register: "+reg.String())
	}
	return Frame{Control(addr, false), byte(reg), value}, nil
}

// EncodeRead builds a read frame for any mapped register.
func EncodeRead(addr uint8, reg Register) (Frame, error) {
	if err := checkAddr("encode_read", addr); err != nil {
		return Frame{}, err
	}
	if reg.Class() == ClassUnknown {
		return Frame{}, errcode.New(errcode.Protocol, "encode_read", "unmapped register")
	}
	return Frame{Control(addr, true), byte(reg), 0x00}, nil
}

// EncodeWrite builds a write frame for a port value register (GPIO/OLAT).
func EncodeWrite(addr uint8, reg Register, value byte) (Frame, error) {
	if err := checkAddr("encode_write", addr); err != nil {
		return Frame{}, err
	}
	if reg.Class() != ClassPort {
		return Frame{}, errcode.New(errcode.Protocol, "encode_write", "not a port register: "+reg.String())
	}
	return Frame{Control(addr, false), byte(reg), value}, nil
}

// Response returns the data byte clocked back during a read frame.
func Response(rx Frame) byte { return rx[2] }

func checkAddr(op string, addr uint8) error {
	if addr > MaxAddress {
		return errcode.New(errcode.Protocol, op, "sub-address out of range")
	}
	return nil
}
