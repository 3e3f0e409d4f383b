package piface

import (
	"strconv"

	"piface-go/errcode"
	"piface-go/x/mathx"
)

// NumPins is the width of each port.
const NumPins = 8

func checkPin(op string, pin int) error {
	if !mathx.Between(pin, 0, NumPins-1) {
		return errcode.New(errcode.InvalidPin, op, "pin "+strconv.Itoa(pin)+" out of range 0-7")
	}
	return nil
}

// ReadPin decodes one pin from the last Read. It does not touch the bus;
// before the first Read it reports the power-on default of false.
func (d *Device) ReadPin(pin int) (bool, error) {
	if d.closed {
		return false, errcode.Closed
	}
	if err := checkPin("read_pin", pin); err != nil {
		return false, err
	}
	return mathx.Bit(d.inputs, uint(pin)), nil
}

// WritePin sets one bit of the pending output byte. Nothing is sent until
// Flush or Write.
func (d *Device) WritePin(pin int, v bool) error {
	if d.closed {
		return errcode.Closed
	}
	if err := checkPin("write_pin", pin); err != nil {
		return err
	}
	d.pending = mathx.SetBit(d.pending, uint(pin), v)
	return nil
}

// PendingPin reports one bit of the pending output byte.
func (d *Device) PendingPin(pin int) (bool, error) {
	if d.closed {
		return false, errcode.Closed
	}
	if err := checkPin("pending_pin", pin); err != nil {
		return false, err
	}
	return mathx.Bit(d.pending, uint(pin)), nil
}

// ReadOutputsPin decodes one pin of the confirmed output byte.
func (d *Device) ReadOutputsPin(pin int) (bool, error) {
	if d.closed {
		return false, errcode.Closed
	}
	if err := checkPin("read_outputs_pin", pin); err != nil {
		return false, err
	}
	return mathx.Bit(d.written, uint(pin)), nil
}
