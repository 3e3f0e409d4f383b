package errcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"invalid_config":  InvalidConfig,
		"invalid_pin":     InvalidPin,
		"protocol":        Protocol,
		"device_init":     DeviceInit,
		"device_io":       DeviceIO,
		"closed":          Closed,
		"not_initialised": NotInitialised,
		"open_failed":     OpenFailed,
		"unsupported":     Unsupported,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestWrapKeepsCodeAndCause(t *testing.T) {
	cause := errors.New("ioctl failed")
	err := Wrap(DeviceIO, "read", cause)

	if !errors.Is(err, DeviceIO) {
		t.Fatalf("errors.Is(err, DeviceIO) = false for %v", err)
	}
	if errors.Is(err, Closed) {
		t.Fatalf("errors.Is(err, Closed) = true for %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	if got := err.Error(); got != "read: device_io: ioctl failed" {
		t.Fatalf("Error() = %q", got)
	}

	outer := fmt.Errorf("board 2: %w", err)
	if !errors.Is(outer, DeviceIO) {
		t.Fatalf("code lost through fmt wrapping: %v", outer)
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(DeviceIO, "read", nil); err != nil {
		t.Fatalf("Wrap(nil) = %v", err)
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("Of(nil) != OK")
	}
	if Of(Closed) != Closed {
		t.Fatal("Of(bare code) mismatch")
	}
	if Of(New(InvalidPin, "read_pin", "pin 8")) != InvalidPin {
		t.Fatal("Of(*E) mismatch")
	}
	if Of(errors.New("x")) != Error {
		t.Fatal("Of(foreign) should fall back to Error")
	}
}
