package mcp23s17

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"piface-go/errcode"
)

func TestControlByte(t *testing.T) {
	for _, c := range []struct {
		addr uint8
		read bool
		want byte
	}{
		{0, false, 0x40},
		{0, true, 0x41},
		{3, false, 0x46},
		{7, true, 0x4F},
	} {
		if got := Control(c.addr, c.read); got != c.want {
			t.Fatalf("Control(%d,%v)=%#02x want %#02x", c.addr, c.read, got, c.want)
		}
		addr, read, ok := ParseControl(c.want)
		if !ok || addr != c.addr || read != c.read {
			t.Fatalf("ParseControl(%#02x)=(%d,%v,%v)", c.want, addr, read, ok)
		}
	}
	if _, _, ok := ParseControl(0x20); ok {
		t.Fatal("ParseControl accepted a foreign opcode")
	}
}

func TestKnownFrames(t *testing.T) {
	type C struct {
		name string
		enc  func() (Frame, error)
		want Frame
	}
	for _, c := range []C{
		{"iocon haen", func() (Frame, error) { return EncodeConfig(0, IOCON, IOCONHAEN) }, Frame{0x40, 0x0A, 0x08}},
		{"iodira out", func() (Frame, error) { return EncodeConfig(0, IODIRA, 0x00) }, Frame{0x40, 0x00, 0x00}},
		{"iodirb in", func() (Frame, error) { return EncodeConfig(1, IODIRB, 0xFF) }, Frame{0x42, 0x01, 0xFF}},
		{"gppub", func() (Frame, error) { return EncodeConfig(2, GPPUB, 0xFF) }, Frame{0x44, 0x0D, 0xFF}},
		{"read gpiob", func() (Frame, error) { return EncodeRead(0, GPIOB) }, Frame{0x41, 0x13, 0x00}},
		{"read gpioa", func() (Frame, error) { return EncodeRead(7, GPIOA) }, Frame{0x4F, 0x12, 0x00}},
		{"write gpioa", func() (Frame, error) { return EncodeWrite(3, GPIOA, 0xA5) }, Frame{0x46, 0x12, 0xA5}},
	} {
		got, err := c.enc()
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Fatalf("%s: frame mismatch (-want +got):\n%s", c.name, diff)
		}
	}
}

func TestEncodeRejects(t *testing.T) {
	cases := map[string]func() error{
		"config addr 8": func() error { _, err := EncodeConfig(8, IODIRA, 0); return err },
		"read addr 8":   func() error { _, err := EncodeRead(8, GPIOB); return err },
		"write addr 8":  func() error { _, err := EncodeWrite(8, GPIOA, 0); return err },
		"config port":   func() error { _, err := EncodeConfig(0, GPIOA, 0); return err },
		"write config":  func() error { _, err := EncodeWrite(0, IODIRA, 0); return err },
		"write status":  func() error { _, err := EncodeWrite(0, INTFA, 0); return err },
		"read unmapped": func() error { _, err := EncodeRead(0, Register(0x16)); return err },
	}
	for name, f := range cases {
		if err := f(); !errors.Is(err, errcode.Protocol) {
			t.Fatalf("%s: want protocol error, got %v", name, err)
		}
	}
}

func TestRegisterTable(t *testing.T) {
	if GPIOA.String() != "GPIOA" || Register(0x0B).String() != "IOCON" {
		t.Fatal("register names")
	}
	if Register(0x40).String() != "REG?" || Register(0x40).Class() != ClassUnknown {
		t.Fatal("out-of-map register")
	}
	for r := Register(0); r < NumRegisters; r++ {
		if r.Class() == ClassUnknown {
			t.Fatalf("register %#02x missing from table", byte(r))
		}
	}
	if ResetValue(IODIRA) != 0xFF || ResetValue(IODIRB) != 0xFF || ResetValue(GPIOA) != 0 {
		t.Fatal("reset values")
	}
}

func TestResponse(t *testing.T) {
	if Response(Frame{0, 0, 0x5A}) != 0x5A {
		t.Fatal("response slot")
	}
}
