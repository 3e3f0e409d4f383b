package main

import (
	"testing"

	"piface-go/drivers/mcp23s17"
	"piface-go/drivers/piface"
	"piface-go/legacy"
	"piface-go/spibus"
)

func TestCommands(t *testing.T) {
	h := spibus.NewHostBus()
	h.Loopback = true
	reg := legacy.NewRegistry(h, piface.DefaultConfig())
	if err := reg.Init(); err != nil {
		t.Fatal(err)
	}
	defer reg.Deinit()

	for _, args := range [][]string{
		{"write", "0x0f"},
		{"set", "7", "1"},
		{"read"},
		{"pin", "7"},
		{"outputs"},
	} {
		if err := command(reg, 1, args); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
	if got := h.Register(spibus.CS0, 1, mcp23s17.OLATA); got != 0x8F {
		t.Fatalf("OLATA=%#x want 0x8f", got)
	}

	for _, args := range [][]string{
		{"write", "256"},
		{"write"},
		{"set", "9", "1"},
		{"pin", "x"},
		{"frobnicate"},
	} {
		if err := command(reg, 1, args); err == nil {
			t.Fatalf("%v: expected error", args)
		}
	}
}
