package piface

import (
	"errors"
	"testing"

	"piface-go/errcode"
	"piface-go/spibus"
)

func TestResolve(t *testing.T) {
	type want struct {
		cs   spibus.ChipSelect
		addr uint8
	}
	split := map[int]want{
		0: {spibus.CS0, 0}, 3: {spibus.CS0, 3},
		4: {spibus.CS1, 0}, 7: {spibus.CS1, 3},
	}
	for board, w := range split {
		cs, addr, err := AddressingSplit.Resolve(board)
		if err != nil || cs != w.cs || addr != w.addr {
			t.Fatalf("split %d -> %v/%d (%v), want %v/%d", board, cs, addr, err, w.cs, w.addr)
		}
	}
	for board := 0; board < MaxBoards; board++ {
		cs, addr, err := AddressingShared.Resolve(board)
		if err != nil || cs != spibus.CS0 || int(addr) != board {
			t.Fatalf("shared %d -> %v/%d (%v)", board, cs, addr, err)
		}
	}
	for _, board := range []int{-1, 8} {
		if _, _, err := AddressingSplit.Resolve(board); !errors.Is(err, errcode.InvalidConfig) {
			t.Fatalf("board %d: %v", board, err)
		}
	}
	if _, _, err := Addressing(9).Resolve(0); !errors.Is(err, errcode.InvalidConfig) {
		t.Fatalf("unknown scheme: %v", err)
	}
}

func TestParseAddressing(t *testing.T) {
	for s, want := range map[string]Addressing{"": AddressingSplit, "split": AddressingSplit, "shared": AddressingShared} {
		got, err := ParseAddressing(s)
		if err != nil || got != want {
			t.Fatalf("ParseAddressing(%q)=%v,%v", s, got, err)
		}
		if s != "" && got.String() != s {
			t.Fatalf("String()=%q want %q", got.String(), s)
		}
	}
	if _, err := ParseAddressing("diagonal"); !errors.Is(err, errcode.InvalidConfig) {
		t.Fatalf("bad scheme: %v", err)
	}
}
