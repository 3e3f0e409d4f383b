// Package config holds the JSON description of a PiFace installation used by
// the command-line tools.
package config

import (
	"encoding/json"
	"os"
	"strconv"

	"periph.io/x/conn/v3/physic"

	"piface-go/drivers/piface"
	"piface-go/errcode"
	"piface-go/spibus"
)

// File is the top-level configuration document.
//
//	{"bus": 0, "speed_hz": 10000000, "addressing": "split",
//	 "boards": [{"address": 0}, {"address": 4, "pullup": false}]}
type File struct {
	Bus        int     `json:"bus"`
	SpeedHz    int64   `json:"speed_hz,omitempty"`   // 0 => spibus.DefaultSpeed
	Addressing string  `json:"addressing,omitempty"` // "split" (default) or "shared"
	Boards     []Board `json:"boards,omitempty"`
}

// Board carries per-board options. Pullup defaults to true when omitted.
type Board struct {
	Address      int   `json:"address"`
	Pullup       *bool `json:"pullup,omitempty"`
	InvertInput  bool  `json:"invert_input,omitempty"`
	InvertOutput bool  `json:"invert_output,omitempty"`
	SkipInit     bool  `json:"skip_init,omitempty"`
}

// Default is bus 0 with a single default board.
func Default() File {
	return File{Boards: []Board{{Address: 0}}}
}

// Decode parses src, which may be []byte, string, or an already-decoded
// value (e.g. map[string]any).
func Decode(src any) (File, error) {
	var f File
	var err error
	switch v := src.(type) {
	case []byte:
		err = json.Unmarshal(v, &f)
	case string:
		err = json.Unmarshal([]byte(v), &f)
	default:
		var b []byte
		if b, err = json.Marshal(v); err == nil {
			err = json.Unmarshal(b, &f)
		}
	}
	if err != nil {
		return File{}, errcode.Wrap(errcode.InvalidConfig, "config decode", err)
	}
	return f, f.Validate()
}

// Load reads and validates a configuration file.
func Load(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, errcode.Wrap(errcode.InvalidConfig, "config load", err)
	}
	return Decode(b)
}

// Validate checks addressing, board range and duplicates.
func (f File) Validate() error {
	a, err := piface.ParseAddressing(f.Addressing)
	if err != nil {
		return err
	}
	if f.Bus < 0 || f.SpeedHz < 0 {
		return errcode.New(errcode.InvalidConfig, "config", "bus and speed_hz must be non-negative")
	}
	var seen [piface.MaxBoards]bool
	for _, b := range f.Boards {
		if _, _, err := a.Resolve(b.Address); err != nil {
			return err
		}
		if seen[b.Address] {
			return errcode.New(errcode.InvalidConfig, "config", "duplicate board "+strconv.Itoa(b.Address))
		}
		seen[b.Address] = true
	}
	return nil
}

// Spidev returns the transport described by the file.
func (f File) Spidev() spibus.Spidev {
	return spibus.Spidev{Bus: f.Bus, Speed: physic.Frequency(f.SpeedHz) * physic.Hertz}
}

// AddressingScheme returns the parsed addressing, defaulting on error.
func (f File) AddressingScheme() piface.Addressing {
	a, _ := piface.ParseAddressing(f.Addressing)
	return a
}

// Lookup returns the entry for a board address, or a default entry.
func (f File) Lookup(address int) Board {
	for _, b := range f.Boards {
		if b.Address == address {
			return b
		}
	}
	return Board{Address: address}
}

// DriverConfig converts a board entry to a piface.Config.
func (b Board) DriverConfig(a piface.Addressing) piface.Config {
	cfg := piface.DefaultConfig()
	cfg.Address = b.Address
	if b.Pullup != nil {
		cfg.Pullup = *b.Pullup
	}
	cfg.InvertInput = b.InvertInput
	cfg.InvertOutput = b.InvertOutput
	cfg.SkipInit = b.SkipInit
	cfg.Addressing = a
	return cfg
}
