// cmd/pifacectl/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/exp/slog"

	"piface-go/config"
	"piface-go/legacy"
	"piface-go/spibus"
	"piface-go/x/logx"
)

var (
	board   = flag.Int("board", 0, "Board number 0-7")
	cfgPath = flag.String("config", "", "JSON configuration file")
	busNum  = flag.Int("bus", -1, "SPI bus number (overrides config)")
	sim     = flag.Bool("sim", false, "Use the in-memory MCP23S17 emulator (outputs loop back to inputs)")
	verbose = flag.Bool("v", false, "Log every SPI transaction")
)

const usage = `usage: pifacectl [flags] <command>

commands:
  read             print the input byte
  pin <n>          print one input pin
  write <byte>     write the output byte (0-255, 0x.. or 0b..)
  set <n> <0|1>    set one output pin
  outputs          read the output byte back from the device
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logx.New(os.Stderr, *verbose)
	if err := run(log, flag.Args()); err != nil {
		log.Error("pifacectl failed", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}

	file := config.Default()
	if *cfgPath != "" {
		var err error
		if file, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	if *busNum >= 0 {
		file.Bus = *busNum
	}

	var opener spibus.Opener = file.Spidev()
	if *sim {
		h := spibus.NewHostBus()
		h.Loopback = true
		opener = h
	}

	base := file.Lookup(*board).DriverConfig(file.AddressingScheme())
	base.Logger = log
	reg := legacy.NewRegistry(opener, base)
	if err := reg.Init(); err != nil {
		return err
	}
	defer func() {
		if err := reg.Deinit(); err != nil {
			log.Warn("deinit", "err", err)
		}
	}()

	return command(reg, *board, args)
}

func command(reg *legacy.Registry, b int, args []string) error {
	switch args[0] {
	case "read":
		v, err := reg.ReadInput(b)
		if err != nil {
			return err
		}
		fmt.Printf("%#02x %08b\n", v, v)
	case "pin":
		pin, err := intArg(args, 1)
		if err != nil {
			return err
		}
		v, err := reg.DigitalRead(pin, b)
		if err != nil {
			return err
		}
		fmt.Println(boolToInt(v))
	case "write":
		n, err := intArg(args, 1)
		if err != nil {
			return err
		}
		if n < 0 || n > 0xFF {
			return fmt.Errorf("byte out of range: %d", n)
		}
		v, err := reg.WriteOutput(byte(n), b)
		if err != nil {
			return err
		}
		fmt.Printf("%#02x %08b\n", v, v)
	case "set":
		pin, err := intArg(args, 1)
		if err != nil {
			return err
		}
		on, err := intArg(args, 2)
		if err != nil {
			return err
		}
		if err := reg.DigitalWrite(pin, on != 0, b); err != nil {
			return err
		}
	case "outputs":
		v, err := reg.ReadOutput(b)
		if err != nil {
			return err
		}
		fmt.Printf("%#02x %08b\n", v, v)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func intArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("%s: missing argument %d", args[0], i)
	}
	n, err := strconv.ParseInt(args[i], 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", args[0], err)
	}
	return int(n), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
