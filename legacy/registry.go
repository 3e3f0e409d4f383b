// Package legacy exposes the older board-indexed PiFace API (init,
// digital_read, digital_write, ...) over the piface driver.
//
// The process-wide table of that API is an explicit Registry here: create one
// per bus, Init it, and Deinit it when done. Boards are opened lazily on
// first use with the Registry's base configuration.
//
// Unlike piface.Device, DigitalWrite sends a transaction on every call that
// changes an output; batch through Board(n) when that matters.
package legacy

import (
	"errors"
	"strconv"
	"sync"

	"golang.org/x/exp/slog"

	"piface-go/drivers/piface"
	"piface-go/errcode"
	"piface-go/spibus"
	"piface-go/x/logx"
	"piface-go/x/mathx"
)

// Registry maps board index to at most one live piface.Device.
// It is safe for concurrent use; calls are serialised on one lock.
type Registry struct {
	opener spibus.Opener
	base   piface.Config
	log    *slog.Logger

	mu     sync.Mutex
	active bool
	boards [piface.MaxBoards]*piface.Device
}

// NewRegistry returns an uninitialised registry. base supplies every board
// option except Address.
func NewRegistry(opener spibus.Opener, base piface.Config) *Registry {
	return &Registry{
		opener: opener,
		base:   base,
		log:    logx.Or(base.Logger),
	}
}

// Init activates the registry, first closing boards left from an earlier
// session. No board is opened.
func (r *Registry) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.closeAll()
	r.active = true
	r.log.Debug("legacy registry active")
	return err
}

// Deinit closes every board and returns the registry to uninitialised.
// Calling it when already uninitialised is a no-op.
func (r *Registry) Deinit() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return nil
	}
	err := r.closeAll()
	r.active = false
	r.log.Debug("legacy registry released")
	return err
}

// Active reports whether Init has been called without a matching Deinit.
func (r *Registry) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *Registry) closeAll() error {
	var errs []error
	for i, d := range r.boards {
		if d == nil {
			continue
		}
		if err := d.Close(); err != nil {
			errs = append(errs, errcode.Wrap(errcode.DeviceIO, "close board "+strconv.Itoa(i), err))
		}
		r.boards[i] = nil
	}
	return errors.Join(errs...)
}

// get returns the board, opening it on first use. Caller holds r.mu.
func (r *Registry) get(board int) (*piface.Device, error) {
	if !r.active {
		return nil, errcode.NotInitialised
	}
	if !mathx.Between(board, 0, piface.MaxBoards-1) {
		return nil, errcode.New(errcode.InvalidConfig, "legacy", "board number must be 0 to 7")
	}
	if d := r.boards[board]; d != nil {
		return d, nil
	}
	cfg := r.base
	cfg.Address = board
	d, err := piface.New(r.opener, cfg)
	if err != nil {
		return nil, err
	}
	r.boards[board] = d
	return d, nil
}

// Board returns the device for a board index, opening it if needed.
// The device stays owned by the registry; do not Close it.
func (r *Registry) Board(board int) (*piface.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(board)
}

// DigitalRead samples the board's inputs and returns one pin.
func (r *Registry) DigitalRead(pin, board int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, err := r.get(board)
	if err != nil {
		return false, err
	}
	if _, err := d.Read(); err != nil {
		return false, err
	}
	return d.ReadPin(pin)
}

// DigitalWrite sets one output pin and writes it through immediately.
func (r *Registry) DigitalWrite(pin int, v bool, board int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, err := r.get(board)
	if err != nil {
		return err
	}
	if err := d.WritePin(pin, v); err != nil {
		return err
	}
	return d.Flush()
}

// ReadInput samples and returns the whole input byte.
func (r *Registry) ReadInput(board int) (byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, err := r.get(board)
	if err != nil {
		return 0, err
	}
	return d.Read()
}

// ReadOutput reads the output byte back from the device.
func (r *Registry) ReadOutput(board int) (byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, err := r.get(board)
	if err != nil {
		return 0, err
	}
	return d.ReadOutputs()
}

// ReadOutputLast returns the cached output byte without bus traffic.
func (r *Registry) ReadOutputLast(board int) (byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, err := r.get(board)
	if err != nil {
		return 0, err
	}
	return d.OutputsLast(), nil
}

// WriteOutput writes the whole output byte and returns the value now
// confirmed on the device.
func (r *Registry) WriteOutput(v byte, board int) (byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, err := r.get(board)
	if err != nil {
		return 0, err
	}
	err = d.Write(v)
	return d.OutputsLast(), err
}
