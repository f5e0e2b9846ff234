package keynorm

import (
	"fmt"
	"log/slog"

	"github.com/bendahl/uinput"
)

// Forwarder re-emits key events through a virtual uinput keyboard. Used
// together with EvdevSource.Grab: grabbed devices deliver nothing to the
// rest of the system, so everything the handler did not suppress must be
// injected again here. A suppressed press is remembered so its repeats
// and the paired release are swallowed too.
type Forwarder struct {
	vkbd uinput.Keyboard
	log  *slog.Logger
	held map[int]bool
}

// NewForwarder creates a virtual keyboard with the given device name.
func NewForwarder(name string) (*Forwarder, error) {
	vkbd, err := uinput.CreateKeyboard("/dev/uinput", []byte(name))
	if err != nil {
		return nil, fmt.Errorf("create virtual keyboard: %w", err)
	}
	return &Forwarder{vkbd: vkbd, log: slog.Default(), held: make(map[int]bool)}, nil
}

// SetLogger replaces the forwarder's logger.
func (f *Forwarder) SetLogger(l *slog.Logger) {
	if l != nil {
		f.log = l
	}
}

// Down forwards a key press unless suppressed.
func (f *Forwarder) Down(code int, suppress bool) {
	if suppress {
		f.held[code] = true
		f.log.Debug("suppress down", "code", code)
		return
	}
	if err := f.vkbd.KeyDown(code); err != nil {
		f.log.Warn("forward down", "code", code, "error", err)
	}
}

// Repeat forwards an auto-repeat press. A repeat of a suppressed press
// stays suppressed regardless of the verdict for the repeat itself.
func (f *Forwarder) Repeat(code int, suppress bool) {
	if suppress || f.held[code] {
		return
	}
	if err := f.vkbd.KeyDown(code); err != nil {
		f.log.Warn("forward repeat", "code", code, "error", err)
	}
}

// Up forwards a key release, unless the paired press was suppressed.
func (f *Forwarder) Up(code int) {
	if f.held[code] {
		delete(f.held, code)
		return
	}
	if err := f.vkbd.KeyUp(code); err != nil {
		f.log.Warn("forward up", "code", code, "error", err)
	}
}

// Pass forwards an event verbatim, for keys outside the canonical table.
func (f *Forwarder) Pass(code int, value int32) {
	switch value {
	case 1, 2:
		f.Down(code, false)
	case 0:
		f.Up(code)
	}
}

// Close destroys the virtual keyboard.
func (f *Forwarder) Close() error {
	return f.vkbd.Close()
}
