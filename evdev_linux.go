package keynorm

import (
	"fmt"
	"log/slog"
	"sync"

	evdev "github.com/holoplot/go-evdev"
)

// evdevToCode maps Linux evdev key codes to canonical codes. Keys with
// no canonical counterpart (media keys, etc.) are simply absent and
// pass through the forwarder untranslated.
var evdevToCode = map[evdev.EvCode]Code{
	evdev.KEY_A: Code('A'), evdev.KEY_B: Code('B'),
	evdev.KEY_C: Code('C'), evdev.KEY_D: Code('D'),
	evdev.KEY_E: Code('E'), evdev.KEY_F: Code('F'),
	evdev.KEY_G: Code('G'), evdev.KEY_H: Code('H'),
	evdev.KEY_I: Code('I'), evdev.KEY_J: Code('J'),
	evdev.KEY_K: Code('K'), evdev.KEY_L: Code('L'),
	evdev.KEY_M: Code('M'), evdev.KEY_N: Code('N'),
	evdev.KEY_O: Code('O'), evdev.KEY_P: Code('P'),
	evdev.KEY_Q: Code('Q'), evdev.KEY_R: Code('R'),
	evdev.KEY_S: Code('S'), evdev.KEY_T: Code('T'),
	evdev.KEY_U: Code('U'), evdev.KEY_V: Code('V'),
	evdev.KEY_W: Code('W'), evdev.KEY_X: Code('X'),
	evdev.KEY_Y: Code('Y'), evdev.KEY_Z: Code('Z'),

	evdev.KEY_1: Code('1'), evdev.KEY_2: Code('2'),
	evdev.KEY_3: Code('3'), evdev.KEY_4: Code('4'),
	evdev.KEY_5: Code('5'), evdev.KEY_6: Code('6'),
	evdev.KEY_7: Code('7'), evdev.KEY_8: Code('8'),
	evdev.KEY_9: Code('9'), evdev.KEY_0: Code('0'),

	evdev.KEY_ENTER:      KeyEnter,
	evdev.KEY_TAB:        KeyTab,
	evdev.KEY_BACKSPACE:  KeyBackspace,
	evdev.KEY_ESC:        KeyEscape,
	evdev.KEY_SPACE:      KeySpace,
	evdev.KEY_CAPSLOCK:   KeyCapsLock,
	evdev.KEY_PAUSE:      KeyPause,
	evdev.KEY_LEFTSHIFT:  KeyShift,
	evdev.KEY_RIGHTSHIFT: KeyShift,
	evdev.KEY_LEFTCTRL:   KeyCtrl,
	evdev.KEY_RIGHTCTRL:  KeyCtrl,
	evdev.KEY_LEFTALT:    KeyAlt,
	evdev.KEY_RIGHTALT:   KeyAlt,
	evdev.KEY_LEFTMETA:   KeyMeta,
	evdev.KEY_RIGHTMETA:  KeyRightMeta,

	evdev.KEY_UP:       KeyUp,
	evdev.KEY_DOWN:     KeyDown,
	evdev.KEY_LEFT:     KeyLeft,
	evdev.KEY_RIGHT:    KeyRight,
	evdev.KEY_HOME:     KeyHome,
	evdev.KEY_END:      KeyEnd,
	evdev.KEY_PAGEUP:   KeyPageUp,
	evdev.KEY_PAGEDOWN: KeyPageDown,
	evdev.KEY_INSERT:   KeyInsert,
	evdev.KEY_DELETE:   KeyDelete,

	evdev.KEY_MINUS:      KeyMinus,
	evdev.KEY_EQUAL:      KeyEqual,
	evdev.KEY_LEFTBRACE:  KeyLeftBracket,
	evdev.KEY_RIGHTBRACE: KeyRightBracket,
	evdev.KEY_SEMICOLON:  KeySemicolon,
	evdev.KEY_APOSTROPHE: KeyQuote,
	evdev.KEY_GRAVE:      KeyBackquote,
	evdev.KEY_BACKSLASH:  KeyBackslash,
	evdev.KEY_COMMA:      KeyComma,
	evdev.KEY_DOT:        KeyPeriod,
	evdev.KEY_SLASH:      KeySlash,

	evdev.KEY_F1:  Code(112),
	evdev.KEY_F2:  Code(113),
	evdev.KEY_F3:  Code(114),
	evdev.KEY_F4:  Code(115),
	evdev.KEY_F5:  Code(116),
	evdev.KEY_F6:  Code(117),
	evdev.KEY_F7:  Code(118),
	evdev.KEY_F8:  Code(119),
	evdev.KEY_F9:  Code(120),
	evdev.KEY_F10: Code(121),
	evdev.KEY_F11: Code(122),
	evdev.KEY_F12: Code(123),

	evdev.KEY_NUMLOCK:    KeyNumLock,
	evdev.KEY_SCROLLLOCK: KeyScrollLock,

	evdev.KEY_KP0: Code(96), evdev.KEY_KP1: Code(97),
	evdev.KEY_KP2: Code(98), evdev.KEY_KP3: Code(99),
	evdev.KEY_KP4: Code(100), evdev.KEY_KP5: Code(101),
	evdev.KEY_KP6: Code(102), evdev.KEY_KP7: Code(103),
	evdev.KEY_KP8: Code(104), evdev.KEY_KP9: Code(105),
	evdev.KEY_KPASTERISK: KeyMultiply,
	evdev.KEY_KPPLUS:     KeyAdd,
	evdev.KEY_KPMINUS:    KeySubtract,
	evdev.KEY_KPDOT:      KeyDecimal,
	evdev.KEY_KPSLASH:    KeyDivide,
	evdev.KEY_KPENTER:    KeyEnter,
}

// FindKeyboards enumerates /dev/input devices and returns those that
// have both KEY_A and KEY_ENTER capabilities (i.e., physical keyboards).
func FindKeyboards() ([]*evdev.InputDevice, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	var kbds []*evdev.InputDevice
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}

		codes := dev.CapableEvents(evdev.EV_KEY)
		hasA := false
		hasEnter := false
		for _, c := range codes {
			if c == evdev.KEY_A {
				hasA = true
			}
			if c == evdev.KEY_ENTER {
				hasEnter = true
			}
		}

		if hasA && hasEnter {
			kbds = append(kbds, dev)
		} else {
			dev.Close()
		}
	}

	return kbds, nil
}

// rawEvent is one evdev key event as read by a monitor goroutine.
type rawEvent struct {
	code  evdev.EvCode
	value int32 // 1=press, 0=release, 2=repeat
}

// EvdevSource adapts Linux evdev keyboards to the Source interface. It
// synthesizes the character-input stage from the active layout, since
// evdev has no such stage of its own: one character event after each
// press, and one per auto-repeat.
type EvdevSource struct {
	devs []*evdev.InputDevice
	fwd  *Forwarder
	log  *slog.Logger

	mu     sync.Mutex
	layout *Layout

	onKey  func(RawKey) bool
	onChar func(RawChar) bool

	ctrl  bool
	alt   bool
	shift bool
}

// NewEvdevSource wraps the given devices with the given layout.
func NewEvdevSource(devs []*evdev.InputDevice, layout *Layout) *EvdevSource {
	return &EvdevSource{devs: devs, layout: layout, log: slog.Default()}
}

func (s *EvdevSource) OnKeyDown(h func(RawKey) bool) { s.onKey = h }
func (s *EvdevSource) OnChar(h func(RawChar) bool)   { s.onChar = h }

// SetLogger replaces the source's logger.
func (s *EvdevSource) SetLogger(l *slog.Logger) {
	if l != nil {
		s.log = l
	}
}

// SetForwarder installs a pass-through sink that re-emits events whose
// dispatch verdict was not "suppress".
func (s *EvdevSource) SetForwarder(f *Forwarder) { s.fwd = f }

// SetLayout swaps the active layout. Safe to call while Run is active;
// the swap takes effect on the next keystroke.
func (s *EvdevSource) SetLayout(l *Layout) {
	s.mu.Lock()
	s.layout = l
	s.mu.Unlock()
}

func (s *EvdevSource) activeLayout() *Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}

// Grab takes exclusive access to all devices so raw events reach only
// this process. Required for suppression to have any effect; pair with
// a Forwarder or the keyboard goes dark.
func (s *EvdevSource) Grab() error {
	for _, dev := range s.devs {
		if err := dev.Grab(); err != nil {
			name, _ := dev.Name()
			return fmt.Errorf("grab %s: %w", name, err)
		}
	}
	return nil
}

// Run reads events from all devices and runs the translation stages to
// completion, one event at a time, until every device is closed.
func (s *EvdevSource) Run() {
	ch := make(chan rawEvent, 64)
	var wg sync.WaitGroup

	for _, dev := range s.devs {
		wg.Add(1)
		go monitor(dev, ch, &wg)
	}
	go func() {
		wg.Wait()
		close(ch)
	}()

	for ev := range ch {
		s.handle(ev)
	}
}

// Close closes all devices, which unblocks Run.
func (s *EvdevSource) Close() {
	for _, dev := range s.devs {
		dev.Close()
	}
}

// monitor reads events from a single device and sends key events on the
// channel. Exits when the device is closed or errors.
func monitor(dev *evdev.InputDevice, ch chan<- rawEvent, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			return
		}
		if ev.Type == evdev.EV_KEY {
			ch <- rawEvent{code: ev.Code, value: ev.Value}
		}
	}
}

// handle runs both translation stages for one evdev event and hands the
// verdict to the forwarder, if any.
func (s *EvdevSource) handle(ev rawEvent) {
	s.trackModifiers(ev)

	code, known := evdevToCode[ev.code]
	if !known {
		// Untranslatable key: nothing to normalize, pass it through.
		s.log.Debug("unmapped key", "code", int(ev.code), "value", ev.value)
		if s.fwd != nil {
			s.fwd.Pass(int(ev.code), ev.value)
		}
		return
	}

	switch ev.value {
	case 1:
		suppress := false
		if s.onKey != nil {
			suppress = s.onKey(RawKey{Code: code, Ctrl: s.ctrl, Alt: s.alt, Shift: s.shift})
		}
		if sup := s.charStage(code); sup {
			suppress = true
		}
		if s.fwd != nil {
			s.fwd.Down(int(ev.code), suppress)
		}
	case 2:
		suppress := s.charStage(code)
		if s.fwd != nil {
			s.fwd.Repeat(int(ev.code), suppress)
		}
	case 0:
		if s.fwd != nil {
			s.fwd.Up(int(ev.code))
		}
	}
}

// charStage synthesizes the character-input event for a press or repeat.
// Chords get none, matching host environments that skip the character
// stage when Ctrl or Alt is held.
func (s *EvdevSource) charStage(code Code) bool {
	if s.onChar == nil || s.ctrl || s.alt {
		return false
	}
	chr := s.activeLayout().Char(code, s.shift)
	if chr == 0 {
		return false
	}
	return s.onChar(RawChar{
		CharCode: chr,
		KeyCode:  int(code),
		Which:    chr,
		HasWhich: true,
	})
}

// trackModifiers updates held-modifier state on both press and release.
func (s *EvdevSource) trackModifiers(ev rawEvent) {
	down := ev.value > 0
	switch ev.code {
	case evdev.KEY_LEFTSHIFT, evdev.KEY_RIGHTSHIFT:
		s.shift = down
	case evdev.KEY_LEFTCTRL, evdev.KEY_RIGHTCTRL:
		s.ctrl = down
	case evdev.KEY_LEFTALT, evdev.KEY_RIGHTALT:
		s.alt = down
	}
}
