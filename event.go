package keynorm

// Event is the canonical, source-independent representation of a
// keystroke. Chr is empty when the keystroke carries no printable
// character (chords, navigation keys, function keys).
type Event struct {
	Key   Code
	Chr   string
	Ctrl  bool
	Alt   bool
	Shift bool
}

// RawKey is a raw key-down notification: a hardware code plus the
// modifier state at the time of the press, before character resolution.
type RawKey struct {
	Code  Code
	Ctrl  bool
	Alt   bool
	Shift bool
}

// RawChar is a raw character-input notification. Environments differ in
// which fields they populate: some never provide Which (HasWhich false,
// KeyCode carries the code point), some zero CharCode for non-printable
// keys, and some corrupt KeyCode at this stage entirely.
type RawChar struct {
	CharCode rune
	KeyCode  int
	Which    rune
	HasWhich bool
}

// Handler receives each normalized event. The return value tells the
// host whether the raw event should be suppressed from further
// propagation (default handling, forwarding).
type Handler func(Event) bool

// Source delivers raw events from a host environment. Implementations
// call the registered key-down handler once per physical press and the
// character handler for each character-input notification that follows.
// The bool returned by a handler is the suppression verdict for that
// raw event.
type Source interface {
	OnKeyDown(func(RawKey) bool)
	OnChar(func(RawChar) bool)
}
