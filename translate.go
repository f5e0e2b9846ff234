package keynorm

import "log/slog"

// Translator turns the two-stage raw event stream (key-down, then zero or
// more character-input events) into normalized events for a single
// handler. It keeps the last key-down and two flags as session state, so
// it must only see one raw event at a time; sources serialize delivery.
type Translator struct {
	handler Handler
	log     *slog.Logger

	last       RawKey
	dispatched bool
	firstChar  bool
	attached   bool
}

// New creates a Translator dispatching to h.
func New(h Handler) *Translator {
	return &Translator{handler: h, log: slog.Default()}
}

// SetLogger replaces the translator's logger.
func (t *Translator) SetLogger(l *slog.Logger) {
	if l != nil {
		t.log = l
	}
}

// Attach registers the two translation stages with src. Calls after the
// first are no-ops; a translator binds to exactly one source.
func (t *Translator) Attach(src Source) {
	if t.attached {
		return
	}
	t.attached = true
	src.OnKeyDown(t.KeyDown)
	src.OnChar(t.Char)
}

// KeyDown translates a raw key-down event. Chords (Ctrl or Alt held) and
// special keys are authoritative here and dispatch immediately with an
// empty character; anything else defers to the character stage, which
// carries printable-character information this event cannot reliably
// provide. Returns the suppression verdict for the raw event.
func (t *Translator) KeyDown(raw RawKey) bool {
	t.last = raw
	t.firstChar = true

	if raw.Ctrl || raw.Alt || specialKeys[raw.Code] {
		t.dispatched = true
		return t.dispatch(Event{
			Key:   raw.Code,
			Ctrl:  raw.Ctrl,
			Alt:   raw.Alt,
			Shift: raw.Shift,
		})
	}

	t.dispatched = false
	return false
}

// Char translates a raw character-input event. If the key-down stage
// already dispatched this keystroke the event is swallowed; the flag
// stays set so auto-repeated character events stay swallowed too. The
// key code comes from the stored key-down for the first character event
// of a keystroke, since some environments corrupt the code at this
// stage; repeats trust their own KeyCode field.
func (t *Translator) Char(raw RawChar) bool {
	if t.dispatched {
		return false
	}

	ev := Event{
		Ctrl:  t.last.Ctrl,
		Alt:   t.last.Alt,
		Shift: t.last.Shift,
	}
	if t.firstChar {
		ev.Key = t.last.Code
		t.firstChar = false
	} else {
		ev.Key = Code(raw.KeyCode)
	}

	var chr rune
	switch {
	case !raw.HasWhich:
		// Environments without a unified field put the code point in
		// KeyCode at this stage.
		chr = rune(raw.KeyCode)
	case raw.Which != 0 && raw.CharCode != 0:
		chr = raw.Which
	default:
		// A zero in either field means no printable character.
		chr = 0
	}
	if chr != 0 {
		ev.Chr = string(chr)
	}

	return t.dispatch(ev)
}

func (t *Translator) dispatch(ev Event) bool {
	if t.handler == nil {
		return false
	}
	suppress := t.handler(ev)
	t.log.Debug("dispatch",
		"key", int(ev.Key),
		"name", Names[ev.Key],
		"chr", ev.Chr,
		"ctrl", ev.Ctrl,
		"alt", ev.Alt,
		"shift", ev.Shift,
		"suppress", suppress)
	return suppress
}
