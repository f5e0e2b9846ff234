// Package keynorm normalizes two-stage raw keyboard input — a key-down
// event carrying a hardware code and modifier flags, then a
// character-input event carrying printable-character information — into
// one canonical event delivered to a single registered callback. The
// callback's boolean return tells the host whether the raw event should
// be suppressed from further propagation.
//
// Translation is strictly sequential: sources deliver one raw event at
// a time and a Translator is not safe for concurrent use. On Linux,
// EvdevSource adapts evdev keyboards and synthesizes the character
// stage from a Layout; Forwarder re-emits unsuppressed events through a
// virtual uinput keyboard so grabbed devices keep working.
package keynorm
