package keynorm

import "strconv"

// Code is a canonical key code, independent of where the raw event came
// from. Values follow the legacy browser virtual-key numbering, so letters
// and digits coincide with their ASCII uppercase code points.
type Code int

const (
	KeyBackspace    Code = 8
	KeyTab          Code = 9
	KeyEnter        Code = 13
	KeyShift        Code = 16
	KeyCtrl         Code = 17
	KeyAlt          Code = 18
	KeyPause        Code = 19
	KeyCapsLock     Code = 20
	KeyEscape       Code = 27
	KeySpace        Code = 32
	KeyPageUp       Code = 33
	KeyPageDown     Code = 34
	KeyEnd          Code = 35
	KeyHome         Code = 36
	KeyLeft         Code = 37
	KeyUp           Code = 38
	KeyRight        Code = 39
	KeyDown         Code = 40
	KeyInsert       Code = 45
	KeyDelete       Code = 46
	KeyMeta         Code = 91
	KeyRightMeta    Code = 92
	KeySelect       Code = 93
	KeyMultiply     Code = 106
	KeyAdd          Code = 107
	KeySubtract     Code = 109
	KeyDecimal      Code = 110
	KeyDivide       Code = 111
	KeyNumLock      Code = 144
	KeyScrollLock   Code = 145
	KeySemicolon    Code = 186
	KeyEqual        Code = 187
	KeyComma        Code = 188
	KeyMinus        Code = 189
	KeyPeriod       Code = 190
	KeySlash        Code = 191
	KeyBackquote    Code = 192
	KeyLeftBracket  Code = 219
	KeyBackslash    Code = 220
	KeyRightBracket Code = 221
	KeyQuote        Code = 222
)

// Codes maps symbolic key names to canonical codes. Letters, digits,
// numpad digits and function keys are filled in at init; everything else
// is listed here. Callers may read it but must not modify it.
var Codes = map[string]Code{
	"backspace":    KeyBackspace,
	"tab":          KeyTab,
	"enter":        KeyEnter,
	"shift":        KeyShift,
	"ctrl":         KeyCtrl,
	"alt":          KeyAlt,
	"pause":        KeyPause,
	"capslock":     KeyCapsLock,
	"escape":       KeyEscape,
	"space":        KeySpace,
	"pageup":       KeyPageUp,
	"pagedown":     KeyPageDown,
	"end":          KeyEnd,
	"home":         KeyHome,
	"left":         KeyLeft,
	"up":           KeyUp,
	"right":        KeyRight,
	"down":         KeyDown,
	"insert":       KeyInsert,
	"delete":       KeyDelete,
	"meta":         KeyMeta,
	"rightmeta":    KeyRightMeta,
	"select":       KeySelect,
	"multiply":     KeyMultiply,
	"add":          KeyAdd,
	"subtract":     KeySubtract,
	"decimal":      KeyDecimal,
	"divide":       KeyDivide,
	"numlock":      KeyNumLock,
	"scrolllock":   KeyScrollLock,
	"semicolon":    KeySemicolon,
	"equal":        KeyEqual,
	"comma":        KeyComma,
	"minus":        KeyMinus,
	"period":       KeyPeriod,
	"slash":        KeySlash,
	"backquote":    KeyBackquote,
	"leftbracket":  KeyLeftBracket,
	"backslash":    KeyBackslash,
	"rightbracket": KeyRightBracket,
	"quote":        KeyQuote,
}

// Names is the reverse of Codes, derived by inversion at init.
var Names = make(map[Code]string, len(Codes))

// specialKeys are codes the key-down stage dispatches immediately: the
// character stage carries no extra information for them.
var specialKeys = map[Code]bool{
	KeyBackspace:  true,
	KeyTab:        true,
	KeyEnter:      true,
	KeyShift:      true,
	KeyCtrl:       true,
	KeyAlt:        true,
	KeyPause:      true,
	KeyCapsLock:   true,
	KeyEscape:     true,
	KeySpace:      true,
	KeyPageUp:     true,
	KeyPageDown:   true,
	KeyEnd:        true,
	KeyHome:       true,
	KeyLeft:       true,
	KeyUp:         true,
	KeyRight:      true,
	KeyDown:       true,
	KeyInsert:     true,
	KeyDelete:     true,
	KeyMeta:       true,
	KeyRightMeta:  true,
	KeyNumLock:    true,
	KeyScrollLock: true,
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		Codes[string(c)] = Code(c - 'a' + 'A')
	}
	for c := '0'; c <= '9'; c++ {
		Codes[string(c)] = Code(c)
	}
	for i := 0; i <= 9; i++ {
		Codes["numpad"+strconv.Itoa(i)] = Code(96 + i)
	}
	for i := 1; i <= 12; i++ {
		f := Code(111 + i)
		Codes["f"+strconv.Itoa(i)] = f
		specialKeys[f] = true
	}

	for name, code := range Codes {
		Names[code] = name
	}
}
