package keynorm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KeyChar holds the normal and shifted printable characters of a key.
type KeyChar struct {
	Normal  string `yaml:"normal"`
	Shifted string `yaml:"shifted"`
}

// Layout maps canonical key codes to printable characters. Sources whose
// host environment has no character-input stage (evdev) use a Layout to
// synthesize one.
type Layout struct {
	name  string
	chars map[Code]KeyChar
}

// Name returns the layout's name.
func (l *Layout) Name() string { return l.name }

// Char returns the printable character for code under the given shift
// state, or 0 when the key produces none.
func (l *Layout) Char(code Code, shift bool) rune {
	kc, ok := l.chars[code]
	if !ok {
		return 0
	}
	s := kc.Normal
	if shift {
		s = kc.Shifted
	}
	for _, r := range s {
		return r
	}
	return 0
}

// usChars is the US/International layout. Letter and digit codes
// coincide with their ASCII uppercase code points, so the keys are
// written as character constants.
var usChars = map[Code]KeyChar{
	Code('A'): {"a", "A"}, Code('B'): {"b", "B"},
	Code('C'): {"c", "C"}, Code('D'): {"d", "D"},
	Code('E'): {"e", "E"}, Code('F'): {"f", "F"},
	Code('G'): {"g", "G"}, Code('H'): {"h", "H"},
	Code('I'): {"i", "I"}, Code('J'): {"j", "J"},
	Code('K'): {"k", "K"}, Code('L'): {"l", "L"},
	Code('M'): {"m", "M"}, Code('N'): {"n", "N"},
	Code('O'): {"o", "O"}, Code('P'): {"p", "P"},
	Code('Q'): {"q", "Q"}, Code('R'): {"r", "R"},
	Code('S'): {"s", "S"}, Code('T'): {"t", "T"},
	Code('U'): {"u", "U"}, Code('V'): {"v", "V"},
	Code('W'): {"w", "W"}, Code('X'): {"x", "X"},
	Code('Y'): {"y", "Y"}, Code('Z'): {"z", "Z"},

	Code('1'): {"1", "!"}, Code('2'): {"2", "@"},
	Code('3'): {"3", "#"}, Code('4'): {"4", "$"},
	Code('5'): {"5", "%"}, Code('6'): {"6", "^"},
	Code('7'): {"7", "&"}, Code('8'): {"8", "*"},
	Code('9'): {"9", "("}, Code('0'): {"0", ")"},

	KeyMinus:        {"-", "_"},
	KeyEqual:        {"=", "+"},
	KeyLeftBracket:  {"[", "{"},
	KeyRightBracket: {"]", "}"},
	KeySemicolon:    {";", ":"},
	KeyQuote:        {"'", "\""},
	KeyBackquote:    {"`", "~"},
	KeyBackslash:    {"\\", "|"},
	KeyComma:        {",", "<"},
	KeyPeriod:       {".", ">"},
	KeySlash:        {"/", "?"},
	KeySpace:        {" ", " "},

	Code(96): {"0", "0"}, Code(97): {"1", "1"},
	Code(98): {"2", "2"}, Code(99): {"3", "3"},
	Code(100): {"4", "4"}, Code(101): {"5", "5"},
	Code(102): {"6", "6"}, Code(103): {"7", "7"},
	Code(104): {"8", "8"}, Code(105): {"9", "9"},
	KeyMultiply: {"*", "*"},
	KeyAdd:      {"+", "+"},
	KeySubtract: {"-", "-"},
	KeyDecimal:  {".", "."},
	KeyDivide:   {"/", "/"},
}

// USLayout returns the built-in US layout.
func USLayout() *Layout {
	return &Layout{name: "us", chars: usChars}
}

// layoutFile is the YAML representation of a custom layout: a name and
// per-key-name character entries.
type layoutFile struct {
	Name string             `yaml:"name"`
	Keys map[string]KeyChar `yaml:"keys"`
}

// LoadLayout reads a custom layout from a YAML file. Keys are looked up
// by symbolic name; unknown names are an error so typos do not silently
// drop keys. Keys absent from the file fall back to the US layout.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}

	var lf layoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if lf.Name == "" {
		return nil, fmt.Errorf("%s: layout has no name", path)
	}

	chars := make(map[Code]KeyChar, len(usChars)+len(lf.Keys))
	for code, kc := range usChars {
		chars[code] = kc
	}
	for name, kc := range lf.Keys {
		code, ok := Codes[name]
		if !ok {
			return nil, fmt.Errorf("%s: unknown key name %q", path, name)
		}
		chars[code] = kc
	}

	return &Layout{name: lf.Name, chars: chars}, nil
}
