package link

// Mode is the addressing mode of an instruction word.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_IMMEDIATE = Mode(0) // I
	MODE_ABSOLUTE  = Mode(1) // A
	MODE_RELATIVE  = Mode(2) // R
	MODE_EXTERNAL  = Mode(3) // E
)

// modeMap maps the input mode letters.
var modeMap = map[string]Mode{
	"I": MODE_IMMEDIATE,
	"A": MODE_ABSOLUTE,
	"R": MODE_RELATIVE,
	"E": MODE_EXTERNAL,
}

// ParseMode decodes a mode letter.
func ParseMode(letter string) (mode Mode, err error) {
	mode, ok := modeMap[letter]
	if !ok {
		err = ErrModeInvalid(letter)
	}
	return
}
