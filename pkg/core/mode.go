package core

import "fmt"

// Mode is a file-open mode accepted by Store.Write.
type Mode string

const (
	ModeRead             Mode = "r"
	ModeReadBinary       Mode = "rb"
	ModeReadWrite        Mode = "r+"
	ModeWrite            Mode = "w"
	ModeWriteBinary      Mode = "wb"
	ModeWriteRead        Mode = "w+"
	ModeWriteReadBinary  Mode = "wb+"
	ModeAppend           Mode = "a"
	ModeAppendBinary     Mode = "ab"
	ModeAppendRead       Mode = "a+"
	ModeAppendReadBinary Mode = "ab+"
	DefaultMode          Mode = ModeWriteRead
)

var modes = []Mode{
	ModeRead, ModeReadBinary, ModeReadWrite,
	ModeWrite, ModeWriteBinary, ModeWriteRead, ModeWriteReadBinary,
	ModeAppend, ModeAppendBinary, ModeAppendRead, ModeAppendReadBinary,
}

// Modes returns the supported modes in declaration order.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	for _, candidate := range modes {
		if m == candidate {
			return true
		}
	}
	return false
}

// ParseMode validates s against the supported modes.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return m, nil
}
