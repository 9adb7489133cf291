package chess

// File is a board column, A=0 .. H=7.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
	NumFiles = 8
)

func (f File) String() string {
	return string(rune('a' + int(f)))
}

// Left returns the file one step left, wrapping from A to H.
func (f File) Left() File {
	return (f + 7) & 7
}

// Right returns the file one step right, wrapping from H to A.
func (f File) Right() File {
	return (f + 1) & 7
}

// fileFromChar converts 'a'..'h' (or 'A'..'H') into a File.
func fileFromChar(c byte) (File, bool) {
	switch {
	case c >= 'a' && c <= 'h':
		return File(c - 'a'), true
	case c >= 'A' && c <= 'H':
		return File(c - 'A'), true
	default:
		return 0, false
	}
}
