package overlay

// KeyPress describes a key event with its modifiers.
type KeyPress struct {
	Key   string
	Meta  bool
	Shift bool
	Ctrl  bool
}

// IsCaptureChord reports whether a key press matches a known
// screenshot or printing shortcut.
func IsCaptureChord(press KeyPress) bool {
	if press.Key == "PrintScreen" {
		return true
	}
	if press.Meta && press.Shift && (press.Key == "3" || press.Key == "4" || press.Key == "5") {
		return true
	}
	if press.Ctrl && press.Key == "p" {
		return true
	}

	return false
}
