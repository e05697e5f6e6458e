package tui

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Key represents a keyboard input.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlD
	KeyRune // Regular character
)

// KeyEvent represents a key press event.
type KeyEvent struct {
	Key  Key
	Rune rune // Only valid when Key == KeyRune
}

// controlKeys maps single control bytes to keys.
var controlKeys = map[byte]Key{
	0x03: KeyCtrlC,
	0x04: KeyCtrlD,
	0x08: KeyBackspace,
	0x09: KeyTab,
	0x0D: KeyEnter,
	0x7F: KeyBackspace,
}

// cursorKeys maps the final byte of a CSI or SS3 cursor sequence.
var cursorKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
}

// KeyReader decodes key presses from a raw terminal. An escape sequence is
// only recognised when its bytes arrive in the same read as the ESC byte,
// so a lone ESC is reported as soon as it is pressed.
type KeyReader struct {
	r *bufio.Reader
}

// NewKeyReader creates a KeyReader over raw terminal input.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReaderSize(r, 64)}
}

// ReadKey blocks until the next key press.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.r.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}
	if key, ok := controlKeys[b]; ok {
		return KeyEvent{Key: key}, nil
	}

	switch {
	case b == 0x1B:
		return k.readEscape(), nil
	case b >= 0x20 && b < 0x7F:
		return KeyEvent{Key: KeyRune, Rune: rune(b)}, nil
	case b >= 0xC0:
		return k.readRune(b)
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

func (k *KeyReader) readEscape() KeyEvent {
	if k.r.Buffered() == 0 {
		return KeyEvent{Key: KeyEscape}
	}

	intro, _ := k.r.ReadByte()
	if intro != '[' && intro != 'O' {
		_ = k.r.UnreadByte()
		return KeyEvent{Key: KeyEscape}
	}

	// Skip parameter bytes such as "1;5" up to the final byte
	for k.r.Buffered() > 0 {
		b, _ := k.r.ReadByte()
		if b < 0x40 || b > 0x7E {
			continue
		}
		if key, ok := cursorKeys[b]; ok {
			return KeyEvent{Key: key}
		}
		break
	}
	return KeyEvent{Key: KeyUnknown}
}

func (k *KeyReader) readRune(first byte) (KeyEvent, error) {
	n := runeLen(first)
	if n == 0 {
		return KeyEvent{Key: KeyUnknown}, nil
	}

	buf := []byte{first}
	for len(buf) < n {
		b, err := k.r.ReadByte()
		if err != nil {
			return KeyEvent{Key: KeyUnknown}, err
		}
		buf = append(buf, b)
	}

	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return KeyEvent{Key: KeyUnknown}, nil
	}
	return KeyEvent{Key: KeyRune, Rune: r}, nil
}

// runeLen returns the encoded length announced by a UTF-8 lead byte, or 0.
func runeLen(first byte) int {
	switch {
	case first&0xE0 == 0xC0:
		return 2
	case first&0xF0 == 0xE0:
		return 3
	case first&0xF8 == 0xF0:
		return 4
	}
	return 0
}

// Shortcut represents a dashboard keyboard shortcut.
type Shortcut int

const (
	ShortcutNone      Shortcut = iota
	ShortcutStart              // 's' - edit start time
	ShortcutTotal              // 't' - edit total units
	ShortcutProcessed          // 'p' or enter - edit processed count
	ShortcutUpdate             // 'u' - recompute from current fields
	ShortcutExport             // 'e' - export chart PNG
	ShortcutQuit               // 'q', esc or ctrl+c - quit
)

// ParseShortcut converts a KeyEvent to a Shortcut.
func ParseShortcut(ev KeyEvent) Shortcut {
	switch ev.Key {
	case KeyEscape, KeyCtrlC, KeyCtrlD:
		return ShortcutQuit
	case KeyEnter:
		return ShortcutProcessed
	case KeyRune:
		switch ev.Rune {
		case 's', 'S':
			return ShortcutStart
		case 't', 'T':
			return ShortcutTotal
		case 'p', 'P':
			return ShortcutProcessed
		case 'u', 'U':
			return ShortcutUpdate
		case 'e', 'E':
			return ShortcutExport
		case 'q', 'Q':
			return ShortcutQuit
		}
	}
	return ShortcutNone
}

// LineEditor handles single-line text input for the form fields.
type LineEditor struct {
	buffer []rune
	cursor int
}

// NewLineEditor creates an empty LineEditor.
func NewLineEditor() *LineEditor {
	return &LineEditor{
		buffer: make([]rune, 0, 32),
	}
}

// HandleKey processes a key event and updates the line buffer.
// Returns true if Enter was pressed (line complete), false otherwise.
func (e *LineEditor) HandleKey(ev KeyEvent) bool {
	switch ev.Key {
	case KeyEnter:
		return true
	case KeyBackspace:
		if e.cursor > 0 {
			// Remove character before cursor
			copy(e.buffer[e.cursor-1:], e.buffer[e.cursor:])
			e.buffer = e.buffer[:len(e.buffer)-1]
			e.cursor--
		}
	case KeyLeft:
		if e.cursor > 0 {
			e.cursor--
		}
	case KeyRight:
		if e.cursor < len(e.buffer) {
			e.cursor++
		}
	case KeyRune:
		// Insert character at cursor
		e.buffer = append(e.buffer, 0)
		copy(e.buffer[e.cursor+1:], e.buffer[e.cursor:])
		e.buffer[e.cursor] = ev.Rune
		e.cursor++
	}
	return false
}

// Text returns the current line content.
func (e *LineEditor) Text() string {
	return string(e.buffer)
}

// SetText replaces the buffer and moves the cursor to the end.
func (e *LineEditor) SetText(s string) {
	e.buffer = append(e.buffer[:0], []rune(s)...)
	e.cursor = len(e.buffer)
}

// Clear resets the line editor.
func (e *LineEditor) Clear() {
	e.buffer = e.buffer[:0]
	e.cursor = 0
}

// Cursor returns the current cursor position.
func (e *LineEditor) Cursor() int {
	return e.cursor
}

// Len returns the length of the current buffer.
func (e *LineEditor) Len() int {
	return len(e.buffer)
}
