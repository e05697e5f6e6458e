package tui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal handles raw terminal mode and provides ANSI escape helpers.
// In raw mode output post-processing is off, so lines are written with an
// explicit carriage return.
type Terminal struct {
	in       *os.File
	out      io.Writer
	oldState *term.State
	isRaw    bool
}

// NewTerminal creates a Terminal that reads from stdin and writes to the given writer.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		in:  os.Stdin,
		out: out,
	}
}

// EnterRaw puts the terminal into raw mode.
// Returns an error if already in raw mode or if the operation fails.
func (t *Terminal) EnterRaw() error {
	if t.isRaw {
		return fmt.Errorf("terminal already in raw mode")
	}

	fd := int(t.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}

	t.oldState = oldState
	t.isRaw = true
	return nil
}

// ExitRaw restores the terminal to its original state.
// Safe to call even if not in raw mode.
func (t *Terminal) ExitRaw() error {
	if !t.isRaw || t.oldState == nil {
		return nil
	}

	fd := int(t.in.Fd())
	if err := term.Restore(fd, t.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}

	t.isRaw = false
	t.oldState = nil
	return nil
}

// Size returns the current terminal width and height.
func (t *Terminal) Size() (width, height int, err error) {
	fd := int(t.in.Fd())
	width, height, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return width, height, nil
}

// Read reads up to len(p) bytes from the terminal input.
func (t *Terminal) Read(p []byte) (n int, err error) {
	return t.in.Read(p)
}

// ANSI escape sequences
const (
	// Screen control
	ClearScreen  = "\033[2J"     // Clear entire screen
	CursorHome   = "\033[H"      // Move cursor to home position (1,1)
	CursorHide   = "\033[?25l"   // Hide cursor
	CursorShow   = "\033[?25h"   // Show cursor
	AltScreenOn  = "\033[?1049h" // Switch to the alternate screen buffer
	AltScreenOff = "\033[?1049l" // Return to the main screen buffer

	// Text attributes
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	// Foreground colors
	FgRed    = "\033[31m"
	FgGreen  = "\033[32m"
	FgYellow = "\033[33m"
	FgBlue   = "\033[34m"
	FgCyan   = "\033[36m"

	// Bright foreground colors
	FgBrightBlack = "\033[90m"
	FgBrightGreen = "\033[92m"

	// Bell
	Bell = "\a"
)

// Write helpers for Terminal

// Clear clears the screen and moves cursor to home.
func (t *Terminal) Clear() {
	fmt.Fprint(t.out, ClearScreen+CursorHome)
}

// HideCursor hides the cursor.
func (t *Terminal) HideCursor() {
	fmt.Fprint(t.out, CursorHide)
}

// ShowCursor shows the cursor.
func (t *Terminal) ShowCursor() {
	fmt.Fprint(t.out, CursorShow)
}

// RingBell sounds the terminal bell.
func (t *Terminal) RingBell() {
	fmt.Fprint(t.out, Bell)
}

// Write writes the given string to the terminal output.
func (t *Terminal) Write(s string) {
	fmt.Fprint(t.out, s)
}

// WriteLine writes a string followed by CRLF to the terminal output.
func (t *Terminal) WriteLine(s string) {
	fmt.Fprint(t.out, s+"\r\n")
}

// EnterAltScreen switches to the alternate screen so the dashboard does not
// scroll the user's shell history.
func (t *Terminal) EnterAltScreen() {
	fmt.Fprint(t.out, AltScreenOn)
}

// ExitAltScreen returns to the main screen.
func (t *Terminal) ExitAltScreen() {
	fmt.Fprint(t.out, AltScreenOff)
}
