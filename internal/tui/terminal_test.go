package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestANSIEscapeConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		constant string
		want     string
	}{
		{"ClearScreen", ClearScreen, "\033[2J"},
		{"CursorHome", CursorHome, "\033[H"},
		{"CursorHide", CursorHide, "\033[?25l"},
		{"CursorShow", CursorShow, "\033[?25h"},
		{"AltScreenOn", AltScreenOn, "\033[?1049h"},
		{"AltScreenOff", AltScreenOff, "\033[?1049l"},
		{"Reset", Reset, "\033[0m"},
		{"Bold", Bold, "\033[1m"},
		{"Dim", Dim, "\033[2m"},
		{"FgRed", FgRed, "\033[31m"},
		{"FgGreen", FgGreen, "\033[32m"},
		{"FgBrightGreen", FgBrightGreen, "\033[92m"},
		{"Bell", Bell, "\a"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.constant)
		})
	}
}

func TestTerminalOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		write func(*Terminal)
		want  string
	}{
		{"write", func(term *Terminal) { term.Write("hello") }, "hello"},
		{"write line uses CRLF", func(term *Terminal) { term.WriteLine("hello") }, "hello\r\n"},
		{"clear", func(term *Terminal) { term.Clear() }, ClearScreen + CursorHome},
		{"hide cursor", func(term *Terminal) { term.HideCursor() }, CursorHide},
		{"show cursor", func(term *Terminal) { term.ShowCursor() }, CursorShow},
		{"bell", func(term *Terminal) { term.RingBell() }, Bell},
		{"alt screen on", func(term *Terminal) { term.EnterAltScreen() }, AltScreenOn},
		{"alt screen off", func(term *Terminal) { term.ExitAltScreen() }, AltScreenOff},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.write(NewTerminal(&buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTerminalExitRawWithoutEnter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(&buf)

	assert.NoError(t, term.ExitRaw())
	assert.Empty(t, buf.String())
}
