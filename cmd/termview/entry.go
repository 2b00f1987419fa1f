package main

import "unicode"

// maxEntryLen bounds the text typed into the entry line.
const maxEntryLen = 16

// textEntry is the one-line prompt that replaces the display text.
type textEntry struct {
	active bool
	buf    []rune
}

// Start opens the prompt with an empty buffer.
func (e *textEntry) Start() {
	e.active = true
	e.buf = e.buf[:0]
}

// Cancel closes the prompt without applying it.
func (e *textEntry) Cancel() {
	e.active = false
	e.buf = e.buf[:0]
}

// Type appends r if it is printable and the buffer has room.
func (e *textEntry) Type(r rune) {
	if !e.active || !unicode.IsPrint(r) || len(e.buf) >= maxEntryLen {
		return
	}
	e.buf = append(e.buf, r)
}

// Backspace removes the last rune.
func (e *textEntry) Backspace() {
	if len(e.buf) > 0 {
		e.buf = e.buf[:len(e.buf)-1]
	}
}

// Commit closes the prompt and returns the typed text.
func (e *textEntry) Commit() string {
	text := string(e.buf)
	e.Cancel()
	return text
}

// Active reports whether the prompt is open.
func (e *textEntry) Active() bool { return e.active }

// String is the prompt as drawn on the HUD row.
func (e *textEntry) String() string { return "text: " + string(e.buf) + "_" }
