package ui

import (
	"bytes"
	"io"
	"strings"
)

// FrameWriter owns the terminal output side: it enters the alternate screen
// once, repaints full frames in place, and restores the screen on Stop.
// Frames are written with per-line erase instead of a full clear so repaints
// do not flicker.
type FrameWriter struct {
	out     io.Writer
	buf     bytes.Buffer
	started bool
}

// NewFrameWriter wraps the terminal output stream, usually os.Stdout.
func NewFrameWriter(out io.Writer) *FrameWriter {
	return &FrameWriter{out: out}
}

// Start switches to the alternate screen and hides the cursor.
func (f *FrameWriter) Start() {
	if f.started {
		return
	}
	f.started = true
	io.WriteString(f.out, "\x1b[?1049h\x1b[?25l\x1b[2J\x1b[H")
}

// Stop leaves the alternate screen and restores the cursor. Safe to call
// multiple times; it must run on every exit path.
func (f *FrameWriter) Stop() {
	if !f.started {
		return
	}
	f.started = false
	io.WriteString(f.out, "\x1b[?25h\x1b[?1049l")
}

// Draw repaints the terminal with one composed frame. The terminal is in
// raw mode, so every newline needs an explicit carriage return.
func (f *FrameWriter) Draw(frame string) {
	if !f.started {
		return
	}
	f.buf.Reset()
	f.buf.WriteString("\x1b[H")
	for i, line := range strings.Split(frame, "\n") {
		if i > 0 {
			f.buf.WriteString("\r\n")
		}
		f.buf.WriteString(line)
		f.buf.WriteString("\x1b[K")
	}
	f.buf.WriteString("\x1b[J")
	f.buf.WriteTo(f.out)
}
