package input

import "unicode/utf8"

// decoder turns a raw byte stream into key events. It keeps a pending buffer
// so escape and UTF-8 sequences may arrive split across any number of reads
// and still decode exactly as if they were delivered contiguously.
type decoder struct {
	buf []byte
}

// Feed appends raw bytes and returns every event that is complete so far.
// Incomplete trailing sequences stay buffered for the next Feed or Flush.
func (d *decoder) Feed(data []byte) []Event {
	d.buf = append(d.buf, data...)

	var events []Event
	i := 0
	for i < len(d.buf) {
		consumed, ev, ok := decodeOne(d.buf[i:])
		if consumed == 0 {
			// Incomplete sequence: wait for more bytes.
			break
		}
		if ok {
			events = append(events, ev)
		}
		i += consumed
	}

	if i > 0 {
		rest := copy(d.buf, d.buf[i:])
		d.buf = d.buf[:rest]
	}
	return events
}

// Flush resolves a dangling buffer after the escape timeout. A lone ESC
// becomes a KeyEscape event; any other incomplete prefix is discarded so the
// decoder cannot stay stuck absorbing input.
func (d *decoder) Flush() []Event {
	defer func() { d.buf = d.buf[:0] }()
	if len(d.buf) == 1 && d.buf[0] == 0x1b {
		return []Event{{Key: KeyEscape}}
	}
	return nil
}

// Pending reports whether bytes are waiting for sequence completion.
func (d *decoder) Pending() bool {
	return len(d.buf) > 0
}

// decodeOne decodes the first event in data. It returns the number of bytes
// consumed (0 when the sequence is incomplete) and whether the event should
// be emitted; recognized-but-unmapped sequences consume bytes silently.
func decodeOne(data []byte) (int, Event, bool) {
	b := data[0]

	// Printable ASCII fast path.
	if b >= 0x20 && b < 0x7f {
		return 1, Event{Key: KeyRune, Rune: rune(b)}, true
	}

	if b == 0x1b {
		return decodeEscape(data)
	}

	switch b {
	case 0x03:
		return 1, Event{Key: KeyCtrlC}, true
	case 0x0a, 0x0d:
		return 1, Event{Key: KeyEnter}, true
	}

	// Remaining control bytes and DEL carry no meaning here.
	if b < 0x20 || b == 0x7f {
		return 1, Event{}, false
	}

	// UTF-8 multibyte rune.
	if !utf8.FullRune(data) {
		return 0, Event{}, false
	}
	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError && size == 1 {
		return 1, Event{}, false
	}
	return size, Event{Key: KeyRune, Rune: r}, true
}

// decodeEscape handles ESC-prefixed input. Arrow keys arrive as CSI
// sequences (ESC [ A..D); unknown complete CSI sequences are swallowed.
func decodeEscape(data []byte) (int, Event, bool) {
	if len(data) < 2 {
		return 0, Event{}, false
	}
	if data[1] != '[' {
		// Not a CSI prefix: treat the ESC as a standalone key and let the
		// following byte decode on its own.
		return 1, Event{Key: KeyEscape}, true
	}
	if len(data) < 3 {
		return 0, Event{}, false
	}

	// Scan for the CSI terminator (a letter or '~'), bounded so garbage
	// cannot grow the buffer forever.
	end := 2
	maxScan := len(data)
	if maxScan > 16 {
		maxScan = 16
	}
	for end < maxScan {
		b := data[end]
		end++
		if isCSITerminator(b) {
			switch b {
			case 'A':
				return end, Event{Key: KeyUp}, true
			case 'B':
				return end, Event{Key: KeyDown}, true
			case 'C':
				return end, Event{Key: KeyRight}, true
			case 'D':
				return end, Event{Key: KeyLeft}, true
			}
			// Complete but unrecognized sequence: discard silently.
			return end, Event{}, false
		}
		if b < 0x20 || b > 0x7e {
			// Malformed sequence, drop what we scanned.
			return end, Event{}, false
		}
	}
	if end >= 16 {
		// Overlong sequence: give up on it.
		return end, Event{}, false
	}
	return 0, Event{}, false
}

func isCSITerminator(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~'
}
