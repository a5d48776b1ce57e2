package input

import (
	"io"
	"time"
)

// escapeTimeout bounds how long an incomplete escape sequence may sit in the
// decoder before it is resolved as a lone ESC or discarded.
const escapeTimeout = 50 * time.Millisecond

// Listener reads raw bytes from a terminal stream and emits decoded key
// events on a buffered channel. It runs two goroutines: a blocking reader
// and a parser that owns the decoder and the escape timeout.
type Listener struct {
	r      io.Reader
	events chan Event
	chunks chan []byte
	stop   chan struct{}
	done   chan struct{}
}

// NewListener wraps a raw input stream, usually os.Stdin in raw mode.
func NewListener(r io.Reader) *Listener {
	return &Listener{
		r:      r,
		events: make(chan Event, 64),
		chunks: make(chan []byte, 16),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Events returns the decoded key event channel. It is closed on Stop or
// when the underlying stream ends.
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Start launches the reader and parser goroutines.
func (l *Listener) Start() {
	go l.readLoop()
	go l.parseLoop()
}

// Stop terminates the parser. The reader goroutine may stay blocked inside
// its final Read until the terminal is restored; it holds no resources
// beyond its buffer, so it is simply abandoned.
func (l *Listener) Stop() {
	close(l.stop)
	<-l.done
}

func (l *Listener) readLoop() {
	defer close(l.chunks)
	for {
		buf := make([]byte, 64)
		n, err := l.r.Read(buf)
		if n > 0 {
			select {
			case l.chunks <- buf[:n]:
			case <-l.stop:
				return
			}
		}
		if err != nil {
			return
		}
		select {
		case <-l.stop:
			return
		default:
		}
	}
}

func (l *Listener) parseLoop() {
	defer close(l.done)
	defer close(l.events)

	var dec decoder
	timer := time.NewTimer(escapeTimeout)
	timer.Stop()
	timerArmed := false

	emit := func(events []Event) {
		for _, ev := range events {
			select {
			case l.events <- ev:
			case <-l.stop:
			}
		}
	}
	rearm := func() {
		if timerArmed && !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timerArmed = false
		if dec.Pending() {
			timer.Reset(escapeTimeout)
			timerArmed = true
		}
	}

	for {
		select {
		case chunk, ok := <-l.chunks:
			if !ok {
				emit(dec.Flush())
				return
			}
			emit(dec.Feed(chunk))
			rearm()
		case <-timer.C:
			timerArmed = false
			emit(dec.Flush())
		case <-l.stop:
			return
		}
	}
}
