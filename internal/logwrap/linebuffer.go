package logwrap

// defaultBufferSize is the fixed capacity of the line reassembly
// buffer. One byte is reserved, so a forced flush emits at most
// defaultBufferSize-1 bytes.
const defaultBufferSize = 4096

// lineBuffer reassembles a raw byte stream into lines. It is a fixed
// region with two cursors: everything in [0, processed) has been
// emitted (or is the start of a compacted fragment), and [processed,
// write) is data waiting for a newline.
//
// Invariant: 0 <= processed <= write <= len(buf)-1. The capacity never
// changes for the lifetime of one pump run.
//
// Splitting is purely byte-oriented. Multi-byte encodings are not
// understood and can be cut by a forced flush.
type lineBuffer struct {
	buf       []byte
	processed int
	write     int
}

func newLineBuffer(capacity int) *lineBuffer {
	if capacity <= 0 {
		capacity = defaultBufferSize
	}
	return &lineBuffer{buf: make([]byte, capacity)}
}

// writable returns the region the next read should fill, starting at
// the write cursor. Empty when the buffer is full.
func (b *lineBuffer) writable() []byte {
	return b.buf[b.write : len(b.buf)-1]
}

// advance consumes n bytes just read into writable(), emitting one
// call per completed line. A newline ends a line; carriage returns
// immediately preceding it are absorbed with it (a terminal in cooked
// mode rewrites the child's "\n" to "\r\n", so a child-written "\r\n"
// arrives as "\r\r\n"). Carriage returns elsewhere are kept as data.
// If the buffer fills with no line found, the entire content is
// force-flushed as a single line so an unterminated line cannot grow
// without bound. Any partial fragment is compacted to the front of the
// buffer.
//
// The slice passed to emit aliases the internal buffer and is only
// valid for the duration of the call. Returns whether a forced flush
// happened.
func (b *lineBuffer) advance(n int, emit func(line []byte)) (forced bool) {
	end := b.write + n
	for i := b.write; i < end; i++ {
		if b.buf[i] != '\n' {
			continue
		}
		lineEnd := i
		for lineEnd > b.processed && b.buf[lineEnd-1] == '\r' {
			lineEnd--
		}
		emit(b.buf[b.processed:lineEnd])
		b.processed = i + 1
	}
	b.write = end

	switch {
	case b.processed == 0 && b.write == len(b.buf)-1:
		// Buffer full with no newline seen: flush one bufferful.
		emit(b.buf[:b.write])
		b.write = 0
		forced = true
	case b.processed != b.write:
		// Keep the leftover partial line for the next read.
		b.write = copy(b.buf, b.buf[b.processed:b.write])
		b.processed = 0
	default:
		b.processed = 0
		b.write = 0
	}
	return forced
}

// flush emits the remaining unterminated fragment, if any, as a final
// line. Called once after the child has hung up and been reaped.
func (b *lineBuffer) flush(emit func(line []byte)) {
	if b.processed != b.write {
		emit(b.buf[b.processed:b.write])
		b.processed = 0
		b.write = 0
	}
}

// pending reports how many unemitted bytes are buffered.
func (b *lineBuffer) pending() int {
	return b.write - b.processed
}
