// Package wire implements a small sequential byte buffer used to
// assemble outbound datagrams and parse inbound ones on the Sign-on
// Verify and Remote Command channels. It holds no socket and does no
// I/O of its own — it is local scratch space, built fresh for each
// frame (spec §4.2).
package wire

// Buffer is an append-only write cursor plus an independent read
// cursor over the same backing slice.
type Buffer struct {
	data   []byte
	cursor int
}

// New returns an empty Buffer ready for appends.
func New() *Buffer {
	return &Buffer{}
}

// NewFromBytes wraps an existing byte slice for reading. The write
// cursor (for further appends) starts at the end of data.
func NewFromBytes(data []byte) *Buffer {
	return &Buffer{data: data}
}

// PutUint8 appends a single byte.
func (b *Buffer) PutUint8(v uint8) {
	b.data = append(b.data, v)
}

// PutUint16 appends v as 2 big-endian bytes.
func (b *Buffer) PutUint16(v uint16) {
	b.data = append(b.data, byte(v>>8), byte(v))
}

// PutUint32 appends v as 4 big-endian bytes.
func (b *Buffer) PutUint32(v uint32) {
	b.data = append(b.data, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// PutUint64 appends v as 8 big-endian bytes.
func (b *Buffer) PutUint64(v uint64) {
	for i := 7; i >= 0; i-- {
		b.data = append(b.data, byte(v>>uint(8*i)))
	}
}

// PutBytes appends raw bytes verbatim.
func (b *Buffer) PutBytes(p []byte) {
	b.data = append(b.data, p...)
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the full backing slice. Callers must not mutate it.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// SetCursor repositions the read cursor.
func (b *Buffer) SetCursor(pos int) {
	b.cursor = pos
}

// Cursor returns the current read cursor position.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Remaining returns how many bytes are left to read from the cursor.
func (b *Buffer) Remaining() int {
	n := len(b.data) - b.cursor
	if n < 0 {
		return 0
	}
	return n
}

// ReadUint8 reads one byte and advances the cursor. Reading past the
// end returns 0, matching the codec's tolerant-read convention (spec
// §4.1): callers that need a hard boundary check use Remaining first.
func (b *Buffer) ReadUint8() uint8 {
	if b.cursor >= len(b.data) {
		return 0
	}
	v := b.data[b.cursor]
	b.cursor++
	return v
}

// ReadUint16 reads 2 big-endian bytes and advances the cursor.
func (b *Buffer) ReadUint16() uint16 {
	v := uint16(0)
	for i := 0; i < 2; i++ {
		v = v<<8 | uint16(b.readByteOrZero())
	}
	return v
}

// ReadUint32 reads 4 big-endian bytes and advances the cursor.
func (b *Buffer) ReadUint32() uint32 {
	v := uint32(0)
	for i := 0; i < 4; i++ {
		v = v<<8 | uint32(b.readByteOrZero())
	}
	return v
}

// ReadUint64 reads 8 big-endian bytes and advances the cursor.
func (b *Buffer) ReadUint64() uint64 {
	v := uint64(0)
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b.readByteOrZero())
	}
	return v
}

func (b *Buffer) readByteOrZero() byte {
	if b.cursor >= len(b.data) {
		return 0
	}
	v := b.data[b.cursor]
	b.cursor++
	return v
}

// ReadBytes reads n raw bytes and advances the cursor. If fewer than n
// bytes remain, the short slice actually available is returned.
func (b *Buffer) ReadBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	end := b.cursor + n
	if end > len(b.data) {
		end = len(b.data)
	}
	out := b.data[b.cursor:end]
	b.cursor = end
	return out
}
