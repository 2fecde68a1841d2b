// Package codec provides the pure wire-level encoding primitives used
// throughout the client: big-endian integer pack/unpack, EBCDIC/ASCII
// translation, UTF-16BE text emission, and DTS timestamp decoding.
//
// Every function here is pure: no I/O, no shared state. Higher layers
// (wire, transport, the session handshakes) call these to assemble and
// parse datagrams.
package codec

// PutUint16 writes v as 2 big-endian bytes.
func PutUint16(v uint16) []byte {
	return []byte{byte(v >> 8), byte(v)}
}

// PutUint32 writes v as 4 big-endian bytes.
func PutUint32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// PutUint64 writes v as 8 big-endian bytes.
func PutUint64(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> uint(56-8*i))
	}
	return b
}

// Uint16 reads a truncated big-endian unsigned integer from b, right
// justified: a width shorter than 2 bytes zero-extends the high bytes,
// and a missing byte (b shorter than width) reads as 0.
func Uint16(b []byte) uint16 {
	return uint16(readUint(b, 2))
}

// Uint32 reads a truncated big-endian unsigned integer from b, same
// right-justified semantics as Uint16.
func Uint32(b []byte) uint32 {
	return uint32(readUint(b, 4))
}

// Uint64 reads a truncated big-endian unsigned integer from b, same
// right-justified semantics as Uint16.
func Uint64(b []byte) uint64 {
	return readUint(b, 8)
}

// readUint interprets up to width bytes of b as a big-endian unsigned
// integer. If b is longer than width, only the first width bytes are
// consumed (a truncated read). If b is shorter than width, the value
// is the big-endian integer of the bytes present — equivalent to
// zero-extending the missing high-order bytes. Either way, reads never
// fail: a nil or empty b simply reads as 0.
func readUint(b []byte, width int) uint64 {
	n := len(b)
	if n > width {
		n = width
	}
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}
