package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferWriteRead(t *testing.T) {
	b := New()
	b.PutUint8(0xAB)
	b.PutUint16(0x1234)
	b.PutUint32(0xDEADBEEF)
	b.PutUint64(0x0102030405060708)
	b.PutBytes([]byte("hello"))

	assert.Equal(t, 1+2+4+8+5, b.Len())

	r := NewFromBytes(b.Bytes())
	assert.Equal(t, uint8(0xAB), r.ReadUint8())
	assert.Equal(t, uint16(0x1234), r.ReadUint16())
	assert.Equal(t, uint32(0xDEADBEEF), r.ReadUint32())
	assert.Equal(t, uint64(0x0102030405060708), r.ReadUint64())
	assert.Equal(t, []byte("hello"), r.ReadBytes(5))
}

func TestBufferCursor(t *testing.T) {
	b := NewFromBytes([]byte{0, 1, 2, 3, 4, 5})
	b.SetCursor(2)
	assert.Equal(t, 2, b.Cursor())
	assert.Equal(t, 4, b.Remaining())
	assert.Equal(t, uint8(2), b.ReadUint8())
}

func TestBufferReadPastEndReturnsZeroAndShortSlice(t *testing.T) {
	b := NewFromBytes([]byte{0xFF})
	assert.Equal(t, uint8(0xFF), b.ReadUint8())
	assert.Equal(t, uint8(0), b.ReadUint8())
	assert.Equal(t, uint32(0), b.ReadUint32())

	b2 := NewFromBytes([]byte{1, 2, 3})
	assert.Equal(t, []byte{1, 2, 3}, b2.ReadBytes(10))
	assert.Equal(t, 0, b2.Remaining())
}
