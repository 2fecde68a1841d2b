package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigEndianRoundTrip(t *testing.T) {
	assert.Equal(t, uint16(0x1234), Uint16(PutUint16(0x1234)))
	assert.Equal(t, uint16(0xFFFF), Uint16(PutUint16(0xFFFF)))
	assert.Equal(t, uint32(0x12345678), Uint32(PutUint32(0x12345678)))
	assert.Equal(t, uint64(0x1122334455667788), Uint64(PutUint64(0x1122334455667788)))
}

func TestUintTruncatedWidthZeroExtends(t *testing.T) {
	// A 4-byte field carrying only 2 significant bytes reads as those
	// bytes zero-extended into the high order position.
	assert.Equal(t, uint32(0x0000AABB), Uint32([]byte{0xAA, 0xBB}))

	// A longer field read at a narrower width truncates to the first
	// `width` bytes.
	assert.Equal(t, uint16(0x1122), Uint16([]byte{0x11, 0x22, 0x33, 0x44}))
}

func TestReadPastEndReturnsZero(t *testing.T) {
	assert.Equal(t, uint16(0), Uint16(nil))
	assert.Equal(t, uint32(0), Uint32([]byte{}))
	assert.Equal(t, uint64(0), Uint64([]byte{0x01}))
}

func TestEBCDICRoundTripASCIISubset(t *testing.T) {
	cc, err := NewEBCDICCodec(37)
	require.NoError(t, err)

	for _, s := range []string{"QSECOFR", "HELLO WORLD", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"} {
		enc := cc.ASCIIToEBCDICRaw(s)
		assert.Len(t, enc, len(s))
		assert.Equal(t, s, cc.EBCDICToASCII(enc))
	}
}

func TestEBCDICPinnedVectors(t *testing.T) {
	cc, err := NewEBCDICCodec(37)
	require.NoError(t, err)

	assert.Equal(t, []byte{0xD8, 0xE2, 0xC5, 0xC3, 0xD6, 0xC6, 0xD9}, cc.ASCIIToEBCDIC("QSECOFR"))
	assert.Equal(t, []byte{0x40, 0x40}, cc.ASCIIToEBCDICRaw("  "))
}

func TestEBCDICUnsupportedCCSID(t *testing.T) {
	_, err := NewEBCDICCodec(930)
	assert.Error(t, err)
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ABC       ", PadRight("ABC", 10))
	assert.Equal(t, "ABCDEFGHIJ", PadRight("ABCDEFGHIJKLMNOP", 10))
	assert.Equal(t, "", PadRight("", 0))
}

func TestUTF16BE(t *testing.T) {
	assert.Equal(t, []byte{0x00, 'A', 0x00, 'B'}, UTF16BE("AB"))
}

func TestDecodeDTS(t *testing.T) {
	// The DTS zero point (sign bit set, no uniqueness bits) is defined
	// to land on 2000-01-01T00:00:00Z (946684800 seconds after the Unix
	// epoch, per the documented microsecond offset).
	raw := uint64(0x8000_0000_0000_0000)
	got := DecodeDTS(raw)
	assert.Equal(t, 2000, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 1, got.Day())
}
