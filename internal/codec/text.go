package codec

import (
	"time"
	"unicode/utf16"
)

// UTF16BE encodes s as big-endian UTF-16, used for command text when the
// datastream level is above 10 (spec §4.6) and for the SHA-1 password proof's
// user-name mixing (spec §4.4).
func UTF16BE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 2*len(units))
	for i, u := range units {
		out[2*i] = byte(u >> 8)
		out[2*i+1] = byte(u)
	}
	return out
}

// dtsEpochOffsetMicros is the number of microseconds between the DTS
// zero point and the Unix epoch (spec §4.1).
const dtsEpochOffsetMicros = 946_684_800_000_000

// DecodeDTS interprets raw as a platform "Standard Time Format" 64-bit
// timestamp: subtract the sign bit, discard the low 12 uniqueness bits,
// rebase onto the Unix epoch, and return the corresponding instant.
func DecodeDTS(raw uint64) time.Time {
	shifted := (raw - 0x8000_0000_0000_0000) >> 12
	micros := int64(shifted) + dtsEpochOffsetMicros
	millis := micros / 1000
	return time.UnixMilli(millis).UTC()
}
