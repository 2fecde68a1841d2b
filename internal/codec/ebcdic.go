package codec

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// EBCDICCodec translates between ASCII and a single EBCDIC code page.
// The zero value is not usable; construct one with NewEBCDICCodec or
// NewEBCDICCodecFromEncoding.
type EBCDICCodec struct {
	ccsid uint32
	enc   encoding.Encoding
}

// builtinCodePages maps the two CCSIDs this client ships a table for.
// CCSID 37 is the default per spec §4.1 (U.S./Canadian EBCDIC); 1047 is
// included as a second built-in so callers on Latin-1-adjacent IBM i
// installations are not forced to supply their own encoding.Encoding.
var builtinCodePages = map[uint32]encoding.Encoding{
	37:   charmap.CodePage037,
	1047: charmap.CodePage1047,
}

// NewEBCDICCodec returns the codec for ccsid. An unsupported CCSID is a
// configuration error: per spec §4.1 this client must "at minimum
// support 37 and fail explicitly for others" unless the caller supplies
// their own page via NewEBCDICCodecFromEncoding.
func NewEBCDICCodec(ccsid uint32) (*EBCDICCodec, error) {
	enc, ok := builtinCodePages[ccsid]
	if !ok {
		return nil, fmt.Errorf("codec: unsupported CCSID %d (built in: 37, 1047)", ccsid)
	}
	return &EBCDICCodec{ccsid: ccsid, enc: enc}, nil
}

// NewEBCDICCodecFromEncoding lets a caller plug in any CCSID by
// supplying its own golang.org/x/text/encoding.Encoding, per the
// pluggable-encoder design note in spec §9.
func NewEBCDICCodecFromEncoding(ccsid uint32, enc encoding.Encoding) *EBCDICCodec {
	return &EBCDICCodec{ccsid: ccsid, enc: enc}
}

// CCSID returns the code page this codec was constructed for.
func (c *EBCDICCodec) CCSID() uint32 {
	return c.ccsid
}

// ASCIIToEBCDIC translates s (uppercased first, per spec §4.1 — case
// normalization happens before EBCDIC encoding) into its EBCDIC byte
// representation. The translation is length-preserving, byte for byte.
func (c *EBCDICCodec) ASCIIToEBCDIC(s string) []byte {
	return c.ASCIIToEBCDICRaw(strings.ToUpper(s))
}

// ASCIIToEBCDICRaw translates s without uppercasing, for fields (like
// message substitution text) that must preserve case.
func (c *EBCDICCodec) ASCIIToEBCDICRaw(s string) []byte {
	out, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		// CCSID 37/1047 cover the full printable-ASCII subset this
		// protocol's textual fields are restricted to (names, commands,
		// message text); a genuine encode failure here means the caller
		// passed a rune outside that subset. Each byte that does not
		// encode on its own becomes 0x3F (the EBCDIC SUB character)
		// rather than causing a panic — the session remains usable and the
		// server will reject an invalid name on its own terms.
		out = encodeBestEffort(c.enc, s)
	}
	return out
}

// EBCDICToASCII is the inverse of ASCIIToEBCDIC/ASCIIToEBCDICRaw.
func (c *EBCDICCodec) EBCDICToASCII(b []byte) string {
	out, _ := c.enc.NewDecoder().Bytes(b)
	return string(out)
}

func encodeBestEffort(enc encoding.Encoding, s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		b, err := enc.NewEncoder().Bytes([]byte{s[i]})
		if err != nil || len(b) == 0 {
			out = append(out, '?')
			continue
		}
		out = append(out, b[0])
	}
	return out
}

// PadRight truncates or space-pads s to exactly n bytes, used before
// EBCDIC encoding of fixed-width fields (user names, library/program
// names, message IDs).
func PadRight(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}
