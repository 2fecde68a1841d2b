package ibmi

import (
	"fmt"

	"github.com/ibmigo/ibmiconnector/internal/codec"
	"github.com/ibmigo/ibmiconnector/internal/wire"
)

// parseMessageStream reads up to count {u32 LL, u16 CP, bytes
// data[LL-6]} fields from buf starting at its current cursor and
// decodes each into a CallMessage (spec §4.6), stopping early when
// fewer than 6 bytes remain. It never reads beyond
// count entries even if the buffer holds more bytes (spec §9 open
// question: the parser stops at the declared count and discards any
// remainder).
func parseMessageStream(buf *wire.Buffer, count uint16, ebcdic *codec.EBCDICCodec) (CallMessages, error) {
	var messages CallMessages

	for i := 0; i < int(count); i++ {
		if buf.Remaining() < 6 {
			break
		}
		start := buf.Cursor()
		ll := buf.ReadUint32()
		if ll < 6 {
			return nil, fmt.Errorf("ibmi: message field length %d < 6 at offset %d", ll, start)
		}
		cp := buf.ReadUint16()
		data := buf.ReadBytes(int(ll) - 6)

		msg, ok, err := parseCallMessage(cp, data, ebcdic)
		if err != nil {
			return nil, err
		}
		if ok {
			messages = append(messages, msg)
		}
	}

	return messages, nil
}

func parseCallMessage(cp uint16, data []byte, ebcdic *codec.EBCDICCodec) (CallMessage, bool, error) {
	switch cp {
	case cpMessageLegacy:
		msg, err := parseLegacyMessage(data, ebcdic)
		return msg, true, err
	case cpMessageExtended:
		msg, err := parseExtendedMessage(data, ebcdic)
		return msg, true, err
	default:
		return CallMessage{}, false, nil
	}
}

// parseLegacyMessage decodes the 0x1102 message format (spec §4.6):
// fixed-offset header followed by substitution and main text.
func parseLegacyMessage(data []byte, ebcdic *codec.EBCDICCodec) (CallMessage, error) {
	const fixedHeaderLen = 35
	if len(data) < fixedHeaderLen {
		return CallMessage{}, fmt.Errorf("ibmi: legacy message shorter than fixed header (%d bytes)", len(data))
	}

	id := ebcdic.EBCDICToASCII(data[0:7])
	msgType := codec.Uint16(data[7:9])
	severity := codec.Uint16(data[9:11])
	substLen := int(codec.Uint16(data[31:33]))
	textLen := int(codec.Uint16(data[33:35]))

	substEnd := fixedHeaderLen + substLen
	textEnd := substEnd + textLen
	if textEnd > len(data) {
		return CallMessage{}, fmt.Errorf("ibmi: legacy message substitution/text length exceeds field size")
	}

	return CallMessage{
		ID:               id,
		Type:             msgType,
		Severity:         severity,
		SubstitutionText: ebcdic.EBCDICToASCII(data[fixedHeaderLen:substEnd]),
		MessageText:      ebcdic.EBCDICToASCII(data[substEnd:textEnd]),
	}, nil
}

// parseExtendedMessage decodes the 0x1106 message format (spec
// §4.6): a fixed prefix followed by a chain of length-prefixed
// sub-fields (id, file, library, text, substitution, help).
func parseExtendedMessage(data []byte, defaultCodec *codec.EBCDICCodec) (CallMessage, error) {
	buf := wire.NewFromBytes(data)
	if buf.Remaining() < 16 {
		return CallMessage{}, fmt.Errorf("ibmi: extended message shorter than fixed prefix (%d bytes)", len(data))
	}

	textCCSID := buf.ReadUint32()
	substCCSID := buf.ReadUint32()
	severity := buf.ReadUint16()
	typeLen := buf.ReadUint32()
	msgType := buf.ReadUint16()
	if typeLen >= 2 {
		buf.ReadBytes(int(typeLen) - 2)
	}

	id := buf.ReadBytes(int(buf.ReadUint32()))
	_ = buf.ReadBytes(int(buf.ReadUint32())) // file, unused
	_ = buf.ReadBytes(int(buf.ReadUint32())) // library, unused
	text := buf.ReadBytes(int(buf.ReadUint32()))
	subst := buf.ReadBytes(int(buf.ReadUint32()))
	help := buf.ReadBytes(int(buf.ReadUint32()))

	textCodec := codecOrDefault(textCCSID, defaultCodec)
	substCodec := codecOrDefault(substCCSID, defaultCodec)

	return CallMessage{
		ID:               textCodec.EBCDICToASCII(id),
		Type:             msgType,
		Severity:         severity,
		SubstitutionText: substCodec.EBCDICToASCII(subst),
		MessageText:      textCodec.EBCDICToASCII(text),
		HelpText:         textCodec.EBCDICToASCII(help),
	}, nil
}

func codecOrDefault(ccsid uint32, fallback *codec.EBCDICCodec) *codec.EBCDICCodec {
	if ccsid == fallback.CCSID() {
		return fallback
	}
	if c, err := codec.NewEBCDICCodec(ccsid); err == nil {
		return c
	}
	return fallback
}
