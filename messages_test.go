package ibmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibmigo/ibmiconnector/internal/codec"
	"github.com/ibmigo/ibmiconnector/internal/wire"
)

func TestParseMessageStreamLegacyFormat(t *testing.T) {
	ebcdic, err := codec.NewEBCDICCodec(37)
	require.NoError(t, err)

	const id = "CPF9801"
	const substText = "FILEX"
	const mainText = "Object not found."

	data := make([]byte, 0, 35+len(substText)+len(mainText))
	data = append(data, ebcdic.ASCIIToEBCDICRaw(id)...) // 7 bytes
	data = append(data, codec.PutUint16(0x0002)...)     // msg type
	data = append(data, codec.PutUint16(0x0040)...)     // severity
	data = append(data, make([]byte, 20)...)            // reserved up to offset 31
	data = append(data, codec.PutUint16(uint16(len(substText)))...)
	data = append(data, codec.PutUint16(uint16(len(mainText)))...)
	data = append(data, ebcdic.ASCIIToEBCDIC(substText)...)
	data = append(data, ebcdic.ASCIIToEBCDICRaw(mainText)...)

	buf := wire.New()
	buf.PutUint32(uint32(6 + len(data)))
	buf.PutUint16(cpMessageLegacy)
	buf.PutBytes(data)

	resp := wire.NewFromBytes(buf.Bytes())
	messages, err := parseMessageStream(resp, 1, ebcdic)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	msg := messages[0]
	assert.Equal(t, id, msg.ID)
	assert.Equal(t, uint16(0x0002), msg.Type)
	assert.Equal(t, uint16(0x0040), msg.Severity)
	assert.Equal(t, substText, msg.SubstitutionText)
	assert.Equal(t, mainText, msg.MessageText)
}

func TestParseMessageStreamExtendedFormat(t *testing.T) {
	ebcdic, err := codec.NewEBCDICCodec(37)
	require.NoError(t, err)

	const id = "CPF9898"
	const text = "A sample diagnostic message."
	const subst = "ARG1"
	const help = "Correct the argument and retry."

	data := wire.New()
	data.PutUint32(37) // text CCSID
	data.PutUint32(37) // substitution CCSID
	data.PutUint16(0x0030)
	data.PutUint32(2) // typeLen, nothing beyond the type itself
	data.PutUint16(0x0004)
	data.PutUint32(uint32(len(id)))
	data.PutBytes(ebcdic.ASCIIToEBCDIC(id))
	data.PutUint32(0) // file
	data.PutUint32(0) // library
	data.PutUint32(uint32(len(text)))
	data.PutBytes(ebcdic.ASCIIToEBCDICRaw(text))
	data.PutUint32(uint32(len(subst)))
	data.PutBytes(ebcdic.ASCIIToEBCDIC(subst))
	data.PutUint32(uint32(len(help)))
	data.PutBytes(ebcdic.ASCIIToEBCDICRaw(help))

	buf := wire.New()
	buf.PutUint32(uint32(6 + data.Len()))
	buf.PutUint16(cpMessageExtended)
	buf.PutBytes(data.Bytes())

	resp := wire.NewFromBytes(buf.Bytes())
	messages, err := parseMessageStream(resp, 1, ebcdic)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	msg := messages[0]
	assert.Equal(t, id, msg.ID)
	assert.Equal(t, uint16(0x0004), msg.Type)
	assert.Equal(t, uint16(0x0030), msg.Severity)
	assert.Equal(t, text, msg.MessageText)
	assert.Equal(t, subst, msg.SubstitutionText)
	assert.Equal(t, help, msg.HelpText)
}

func TestParseMessageStreamStopsAtDeclaredCount(t *testing.T) {
	ebcdic, err := codec.NewEBCDICCodec(37)
	require.NoError(t, err)

	buf := wire.New()
	// Two legacy messages on the wire, but the caller only declares one.
	for i := 0; i < 2; i++ {
		data := make([]byte, 35)
		buf.PutUint32(uint32(6 + len(data)))
		buf.PutUint16(cpMessageLegacy)
		buf.PutBytes(data)
	}

	resp := wire.NewFromBytes(buf.Bytes())
	messages, err := parseMessageStream(resp, 1, ebcdic)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
	// One full message field (41 bytes) remains unconsumed.
	assert.Equal(t, 41, resp.Remaining())
}
