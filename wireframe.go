package ibmi

import (
	"fmt"

	"github.com/ibmigo/ibmiconnector/internal/wire"
)

// buildHeaderTail assembles the 16 bytes of the fixed header that
// follow the 4-byte length transport.Conn.Write prepends (spec §4.5):
// a 4-byte lead-in (either {headerID u16, serverID u16} or the Remote
// Command {clientAttributes u8, serverAttributes u8, serverID u16}
// variant), a zero CS instance, a zero correlation ID, the template
// length, and the ReqRep ID.
func buildHeaderTail(leadIn [4]byte, templateLength, reqRepID uint16) []byte {
	buf := wire.New()
	buf.PutBytes(leadIn[:])
	buf.PutUint32(0) // CS instance
	buf.PutUint32(0) // correlation ID
	buf.PutUint16(templateLength)
	buf.PutUint16(reqRepID)
	return buf.Bytes()
}

func headerIDLeadIn(serverID uint16) [4]byte {
	var out [4]byte
	out[0], out[1] = 0, 0
	out[2], out[3] = byte(serverID>>8), byte(serverID)
	return out
}

func rcAttributeLeadIn(clientAttributes, serverAttributes uint8) [4]byte {
	var out [4]byte
	out[0] = clientAttributes
	out[1] = serverAttributes
	out[2], out[3] = byte(serverIDRemoteCommand>>8), byte(serverIDRemoteCommand)
	return out
}

// headerBodyOffset is where the response body begins: the 4-byte
// length plus the 16 header-tail bytes that follow it.
const headerBodyOffset = 20

// putDynamicField appends one {u32 LL, u16 CP, bytes data} dynamic
// field to buf, where LL is 6 + len(data) (spec §4.2/§4.5).
func putDynamicField(buf *wire.Buffer, cp uint16, data []byte) {
	buf.PutUint32(uint32(6 + len(data)))
	buf.PutUint16(cp)
	buf.PutBytes(data)
}

// dynamicField is one parsed {LL, CP, data} field.
type dynamicField struct {
	CP   uint16
	Data []byte
}

// parseDynamicFields walks buf from its current cursor to the end,
// reading {u32 LL, u16 CP, bytes data[LL-6]} fields until exhausted.
// A field whose declared length is less than 6 is a framing error
// (spec §7).
func parseDynamicFields(buf *wire.Buffer) ([]dynamicField, error) {
	var fields []dynamicField
	for buf.Remaining() >= 6 {
		start := buf.Cursor()
		ll := buf.ReadUint32()
		if ll < 6 {
			return nil, fmt.Errorf("ibmi: dynamic field length %d < 6 at offset %d", ll, start)
		}
		cp := buf.ReadUint16()
		data := buf.ReadBytes(int(ll) - 6)
		fields = append(fields, dynamicField{CP: cp, Data: data})
	}
	return fields, nil
}

func findField(fields []dynamicField, cp uint16) ([]byte, bool) {
	for _, f := range fields {
		if f.CP == cp {
			return f.Data, true
		}
	}
	return nil, false
}
