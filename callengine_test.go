package ibmi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibmigo/ibmiconnector/internal/codec"
	"github.com/ibmigo/ibmiconnector/internal/wire"
)

func TestBuildQZRUCLSPParametersLayout(t *testing.T) {
	ebcdic, err := codec.NewEBCDICCodec(37)
	require.NoError(t, err)

	params := []ServiceProgramCallParameter{
		NewServiceProgramCallParameter(PassByValue, codec.PutUint32(1), 4),
		NewServiceProgramCallParameter(PassByReference, codec.PutUint32(2), 4),
	}

	trampoline := buildQZRUCLSPParameters(ebcdic, "MYSRVPGM", "MYLIB", "FUNCTN1", params, ReturnInteger, false)
	require.Len(t, trampoline, qzruclspFixedParamCount+len(params))

	// parameter 0: srvName (10, upper, space-padded) + srvLib (10).
	assert.Equal(t, ebcdic.ASCIIToEBCDIC(codec.PadRight("MYSRVPGM", 10)+codec.PadRight("MYLIB", 10)), trampoline[0].Payload)

	// parameter 1: function name, not uppercased, NUL-terminated.
	assert.Equal(t, append(ebcdic.ASCIIToEBCDICRaw("FUNCTN1"), 0x00), trampoline[1].Payload)

	// parameter 2: return value format selector.
	assert.Equal(t, codec.PutUint32(uint32(ReturnInteger)), trampoline[2].Payload)

	// parameter 3: one u32 pass-type per parameter.
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02}, trampoline[3].Payload)

	// parameter 4: parameter count.
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x02}, trampoline[4].Payload)

	// parameter 5: alignment pad, unused here (AlignReceiver16Bytes=false).
	assert.Equal(t, codec.PutUint32(0), trampoline[5].Payload)

	// parameter 6: receiver, sized for ReturnInteger.
	assert.Len(t, trampoline[6].Payload, 4)
	assert.Equal(t, ParameterOutput, trampoline[6].Type)

	// parameters 7, 8: the caller's own parameters, InputOutput.
	assert.Equal(t, codec.PutUint32(1), trampoline[7].Payload)
	assert.Equal(t, ParameterInputOutput, trampoline[7].Type)
	assert.Equal(t, codec.PutUint32(2), trampoline[8].Payload)
}

// TestBuildQZRUCLSPParametersAlignmentPad exercises the worked example:
// a 7-character function name (p1 len 8), two 4-byte pass types (p3 len
// 8), and a 4-byte ReturnInteger receiver (p6 len 4) gives headerBytes
// 48, which is already a multiple of 16 and so takes the full 64-byte
// pad rather than zero.
func TestBuildQZRUCLSPParametersAlignmentPad(t *testing.T) {
	ebcdic, err := codec.NewEBCDICCodec(37)
	require.NoError(t, err)

	params := []ServiceProgramCallParameter{
		NewServiceProgramCallParameter(PassByValue, nil, 4),
		NewServiceProgramCallParameter(PassByReference, nil, 4),
	}

	trampoline := buildQZRUCLSPParameters(ebcdic, "MYSRVPGM", "MYLIB", "FUNCTN1", params, ReturnInteger, true)

	headerBytes := len(trampoline[1].Payload) + len(trampoline[3].Payload) + len(trampoline[6].Payload) + 28
	require.Equal(t, 48, headerBytes)
	assert.Len(t, trampoline[5].Payload, 64)
}

func TestBuildQZRUCLSPParametersNoParameters(t *testing.T) {
	ebcdic, err := codec.NewEBCDICCodec(37)
	require.NoError(t, err)

	trampoline := buildQZRUCLSPParameters(ebcdic, "MYSRVPGM", "MYLIB", "FUNCTN1", nil, ReturnNone, true)
	require.Len(t, trampoline, qzruclspFixedParamCount)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, trampoline[3].Payload)
	assert.Equal(t, codec.PutUint32(0), trampoline[4].Payload)
	// n == 0 disables alignment regardless of AlignReceiver16Bytes.
	assert.Equal(t, codec.PutUint32(0), trampoline[5].Payload)
}

func TestReceiverLengthByFormat(t *testing.T) {
	assert.Equal(t, 4, receiverLength(ReturnNone))
	assert.Equal(t, 4, receiverLength(ReturnInteger))
	assert.Equal(t, 8, receiverLength(ReturnIntegerErrno))
	assert.Equal(t, 16, receiverLength(ReturnPointer))
}

func TestDecodeQZRUCLSPResult(t *testing.T) {
	p := &ServiceProgramCallParameters{ReturnValueFormat: ReturnIntegerErrno}
	decodeQZRUCLSPResult(append(codec.PutUint32(42), codec.PutUint32(7)...), p)
	assert.Equal(t, uint32(42), p.ResultInteger)
	assert.Equal(t, uint32(7), p.ResultErrno)

	p2 := &ServiceProgramCallParameters{ReturnValueFormat: ReturnPointer}
	ptr := bytes.Repeat([]byte{0xCD}, 16)
	decodeQZRUCLSPResult(ptr, p2)
	var want [16]byte
	copy(want[:], ptr)
	assert.Equal(t, want, p2.ResultPointer)
}

func TestConsumeOutputParametersStopsAtSentinel(t *testing.T) {
	params := NewProgramCallParameters(
		NewProgramCallParameter(ParameterOutput, nil, 4),
		NewProgramCallParameter(ParameterOutput, nil, 4),
	)

	buf := wire.New()
	buf.PutUint32(0x40404040)
	consumeOutputParameters(wire.NewFromBytes(buf.Bytes()), params)

	assert.Nil(t, params[0].Payload)
	assert.Nil(t, params[1].Payload)
}
