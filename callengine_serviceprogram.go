package ibmi

import (
	"github.com/ibmigo/ibmiconnector/internal/codec"
)

// qzruclspAlignBase is the base buffer size spec §4.6 gives the
// parameter-5 alignment pad: 64 - (headerBytes % 16).
const qzruclspAlignBase = 64

// CallServiceProgram invokes function in the named service program
// via the QZRUCLSP trampoline in QSYS (spec §4.6). params' payloads
// are updated in place with the server's returned output, and its
// ResultInteger/ResultErrno/ResultPointer fields are populated
// according to ReturnValueFormat.
func (s *Session) CallServiceProgram(srvName, srvLib, function string, params *ServiceProgramCallParameters) (CallMessages, uint16, error) {
	if err := s.requireReady(); err != nil {
		return nil, 0, err
	}
	if len(srvName) > 10 {
		return nil, 0, &ConfigError{Field: "srvName", Reason: "service program name exceeds 10 characters"}
	}
	if len(srvLib) > 10 {
		return nil, 0, &ConfigError{Field: "srvLib", Reason: "service program library exceeds 10 characters"}
	}
	if len(params.Params) > maxServiceProgramParameters {
		return nil, 0, &ConfigError{Field: "params", Reason: "service program call accepts at most 7 parameters"}
	}

	trampoline := buildQZRUCLSPParameters(s.ebcdic, srvName, srvLib, function, params.Params, params.ReturnValueFormat, params.AlignReceiver16Bytes)

	s.opts.logger.Debugf("ibmi[%s]: CallServiceProgram %s/%s %s, %d parameters", s.id, srvLib, srvName, function, len(params.Params))

	messages, resultCode, err := s.CallProgram("QZRUCLSP", "QSYS", trampoline)
	if err != nil {
		return messages, resultCode, err
	}

	for i := range params.Params {
		params.Params[i].Payload = trampoline[qzruclspFixedParamCount+i].Payload
	}

	decodeQZRUCLSPResult(trampoline[qzruclspReceiverIndex].Payload, params)

	return messages, resultCode, nil
}

// qzruclspFixedParamCount and qzruclspReceiverIndex index the
// trampoline's 7 fixed parameters (spec §4.6 table).
const (
	qzruclspFixedParamCount = 7
	qzruclspReceiverIndex   = 6
)

// buildQZRUCLSPParameters constructs the 7+N parameter list the
// QZRUCLSP system API requires (spec §4.6 table).
func buildQZRUCLSPParameters(ebcdic *codec.EBCDICCodec, srvName, srvLib, function string, params []ServiceProgramCallParameter, format ReturnValueFormat, alignReceiver16Bytes bool) ProgramCallParameters {
	n := len(params)

	p0 := ebcdic.ASCIIToEBCDIC(codec.PadRight(srvName, 10) + codec.PadRight(srvLib, 10))

	p1 := append(ebcdic.ASCIIToEBCDICRaw(function), 0x00)

	p2 := codec.PutUint32(uint32(format))

	var p3 []byte
	if n == 0 {
		p3 = codec.PutUint32(0)
	} else {
		for _, pp := range params {
			p3 = append(p3, codec.PutUint32(uint32(pp.PassType))...)
		}
	}

	p4 := codec.PutUint32(uint32(n))

	p6Len := receiverLength(format)
	p6 := make([]byte, p6Len)

	headerBytes := len(p1) + len(p3) + p6Len + 28

	var p5 []byte
	if alignReceiver16Bytes && n > 0 {
		padLen := qzruclspAlignBase - (headerBytes % 16)
		p5 = make([]byte, padLen)
	} else {
		p5 = codec.PutUint32(0)
	}

	out := make([]ProgramCallParameter, qzruclspFixedParamCount+n)
	out[0] = NewProgramCallParameter(ParameterInput, p0, len(p0))
	out[1] = NewProgramCallParameter(ParameterInput, p1, len(p1))
	out[2] = NewProgramCallParameter(ParameterInput, p2, len(p2))
	out[3] = NewProgramCallParameter(ParameterInput, p3, len(p3))
	out[4] = NewProgramCallParameter(ParameterInput, p4, len(p4))
	out[5] = NewProgramCallParameter(ParameterInputOutput, p5, len(p5))
	out[6] = NewProgramCallParameter(ParameterOutput, p6, p6Len)

	for i, pp := range params {
		out[qzruclspFixedParamCount+i] = NewProgramCallParameter(ParameterInputOutput, pp.Payload, pp.EffectiveMaxLength())
	}

	return NewProgramCallParameters(out...)
}

// receiverLength sizes parameter 6 by return-value format (spec
// §4.6 table).
func receiverLength(format ReturnValueFormat) int {
	switch format {
	case ReturnPointer:
		return 16
	case ReturnIntegerErrno:
		return 8
	default: // None, Integer
		return 4
	}
}

// decodeQZRUCLSPResult decodes the receiver variable into params'
// result fields according to its ReturnValueFormat (spec §4.6).
func decodeQZRUCLSPResult(receiver []byte, params *ServiceProgramCallParameters) {
	switch params.ReturnValueFormat {
	case ReturnInteger:
		if len(receiver) >= 4 {
			params.ResultInteger = codec.Uint32(receiver[0:4])
		}
	case ReturnIntegerErrno:
		if len(receiver) >= 8 {
			params.ResultInteger = codec.Uint32(receiver[0:4])
			params.ResultErrno = codec.Uint32(receiver[4:8])
		}
	case ReturnPointer:
		if len(receiver) >= 16 {
			copy(params.ResultPointer[:], receiver[0:16])
		}
	}
}
