package ibmi

import (
	"fmt"

	"github.com/ibmigo/ibmiconnector/internal/codec"
	"github.com/ibmigo/ibmiconnector/internal/wire"
)

// CallCommand runs a CL command string on the authenticated Remote
// Command channel (ReqRep 0x1002, spec §4.6). It never returns a Go
// error for a non-zero CL result code — per spec §7 that code flows
// back as a plain return value alongside the parsed message list.
func (s *Session) CallCommand(cmd string) (CallMessages, uint16, error) {
	if err := s.requireReady(); err != nil {
		return nil, 0, err
	}

	buf := wire.New()
	buf.PutBytes(buildHeaderTail(headerIDLeadIn(serverIDRemoteCommand), 1, reqRepRCCallCommand))
	buf.PutUint8(messageOptionForDatastreamLevel(s.serverDatastreamLevel))

	if s.serverDatastreamLevel > 10 {
		data := codec.UTF16BE(cmd)
		buf.PutUint32(uint32(10 + len(data)))
		buf.PutUint16(cpCommandUTF16BE)
		buf.PutUint16(1200)
		buf.PutBytes(data)
	} else {
		putDynamicField(buf, cpCommandEBCDIC, s.ebcdic.ASCIIToEBCDIC(cmd))
	}

	s.opts.logger.Debugf("ibmi[%s]: CallCommand %q", s.id, cmd)

	if err := s.rcConn.Write(buf.Bytes()); err != nil {
		return nil, 0, s.closeOnFatal("CallCommand", err)
	}

	raw, err := s.rcConn.Read()
	if err != nil {
		return nil, 0, s.closeOnFatal("CallCommand", err)
	}
	if len(raw) < headerBodyOffset+4 {
		return nil, 0, s.closeOnFatal("CallCommand", fmt.Errorf("response shorter than result header (%d bytes)", len(raw)))
	}

	resp := wire.NewFromBytes(raw)
	resp.SetCursor(headerBodyOffset)
	resultCode := resp.ReadUint16()
	messageCount := resp.ReadUint16()

	messages, err := parseMessageStream(resp, messageCount, s.ebcdic)
	if err != nil {
		return nil, resultCode, s.closeOnFatal("CallCommand", err)
	}

	if resultCode != 0 && resultCode != 0x0400 {
		s.opts.logger.Warnf("ibmi[%s]: CallCommand %q returned result code 0x%04X", s.id, cmd, resultCode)
	}

	return messages, resultCode, nil
}

// CallProgram invokes a named program in library with the given
// parameter list on the authenticated Remote Command channel (ReqRep
// 0x1003, spec §4.6). On success, Output/InputOutput parameters in
// params are updated in place with the server's returned payloads.
func (s *Session) CallProgram(name, library string, params ProgramCallParameters) (CallMessages, uint16, error) {
	if err := s.requireReady(); err != nil {
		return nil, 0, err
	}
	if len(name) > 10 {
		return nil, 0, &ConfigError{Field: "name", Reason: "program name exceeds 10 characters"}
	}
	if len(library) > 10 {
		return nil, 0, &ConfigError{Field: "library", Reason: "library name exceeds 10 characters"}
	}

	buf := wire.New()
	buf.PutBytes(buildHeaderTail(headerIDLeadIn(serverIDRemoteCommand), 23, reqRepRCCallProgram))
	buf.PutBytes(s.ebcdic.ASCIIToEBCDIC(codec.PadRight(name, 10)))
	buf.PutBytes(s.ebcdic.ASCIIToEBCDIC(codec.PadRight(library, 10)))
	buf.PutUint8(messageOptionForDatastreamLevel(s.serverDatastreamLevel))
	buf.PutUint16(uint16(len(params)))

	for _, p := range params {
		wireType := uint16(p.Type)
		payload := p.Payload
		if p.Type == ParameterNull && s.serverDatastreamLevel < 6 {
			// Servers below datastream level 6 don't understand
			// parameterType 255 (Null); substitute the literal wire
			// value 1, not the Input type (11), and emit no payload.
			wireType = 1
			payload = nil
		}
		buf.PutUint32(uint32(12 + len(payload)))
		buf.PutUint16(cpProgramParameter)
		buf.PutUint32(uint32(p.EffectiveMaxLength()))
		buf.PutUint16(wireType)
		buf.PutBytes(payload)
	}

	s.opts.logger.Debugf("ibmi[%s]: CallProgram %s/%s, %d parameters", s.id, library, name, len(params))

	if err := s.rcConn.Write(buf.Bytes()); err != nil {
		return nil, 0, s.closeOnFatal("CallProgram", err)
	}

	raw, err := s.rcConn.Read()
	if err != nil {
		return nil, 0, s.closeOnFatal("CallProgram", err)
	}
	if len(raw) < headerBodyOffset+4 {
		return nil, 0, s.closeOnFatal("CallProgram", fmt.Errorf("response shorter than result header (%d bytes)", len(raw)))
	}

	resp := wire.NewFromBytes(raw)
	resp.SetCursor(headerBodyOffset)
	resultCode := resp.ReadUint16()
	messageCount := resp.ReadUint16()

	if resultCode != 0 {
		messages, err := parseMessageStream(resp, messageCount, s.ebcdic)
		if err != nil {
			return nil, resultCode, s.closeOnFatal("CallProgram", err)
		}
		s.opts.logger.Warnf("ibmi[%s]: CallProgram %s/%s returned result code 0x%04X", s.id, library, name, resultCode)
		return messages, resultCode, nil
	}

	consumeOutputParameters(resp, params)
	return nil, resultCode, nil
}

// consumeOutputParameters reads {u32 LL, u16 CP, u32 outMaxLen, u16
// outType, bytes data[LL-12]} blocks from resp and copies each data
// payload back into the matching Output/InputOutput parameter, in
// order (spec §4.6). It halts at either sentinel (LL == 0x40404040 or
// LL == 0) or when the buffer is exhausted.
func consumeOutputParameters(resp *wire.Buffer, params ProgramCallParameters) {
	for i := range params {
		if params[i].Type != ParameterOutput && params[i].Type != ParameterInputOutput {
			continue
		}
		if resp.Remaining() < 4 {
			return
		}
		ll := resp.ReadUint32()
		if ll == 0x40404040 || ll == 0 {
			return
		}
		if resp.Remaining() < 8 {
			return
		}
		resp.ReadUint16() // CP
		resp.ReadUint32() // outMaxLen
		resp.ReadUint16() // outType

		dataLen := int(ll) - 12
		if dataLen < 0 {
			return
		}
		params[i].Payload = resp.ReadBytes(dataLen)
	}
}
