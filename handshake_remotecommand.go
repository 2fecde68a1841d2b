package ibmi

import (
	"fmt"
	"time"

	"github.com/ibmigo/ibmiconnector/internal/codec"
	"github.com/ibmigo/ibmiconnector/internal/transport"
	"github.com/ibmigo/ibmiconnector/internal/wire"
)

// clientAttributesSHA1Capable and the Remote Command authenticate
// client-attribute values (spec §4.5).
const (
	rcClientAttrSHA1Capable   uint8 = 1
	rcClientAttrReturnJobInfo uint8 = 2
)

// ConnectToRemoteCommandServer opens the Remote Command channel and
// exchanges random seeds (ReqRep 0x7001, spec §4.5).
func (s *Session) ConnectToRemoteCommandServer() error {
	if s.state != stateSignonAuthed {
		return &ConfigError{Field: "session", Reason: "AuthenticateToSignonVerify must succeed first"}
	}

	conn, err := transport.Dial(s.config.Host, s.opts.remoteCommandPort, transport.ChannelRemoteCommand, s.tlsConfig(), s.opts.dialTimeout, s.opts.logger)
	if err != nil {
		return s.closeOnFatal("ConnectToRemoteCommandServer", err)
	}
	s.rcConn = conn

	s.clientSeed = uint64(time.Now().UnixMilli())
	s.serverSeed = 0

	buf := wire.New()
	leadIn := rcAttributeLeadIn(rcClientAttrSHA1Capable, 0)
	buf.PutBytes(buildHeaderTail(leadIn, 8, reqRepRCExchangeRandomSeeds))
	buf.PutUint64(s.clientSeed)

	s.opts.logger.Debugf("ibmi[%s]: remote command exchange random seeds, client seed=%d", s.id, s.clientSeed)

	if err := s.rcConn.Write(buf.Bytes()); err != nil {
		return s.closeOnFatal("ConnectToRemoteCommandServer", err)
	}

	raw, err := s.rcConn.Read()
	if err != nil {
		return s.closeOnFatal("ConnectToRemoteCommandServer", err)
	}
	// Body: reserved[16] + resultCode u32 + serverSeed u64.
	if len(raw) < headerBodyOffset+16+4+8 {
		return s.closeOnFatal("ConnectToRemoteCommandServer", fmt.Errorf("response too short (%d bytes)", len(raw)))
	}

	resp := wire.NewFromBytes(raw)
	resp.SetCursor(headerBodyOffset + 16)
	resultCode := resp.ReadUint32()
	if resultCode != 0 {
		return s.closeOnFatal("ConnectToRemoteCommandServer", authenticationError(resultCode))
	}
	s.serverSeed = resp.ReadUint64()

	s.state = stateRcConnected
	return nil
}

// AuthenticateToRemoteCommand sends the password proof on ReqRep
// 0x7002 and parses the job name from dynamic field 0x111F (spec
// §4.5).
func (s *Session) AuthenticateToRemoteCommand() error {
	if s.state != stateRcConnected {
		return &ConfigError{Field: "session", Reason: "ConnectToRemoteCommandServer must succeed first"}
	}

	pwdEncType, encPwd := s.computePasswordProof()

	buf := wire.New()
	leadIn := rcAttributeLeadIn(rcClientAttrReturnJobInfo, 0)
	buf.PutBytes(buildHeaderTail(leadIn, 2, reqRepRCAuthenticate))
	buf.PutUint8(pwdEncType)
	buf.PutUint8(1) // sendReply

	putDynamicField(buf, cpPassword, encPwd)
	putDynamicField(buf, cpUserID, s.ebcdic.ASCIIToEBCDIC(codec.PadRight(s.config.UserName, 10)))

	s.opts.logger.Debugf("ibmi[%s]: remote command authenticate, pwdEncType=%d", s.id, pwdEncType)

	if err := s.rcConn.Write(buf.Bytes()); err != nil {
		return s.closeOnFatal("AuthenticateToRemoteCommand", err)
	}

	raw, err := s.rcConn.Read()
	if err != nil {
		return s.closeOnFatal("AuthenticateToRemoteCommand", err)
	}
	if len(raw) < headerBodyOffset+4 {
		return s.closeOnFatal("AuthenticateToRemoteCommand", fmt.Errorf("response shorter than result code (%d bytes)", len(raw)))
	}

	resp := wire.NewFromBytes(raw)
	resp.SetCursor(headerBodyOffset)
	resultCode := resp.ReadUint32()
	if resultCode != 0 {
		return s.closeOnFatal("AuthenticateToRemoteCommand", authenticationError(resultCode))
	}

	fields, err := parseDynamicFields(resp)
	if err == nil {
		if v, ok := findField(fields, cpJobName); ok && len(v) > 4 {
			s.jobName = s.ebcdic.EBCDICToASCII(v[4:])
		}
	}

	s.state = stateRcAuthed
	return nil
}

// retrieveServerInfoNLV is the default National Language Version sent
// in the RetrieveRemoteCommandServerInformation template (spec §4.5).
const retrieveServerInfoNLV = "2924"

// RetrieveRemoteCommandServerInformation sends ReqRep 0x1001 and
// parses the negotiated CCSID, NLV, and datastream level (spec §4.5).
func (s *Session) RetrieveRemoteCommandServerInformation() error {
	if s.state != stateRcAuthed {
		return &ConfigError{Field: "session", Reason: "AuthenticateToRemoteCommand must succeed first"}
	}

	buf := wire.New()
	buf.PutBytes(buildHeaderTail(headerIDLeadIn(serverIDRemoteCommand), 14, reqRepRCRetrieveInfo))
	buf.PutUint32(1200)
	buf.PutBytes(s.ebcdic.ASCIIToEBCDIC(retrieveServerInfoNLV))
	buf.PutUint32(1) // client version
	buf.PutUint16(0) // client datastream level

	s.opts.logger.Debugf("ibmi[%s]: retrieve remote command server information", s.id)

	if err := s.rcConn.Write(buf.Bytes()); err != nil {
		return s.closeOnFatal("RetrieveRemoteCommandServerInformation", err)
	}

	raw, err := s.rcConn.Read()
	if err != nil {
		return s.closeOnFatal("RetrieveRemoteCommandServerInformation", err)
	}
	if len(raw) < headerBodyOffset+2+4+4+4+2 {
		return s.closeOnFatal("RetrieveRemoteCommandServerInformation", fmt.Errorf("response too short (%d bytes)", len(raw)))
	}

	resp := wire.NewFromBytes(raw)
	resp.SetCursor(headerBodyOffset)
	resultCode := resp.ReadUint16()
	if !acceptableServerInfoResultCodes[resultCode] {
		return s.closeOnFatal("RetrieveRemoteCommandServerInformation", fmt.Errorf("server info result code 0x%04X", resultCode))
	}

	s.serverCCSID = resp.ReadUint32()
	nlv := resp.ReadBytes(4)
	s.serverNLV = s.ebcdic.EBCDICToASCII(nlv)
	_ = resp.ReadUint32() // reserved
	s.serverDatastreamLevel = resp.ReadUint16()

	if c, cerr := codec.NewEBCDICCodec(s.serverCCSID); cerr == nil {
		s.ebcdic = c
	}

	s.state = stateReady
	return nil
}
