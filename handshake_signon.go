package ibmi

import (
	"fmt"
	"time"

	"github.com/ibmigo/ibmiconnector/internal/codec"
	"github.com/ibmigo/ibmiconnector/internal/transport"
	"github.com/ibmigo/ibmiconnector/internal/wire"
	"github.com/ibmigo/ibmiconnector/internal/wireauth"
)

// tlsConfig builds the transport TLS configuration from Config, or
// nil when TLS is disabled.
func (s *Session) tlsConfig() *transport.TLSConfig {
	if !s.config.UseTLS {
		return nil
	}
	return &transport.TLSConfig{AcceptAnyCertificate: s.config.AcceptAnyCertificate}
}

// ConnectToSignonVerifyServer opens the Sign-on Verify channel,
// resets the seed pair, and exchanges client/server attributes
// (ReqRep 0x7003, spec §4.5).
func (s *Session) ConnectToSignonVerifyServer() error {
	conn, err := transport.Dial(s.config.Host, s.opts.signonPort, transport.ChannelSignonVerify, s.tlsConfig(), s.opts.dialTimeout, s.opts.logger)
	if err != nil {
		return s.closeOnFatal("ConnectToSignonVerifyServer", err)
	}
	s.signonConn = conn

	s.clientSeed = uint64(time.Now().UnixMilli())
	s.serverSeed = 0

	buf := wire.New()
	buf.PutBytes(buildHeaderTail(headerIDLeadIn(serverIDSignonVerify), 0, reqRepSignonExchangeAttributes))
	putDynamicField(buf, cpClientVersion, codec.PutUint32(1))
	putDynamicField(buf, cpClientDatastreamLevel, codec.PutUint16(2))
	putDynamicField(buf, cpClientSeed, codec.PutUint64(s.clientSeed))

	s.opts.logger.Debugf("ibmi[%s]: signon exchange attributes, client seed=%d", s.id, s.clientSeed)

	if err := s.signonConn.Write(buf.Bytes()); err != nil {
		return s.closeOnFatal("ConnectToSignonVerifyServer", err)
	}

	raw, err := s.signonConn.Read()
	if err != nil {
		return s.closeOnFatal("ConnectToSignonVerifyServer", err)
	}
	if len(raw) < headerBodyOffset {
		return s.closeOnFatal("ConnectToSignonVerifyServer", fmt.Errorf("response shorter than header (%d bytes)", len(raw)))
	}

	resp := wire.NewFromBytes(raw)
	resp.SetCursor(headerBodyOffset)
	fields, err := parseDynamicFields(resp)
	if err != nil {
		return s.closeOnFatal("ConnectToSignonVerifyServer", err)
	}

	if v, ok := findField(fields, cpClientVersion); ok {
		s.serverVersion = codec.Uint32(v)
	}
	if v, ok := findField(fields, cpClientDatastreamLevel); ok {
		s.serverLevel = codec.Uint16(v)
	}
	if v, ok := findField(fields, cpClientSeed); ok {
		s.serverSeed = codec.Uint64(v)
	}
	if v, ok := findField(fields, cpPasswordLevel); ok && len(v) >= 1 {
		s.passwordLevel = v[0]
	}
	if v, ok := findField(fields, cpJobName); ok && len(v) > 4 {
		s.jobName = s.ebcdic.EBCDICToASCII(v[4:])
	}

	s.state = stateSignonConnected
	return nil
}

// AuthenticateToSignonVerify computes the password proof per the
// negotiated password level and sends it on ReqRep 0x7004 (spec
// §4.4, §4.5).
func (s *Session) AuthenticateToSignonVerify() error {
	if s.state != stateSignonConnected {
		return &ConfigError{Field: "session", Reason: "ConnectToSignonVerifyServer must succeed first"}
	}

	pwdEncType, encPwd := s.computePasswordProof()

	buf := wire.New()
	// spec §9 open question: always emit the leading header prefix,
	// the same way the Remote Command path unconditionally does,
	// rather than guard it behind serverLevel >= 5.
	buf.PutBytes(buildHeaderTail(headerIDLeadIn(serverIDSignonVerify), 1, reqRepSignonAuthenticate))
	buf.PutUint8(pwdEncType)

	putDynamicField(buf, cpClientCCSID, codec.PutUint32(1200))
	putDynamicField(buf, cpPassword, encPwd)
	putDynamicField(buf, cpUserID, s.ebcdic.ASCIIToEBCDIC(codec.PadRight(s.config.UserName, 10)))
	if s.serverLevel >= 5 {
		putDynamicField(buf, cpReturnErrorMessages, []byte{1})
	}

	s.opts.logger.Debugf("ibmi[%s]: signon authenticate, pwdEncType=%d", s.id, pwdEncType)

	if err := s.signonConn.Write(buf.Bytes()); err != nil {
		return s.closeOnFatal("AuthenticateToSignonVerify", err)
	}

	raw, err := s.signonConn.Read()
	if err != nil {
		return s.closeOnFatal("AuthenticateToSignonVerify", err)
	}
	if len(raw) < headerBodyOffset+4 {
		return s.closeOnFatal("AuthenticateToSignonVerify", fmt.Errorf("response shorter than result code (%d bytes)", len(raw)))
	}

	resp := wire.NewFromBytes(raw)
	resp.SetCursor(headerBodyOffset)
	resultCode := resp.ReadUint32()
	if resultCode != 0 {
		return s.closeOnFatal("AuthenticateToSignonVerify", authenticationError(resultCode))
	}

	fields, err := parseDynamicFields(resp)
	if err == nil {
		if v, ok := findField(fields, cpServerCCSID); ok {
			s.serverCCSID = codec.Uint32(v)
			if c, cerr := codec.NewEBCDICCodec(s.serverCCSID); cerr == nil {
				s.ebcdic = c
			}
		}
	}

	s.state = stateSignonAuthed
	return nil
}

// computePasswordProof selects DES or SHA-1 per the negotiated
// password level and returns the encryption-type byte plus the
// computed proof (spec §4.4).
func (s *Session) computePasswordProof() (pwdEncType uint8, proof []byte) {
	if wireauth.UseDES(s.passwordLevel) {
		return pwdEncTypeDES, wireauth.DESPasswordProof(s.ebcdic, s.config.UserName, s.config.Password, s.serverSeed, s.clientSeed)
	}
	return pwdEncTypeSHA1, wireauth.SHA1PasswordProof(s.config.UserName, s.config.Password, s.serverSeed, s.clientSeed)
}

// authenticationError maps a non-zero handshake result code to a
// descriptive error per the taxonomy in spec §7.
func authenticationError(code uint32) error {
	switch code {
	case 0x00020001:
		return fmt.Errorf("ibmi: unknown user (result code 0x%08X)", code)
	case 0x00020002:
		return fmt.Errorf("ibmi: user profile locked (result code 0x%08X)", code)
	case 0x00020003:
		return fmt.Errorf("ibmi: user mismatch (result code 0x%08X)", code)
	case 0x0003000B:
		return fmt.Errorf("ibmi: bad password (result code 0x%08X)", code)
	case 0x0003000C:
		return fmt.Errorf("ibmi: bad password, profile will be revoked on next failure (result code 0x%08X)", code)
	case 0x0003000D:
		return fmt.Errorf("ibmi: password expired (result code 0x%08X)", code)
	case 0x0003000E:
		return fmt.Errorf("ibmi: pre-V2R2 encrypted password (result code 0x%08X)", code)
	case 0x00030010:
		return fmt.Errorf("ibmi: password is *NONE (result code 0x%08X)", code)
	}

	switch code >> 16 {
	case 0x0001:
		return fmt.Errorf("ibmi: request data error (result code 0x%08X)", code)
	case 0x0004:
		return fmt.Errorf("ibmi: general security failure (result code 0x%08X)", code)
	case 0x0006:
		return fmt.Errorf("ibmi: authentication token error (result code 0x%08X)", code)
	}

	return fmt.Errorf("ibmi: authentication failed (result code 0x%08X)", code)
}
