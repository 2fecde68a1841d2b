// Package ibmi implements a client for the IBM i (AS/400) host-server
// wire protocol: Sign-on Verify and Remote Command channel handshakes,
// seeded DES/SHA-1 password authentication, and the CallCommand/
// CallProgram/CallServiceProgram call engine. It never multiplexes a
// single Session across concurrent callers (spec §5); create one
// Session per concurrent caller.
package ibmi

import (
	"github.com/google/uuid"

	"github.com/ibmigo/ibmiconnector/internal/codec"
	"github.com/ibmigo/ibmiconnector/internal/transport"
)

// sessionState tracks progress through the handshake chain (spec
// §4.6's state machine). Transitions flow strictly top to bottom;
// any fatal error moves the session back to stateClosed after tearing
// down both channels.
type sessionState int

const (
	stateClosed sessionState = iota
	stateSignonConnected
	stateSignonAuthed
	stateRcConnected
	stateRcAuthed
	stateReady
)

// Session owns the two logical channels (Sign-on Verify, Remote
// Command) to one IBM i partition and the negotiated parameters both
// handshakes establish (spec §3). Not safe for concurrent use.
type Session struct {
	config Config
	opts   sessionOptions
	state  sessionState
	id     uuid.UUID

	signonConn *transport.Conn
	rcConn     *transport.Conn

	serverVersion         uint32
	serverLevel           uint16
	serverCCSID           uint32
	serverNLV             string
	serverDatastreamLevel uint16
	passwordLevel         uint8
	jobName               string
	clientSeed            uint64
	serverSeed            uint64

	ebcdic *codec.EBCDICCodec
}

// NewSession constructs a Session from cfg. No I/O happens until
// Connect is called.
func NewSession(cfg Config, opts ...Option) *Session {
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ebcdic, err := codec.NewEBCDICCodec(37)
	if err != nil {
		// CCSID 37 is always registered (codec.builtinCodePages);
		// this cannot fail.
		panic("ibmi: default EBCDIC codec: " + err.Error())
	}

	return &Session{
		config: cfg,
		opts:   o,
		state:  stateClosed,
		id:     uuid.New(),
		ebcdic: ebcdic,
	}
}

// ID returns this session's correlation UUID, used only in log lines
// (never on the wire) so a host application can tie a logged call to
// its response across both channels.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State reports the current handshake state. Exposed for tests and
// diagnostics; callers normally just call Connect and check its error.
func (s *Session) State() string {
	switch s.state {
	case stateClosed:
		return "Closed"
	case stateSignonConnected:
		return "SignonConnected"
	case stateSignonAuthed:
		return "SignonAuthed"
	case stateRcConnected:
		return "RcConnected"
	case stateRcAuthed:
		return "RcAuthed"
	case stateReady:
		return "Ready"
	default:
		return "Unknown"
	}
}

// Connect executes the full handshake chain in order: Sign-on Verify
// connect and authenticate, Remote Command connect and authenticate,
// then server information retrieval. On any failure the session is
// left Closed with both channels torn down (spec §4.5, §7).
func (s *Session) Connect() error {
	s.opts.logger.Infof("ibmi[%s]: connecting to %s", s.id, s.config.Host)

	if err := s.ConnectToSignonVerifyServer(); err != nil {
		return err
	}
	if err := s.AuthenticateToSignonVerify(); err != nil {
		return err
	}
	if err := s.ConnectToRemoteCommandServer(); err != nil {
		return err
	}
	if err := s.AuthenticateToRemoteCommand(); err != nil {
		return err
	}
	if err := s.RetrieveRemoteCommandServerInformation(); err != nil {
		return err
	}

	s.opts.logger.Infof("ibmi[%s]: ready, job %q", s.id, s.jobName)
	return nil
}

// Disconnect closes both channels. Idempotent: calling it again, or
// calling it before Connect, is a no-op.
func (s *Session) Disconnect() error {
	if s.signonConn != nil {
		_ = s.signonConn.Disconnect()
		s.signonConn = nil
	}
	if s.rcConn != nil {
		_ = s.rcConn.Disconnect()
		s.rcConn = nil
	}
	s.jobName = ""
	s.state = stateClosed
	return nil
}

// closeOnFatal tears down both channels and moves the session to
// Closed, then wraps err as a *ProtocolError naming stage.
func (s *Session) closeOnFatal(stage string, err error) error {
	s.opts.logger.Errorf("ibmi[%s]: %s: %v", s.id, stage, err)
	_ = s.Disconnect()
	return newProtocolError(stage, true, err)
}

// EncodeText translates text into the session's negotiated EBCDIC code
// page, uppercasing first per the platform's naming convention. External
// packages building their own CallProgram/CallServiceProgram parameters
// (names, qualified object names, format names) use this rather than
// reaching into an internal codec.
func (s *Session) EncodeText(text string) []byte {
	return s.ebcdic.ASCIIToEBCDIC(text)
}

// DecodeText translates EBCDIC bytes back to a Go string using the
// session's negotiated code page.
func (s *Session) DecodeText(data []byte) string {
	return s.ebcdic.EBCDICToASCII(data)
}

// requireReady returns a Configuration error if the session has not
// completed the handshake chain (spec §8: "CallCommand before Connect
// raises Configuration error \"not connected\"").
func (s *Session) requireReady() error {
	if s.state != stateReady {
		return &ConfigError{Field: "session", Reason: "not connected"}
	}
	return nil
}
