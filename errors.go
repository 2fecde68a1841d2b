package ibmi

import "fmt"

// ConfigError reports a parameter that violates a protocol limit (name
// length, parameter count) and is raised synchronously before any I/O,
// per spec §7.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ibmi: configuration error: %s: %s", e.Field, e.Reason)
}

// ProtocolError reports a transport, framing, or authentication failure
// encountered during a handshake step or a call (CallCommand,
// CallProgram). Stage names which step or call failed;
// Closed reports whether the session was torn down as a result (spec
// §7 propagation policy: transport and authentication errors always
// close both channels).
type ProtocolError struct {
	Stage  string
	Closed bool
	Err    error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("ibmi: protocol error in %s: %v", e.Stage, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func newProtocolError(stage string, closed bool, err error) *ProtocolError {
	return &ProtocolError{Stage: stage, Closed: closed, Err: err}
}
