package ibmi

import "time"

// sessionOptions collects the values Option functions populate; it has
// no existence outside Session construction.
type sessionOptions struct {
	logger            Logger
	dialTimeout       time.Duration
	signonPort        int
	remoteCommandPort int
}

func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		logger:      newDefaultLogger(),
		dialTimeout: 30 * time.Second,
	}
}

// Option customizes Session construction. Mirrors the teacher's
// functional-options style for connection setup.
type Option func(*sessionOptions)

// WithLogger overrides the default stderr logger. Pass a type
// implementing Logger, or an explicit no-op to silence logging
// entirely.
func WithLogger(logger Logger) Option {
	return func(o *sessionOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithoutLogging silences all Session logging.
func WithoutLogging() Option {
	return func(o *sessionOptions) {
		o.logger = noopLogger{}
	}
}

// WithDialTimeout overrides the TCP dial timeout used for both
// channels (default 30s).
func WithDialTimeout(d time.Duration) Option {
	return func(o *sessionOptions) {
		if d > 0 {
			o.dialTimeout = d
		}
	}
}

// WithSignonPort overrides the Sign-on Verify server port (default
// 8476, or 9476 under TLS).
func WithSignonPort(port int) Option {
	return func(o *sessionOptions) {
		o.signonPort = port
	}
}

// WithRemoteCommandPort overrides the Remote Command server port
// (default 8475, or 9475 under TLS).
func WithRemoteCommandPort(port int) Option {
	return func(o *sessionOptions) {
		o.remoteCommandPort = port
	}
}
