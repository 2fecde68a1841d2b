package ibmi

// Config is the caller-supplied connection configuration (spec §3).
// Immutable after construction: callers build one with NewConfig and
// never mutate it afterward — Session reads it but never writes to it.
type Config struct {
	Host                 string
	UserName             string
	Password             string
	TempLibrary          string
	UseTLS               bool
	AcceptAnyCertificate bool
}

// NewConfig builds a connection configuration for host/userName/password
// with TLS disabled and no temporary library. Use the With* setters
// below (they return a modified copy) to adjust.
func NewConfig(host, userName, password string) Config {
	return Config{
		Host:     host,
		UserName: userName,
		Password: password,
	}
}

// WithTempLibrary returns a copy of c with TempLibrary set.
func (c Config) WithTempLibrary(library string) Config {
	c.TempLibrary = library
	return c
}

// WithTLS returns a copy of c with TLS enabled. acceptAnyCertificate
// selects permissive certificate validation (spec §9 open question:
// the core only exposes this toggle and takes no position on whether
// it belongs in production).
func (c Config) WithTLS(acceptAnyCertificate bool) Config {
	c.UseTLS = true
	c.AcceptAnyCertificate = acceptAnyCertificate
	return c
}
