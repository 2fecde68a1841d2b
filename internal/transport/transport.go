// Package transport owns the single TCP (optionally TLS) connection for
// one channel (Sign-on Verify or Remote Command) and imposes the outer
// 4-byte big-endian length frame every datagram on the wire carries
// (spec §4.3).
package transport

import (
	"bufio"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/ibmigo/ibmiconnector/internal/codec"
)

// Warner is the minimal logging capability transport needs: a single
// warning line when a caller opts into permissive TLS. Satisfied by
// ibmi.Logger without transport importing the root package, keeping
// this warning behind the same injectable sink as every other log
// line a Session emits (spec §9).
type Warner interface {
	Warnf(format string, args ...interface{})
}

type noopWarner struct{}

func (noopWarner) Warnf(string, ...interface{}) {}

// Channel identifies which host-server this connection targets, which
// selects the default TCP port.
type Channel int

const (
	// ChannelSignonVerify is the Sign-on Verify server.
	ChannelSignonVerify Channel = iota
	// ChannelRemoteCommand is the Remote Command server.
	ChannelRemoteCommand
)

// Default ports per spec §6. TLS variants are used when the caller asks
// for an encrypted connection.
const (
	PortSignonVerify    = 8476
	PortSignonVerifyTLS = 9476
	PortRemoteCommand   = 8475
	PortRemoteCommandTLS = 9475
)

func defaultPort(ch Channel, useTLS bool) int {
	switch {
	case ch == ChannelSignonVerify && !useTLS:
		return PortSignonVerify
	case ch == ChannelSignonVerify && useTLS:
		return PortSignonVerifyTLS
	case ch == ChannelRemoteCommand && !useTLS:
		return PortRemoteCommand
	default:
		return PortRemoteCommandTLS
	}
}

// keepAliveZero and keepAliveSpaces are the two sentinel 4-byte length
// values the server sends in place of a real frame length to signal an
// idle/keep-alive datagram with no body (spec §4.3).
const (
	keepAliveZero   = 0x00000000
	keepAliveSpaces = 0x40404040 // four EBCDIC spaces
)

// Dial opens one TCP connection to host on the channel's default port
// (or port, if nonzero), optionally wrapped in TLS. A zero timeout
// falls back to a 30-second dial timeout. warn receives the permissive-
// TLS warning, if any; pass nil to discard it.
func Dial(host string, port int, ch Channel, tlsCfg *TLSConfig, timeout time.Duration, warn Warner) (*Conn, error) {
	useTLS := tlsCfg != nil
	if port == 0 {
		port = defaultPort(ch, useTLS)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if warn == nil {
		warn = noopWarner{}
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	rawConn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", addr, err)
	}

	var netConn net.Conn = rawConn
	if useTLS {
		netConn, err = startTLS(rawConn, host, tlsCfg, warn)
		if err != nil {
			_ = rawConn.Close()
			return nil, err
		}
	}

	return &Conn{
		netConn: netConn,
		reader:  bufio.NewReaderSize(netConn, 64*1024),
		writer:  bufio.NewWriterSize(netConn, 64*1024),
	}, nil
}

// TLSConfig selects strict (reject any certificate policy error) or
// permissive (log and accept any certificate) validation, per the open
// question in spec §9 — the core only exposes the toggle and takes no
// position on whether permissive mode belongs in production.
type TLSConfig struct {
	AcceptAnyCertificate bool
	ServerName           string
}

func startTLS(conn net.Conn, host string, cfg *TLSConfig, warn Warner) (net.Conn, error) {
	serverName := cfg.ServerName
	if serverName == "" {
		serverName = host
	}

	tlsConfig := &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: cfg.AcceptAnyCertificate,
		MinVersion:         tls.VersionTLS12,
	}

	if cfg.AcceptAnyCertificate {
		warn.Warnf("transport: TLS certificate validation disabled (AcceptAnyCertificate) for %s", host)
	}

	tlsConn := tls.Client(conn, tlsConfig)
	_ = conn.SetDeadline(time.Now().Add(30 * time.Second))
	if err := tlsConn.Handshake(); err != nil {
		return nil, fmt.Errorf("transport: TLS handshake: %w", err)
	}
	_ = conn.SetDeadline(time.Time{})

	return tlsConn, nil
}

// Conn is one framed byte stream over a single socket.
type Conn struct {
	netConn net.Conn
	reader  *bufio.Reader
	writer  *bufio.Writer
	closed  bool
}

// Write prepends a 4-byte big-endian length (payload length + 4,
// including the length field itself) to payload and flushes it.
func (c *Conn) Write(payload []byte) error {
	header := codec.PutUint32(uint32(len(payload) + 4))
	if _, err := c.writer.Write(header); err != nil {
		return fmt.Errorf("transport: write length: %w", err)
	}
	if _, err := c.writer.Write(payload); err != nil {
		return fmt.Errorf("transport: write payload: %w", err)
	}
	return c.writer.Flush()
}

// Read consumes one datagram: the 4-byte length prefix followed by
// length-4 more bytes. It returns the length prefix concatenated with
// the body, since downstream parsers expect the length field to still
// be present at offset 0 (spec §4.3). A keep-alive sentinel length
// (0x00000000 or 0x40404040) yields an empty result and no error.
func (c *Conn) Read() ([]byte, error) {
	lenBytes := make([]byte, 4)
	if _, err := readFull(c.reader, lenBytes); err != nil {
		return nil, fmt.Errorf("transport: read length: %w", err)
	}

	length := codec.Uint32(lenBytes)
	if length == keepAliveZero || length == keepAliveSpaces {
		return nil, nil
	}
	if length < 4 {
		return nil, fmt.Errorf("transport: invalid frame length %d", length)
	}

	body := make([]byte, length-4)
	if _, err := readFull(c.reader, body); err != nil {
		return nil, fmt.Errorf("transport: read body: %w", err)
	}

	out := make([]byte, 0, len(lenBytes)+len(body))
	out = append(out, lenBytes...)
	out = append(out, body...)
	return out, nil
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Disconnect closes the underlying socket. Idempotent.
func (c *Conn) Disconnect() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.netConn.Close()
}
