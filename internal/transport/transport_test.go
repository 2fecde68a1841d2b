package transport

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeConn wraps the test half of a net.Pipe with the buffered Conn
// under test, mirroring the teacher's mockConn-over-io.ReadWriteCloser
// pattern but using a real net.Conn so Write/Read exercise the exact
// same bufio plumbing production code uses.
func newTestPair(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	c := &Conn{
		netConn: client,
		reader:  bufio.NewReaderSize(client, 64*1024),
		writer:  bufio.NewWriterSize(client, 64*1024),
	}
	return c, server
}

func TestConnWriteFramesLengthPrefix(t *testing.T) {
	c, server := newTestPair(t)
	defer server.Close()

	done := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 64)
		n, _ := server.Read(buf)
		done <- buf[:n]
	}()

	require.NoError(t, c.Write([]byte{0x01, 0x02, 0x03}))

	select {
	case got := <-done:
		assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x07, 0x01, 0x02, 0x03}, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for write")
	}
}

func TestConnReadKeepAliveSentinels(t *testing.T) {
	for _, sentinel := range [][]byte{
		{0x00, 0x00, 0x00, 0x00},
		{0x40, 0x40, 0x40, 0x40},
	} {
		c, server := newTestPair(t)
		go func(s []byte) { _, _ = server.Write(s) }(sentinel)

		got, err := c.Read()
		require.NoError(t, err)
		assert.Nil(t, got)
		server.Close()
	}
}

func TestConnReadReturnsLengthPrefixedFrame(t *testing.T) {
	c, server := newTestPair(t)
	defer server.Close()

	frame := []byte{0x00, 0x00, 0x00, 0x08, 0xAA, 0xBB, 0xCC, 0xDD}
	go func() { _, _ = server.Write(frame) }()

	got, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, frame, got)
}

func TestDisconnectIdempotent(t *testing.T) {
	c, server := newTestPair(t)
	defer server.Close()

	require.NoError(t, c.Disconnect())
	require.NoError(t, c.Disconnect())
}
