package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ibmi "github.com/ibmigo/ibmiconnector"
)

func testSession() *ibmi.Session {
	return ibmi.NewSession(ibmi.NewConfig("127.0.0.1", "QSECOFR", "secret"), ibmi.WithoutLogging())
}

func TestParseParamInputText(t *testing.T) {
	sess := testSession()

	p, err := parseParam(sess, "in:10:QSYS")
	require.NoError(t, err)
	assert.Equal(t, ibmi.ParameterInput, p.Type)
	assert.Equal(t, 10, p.DeclaredMaxLength)
	assert.Equal(t, sess.EncodeText("QSYS"), p.Payload)
}

func TestParseParamInputHex(t *testing.T) {
	sess := testSession()

	p, err := parseParam(sess, "in:4:hex:DEADBEEF")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, p.Payload)
}

func TestParseParamOutputNoValue(t *testing.T) {
	sess := testSession()

	p, err := parseParam(sess, "out:1000")
	require.NoError(t, err)
	assert.Equal(t, ibmi.ParameterOutput, p.Type)
	assert.Equal(t, 1000, p.DeclaredMaxLength)
	assert.Nil(t, p.Payload)
}

func TestParseParamInOut(t *testing.T) {
	sess := testSession()

	p, err := parseParam(sess, "inout:8:hex:0011223344556677")
	require.NoError(t, err)
	assert.Equal(t, ibmi.ParameterInputOutput, p.Type)
}

func TestParseParamRejectsUnknownType(t *testing.T) {
	sess := testSession()

	_, err := parseParam(sess, "bogus:4")
	require.Error(t, err)
}

func TestParseParamRejectsMalformedSpec(t *testing.T) {
	sess := testSession()

	_, err := parseParam(sess, "in")
	require.Error(t, err)
}

func TestParseParamRejectsBadLength(t *testing.T) {
	sess := testSession()

	_, err := parseParam(sess, "in:abc:value")
	require.Error(t, err)
}

func TestParseParamRejectsBadHex(t *testing.T) {
	sess := testSession()

	_, err := parseParam(sess, "in:4:hex:zz")
	require.Error(t, err)
}
