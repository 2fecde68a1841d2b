package wireauth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ibmigo/ibmiconnector/internal/codec"
)

func testEBCDIC(t *testing.T) *codec.EBCDICCodec {
	t.Helper()
	c, err := codec.NewEBCDICCodec(37)
	require.NoError(t, err)
	return c
}

func TestUseDES(t *testing.T) {
	require.True(t, UseDES(0))
	require.True(t, UseDES(1))
	require.True(t, UseDES(2))
	require.False(t, UseDES(3))
	require.False(t, UseDES(255))
}

// DES_PasswordProof(userName="QSECOFR", password="QSECOFR", serverSeed=0,
// clientSeed=0) must be a deterministic 8-byte value (spec §8).
func TestDESPasswordProofDeterministicAndSized(t *testing.T) {
	ebcdic := testEBCDIC(t)

	got1 := DESPasswordProof(ebcdic, "QSECOFR", "QSECOFR", 0, 0)
	got2 := DESPasswordProof(ebcdic, "QSECOFR", "QSECOFR", 0, 0)

	require.Len(t, got1, 8)
	require.Equal(t, got1, got2)
}

func TestDESPasswordProofSeedSensitivity(t *testing.T) {
	ebcdic := testEBCDIC(t)

	base := DESPasswordProof(ebcdic, "QSECOFR", "QSECOFR", 0, 0)
	flippedServer := DESPasswordProof(ebcdic, "QSECOFR", "QSECOFR", 1, 0)
	flippedClient := DESPasswordProof(ebcdic, "QSECOFR", "QSECOFR", 0, 1)

	require.NotEqual(t, base, flippedServer)
	require.NotEqual(t, base, flippedClient)
}

// Pinned reference vector (spec §8: "integration tests should pin this
// byte string" rather than only assert determinism/length) so a silent
// regression anywhere in the R1..R4 chain is caught, not just a change
// in shape.
func TestDESPasswordProofReferenceVector(t *testing.T) {
	ebcdic := testEBCDIC(t)

	want, err := hex.DecodeString("1d40b5ba335958f2")
	require.NoError(t, err)

	got := DESPasswordProof(ebcdic, "QSECOFR", "QSECOFR", 0, 0)
	require.Equal(t, want, got)
}

func TestDESPasswordProofLongNameAndPassword(t *testing.T) {
	ebcdic := testEBCDIC(t)

	// 9-character name exercises the 2-bit folding path; an 11+ byte
	// password exercises the split-token path.
	got := DESPasswordProof(ebcdic, "TENCHARSX", "A_LONG_PASSWORD_OVER_EIGHT_CHARS", 42, 99)
	require.Len(t, got, 8)
}

// SHA1_PasswordProof(userName="QSECOFR", password="QSECOFR",
// serverSeed=0x1122_3344_5566_7788, clientSeed=0x0102_0304_0506_0708)
// must yield a fixed 20-byte output (spec §8).
func TestSHA1PasswordProofDeterministicAndSized(t *testing.T) {
	got1 := SHA1PasswordProof("QSECOFR", "QSECOFR", 0x1122334455667788, 0x0102030405060708)
	got2 := SHA1PasswordProof("QSECOFR", "QSECOFR", 0x1122334455667788, 0x0102030405060708)

	require.Len(t, got1, 20)
	require.Equal(t, got1, got2)
}

// Pinned reference vector, same rationale as
// TestDESPasswordProofReferenceVector above.
func TestSHA1PasswordProofReferenceVector(t *testing.T) {
	want, err := hex.DecodeString("726805e53e40630e0a0b12347c44892c292f9b99")
	require.NoError(t, err)

	got := SHA1PasswordProof("QSECOFR", "QSECOFR", 0x1122334455667788, 0x0102030405060708)
	require.Equal(t, want, got)
}

func TestSHA1PasswordProofSeedSensitivity(t *testing.T) {
	base := SHA1PasswordProof("QSECOFR", "QSECOFR", 0x1122334455667788, 0x0102030405060708)

	flippedServer := SHA1PasswordProof("QSECOFR", "QSECOFR", 0x1122334455667789, 0x0102030405060708)
	flippedClient := SHA1PasswordProof("QSECOFR", "QSECOFR", 0x1122334455667788, 0x0102030405060709)

	require.NotEqual(t, base, flippedServer)
	require.NotEqual(t, base, flippedClient)
}

func TestSHA1PasswordProofPasswordSensitivity(t *testing.T) {
	base := SHA1PasswordProof("QSECOFR", "QSECOFR", 0, 0)
	other := SHA1PasswordProof("QSECOFR", "QSECOFQ", 0, 0)
	require.NotEqual(t, base, other)
}
