package discord

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Verify(t *testing.T) {
	public, private, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	timestamp := "1690000000"
	body := []byte(`{"type":1}`)
	signature := hex.EncodeToString(ed25519.Sign(private, append([]byte(timestamp), body...)))

	require.NoError(t, Verify(signature, timestamp, body, public))
}

func Test_Verify_Failures(t *testing.T) {
	public, private, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	timestamp := "1690000000"
	body := []byte(`{"type":1}`)
	signature := hex.EncodeToString(ed25519.Sign(private, append([]byte(timestamp), body...)))

	// Tampered body.
	require.Error(t, Verify(signature, timestamp, []byte(`{"type":2}`), public))

	// Tampered timestamp.
	require.Error(t, Verify(signature, "1690000001", body, public))

	// Flipped signature byte.
	raw, err := hex.DecodeString(signature)
	require.NoError(t, err)
	raw[0] ^= 0x01
	require.Error(t, Verify(hex.EncodeToString(raw), timestamp, body, public))

	// Wrong key.
	otherPublic, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	require.Error(t, Verify(signature, timestamp, body, otherPublic))

	// Malformed inputs fail closed instead of panicking.
	require.Error(t, Verify("", timestamp, body, public))
	require.Error(t, Verify("zz", timestamp, body, public))
	require.Error(t, Verify("abcd", timestamp, body, public))
	require.Error(t, Verify(signature, "", body, public))
}
