package crypto

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, seed byte) *StateTokenCodec {
	key := make([]byte, 32)
	for i := range key {
		key[i] = seed
	}

	codec, err := NewStateTokenCodec(key)
	require.NoError(t, err)
	return codec
}

func Test_StateTokenCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t, 1)

	token, err := codec.Encode("823742984923")
	require.NoError(t, err)

	userID, err := codec.Decode(token)
	require.NoError(t, err)
	require.Equal(t, "823742984923", userID)
}

func Test_StateTokenCodec_FreshCiphertextEachTime(t *testing.T) {
	codec := newTestCodec(t, 1)

	first, err := codec.Encode("user-1")
	require.NoError(t, err)
	second, err := codec.Encode("user-1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	for _, token := range []string{first, second} {
		userID, err := codec.Decode(token)
		require.NoError(t, err)
		require.Equal(t, "user-1", userID)
	}
}

func Test_StateTokenCodec_WrongKey(t *testing.T) {
	token, err := newTestCodec(t, 1).Encode("user-1")
	require.NoError(t, err)

	_, err = newTestCodec(t, 2).Decode(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func Test_StateTokenCodec_Corrupted(t *testing.T) {
	codec := newTestCodec(t, 1)

	token, err := codec.Encode("user-1")
	require.NoError(t, err)

	// Truncated input.
	_, err = codec.Decode(token[:10])
	require.ErrorIs(t, err, ErrInvalidToken)

	// Not base64 at all.
	_, err = codec.Decode("%%%%")
	require.ErrorIs(t, err, ErrInvalidToken)

	// A single flipped byte in the ciphertext.
	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01
	_, err = codec.Decode(base64.RawURLEncoding.EncodeToString(raw))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func Test_StateTokenCodec_URLSafe(t *testing.T) {
	codec := newTestCodec(t, 1)

	token, err := codec.Encode("user-1")
	require.NoError(t, err)

	// The encoded form must survive a query-string round trip unchanged.
	values := url.Values{}
	values.Set("state", token)
	parsed, err := url.ParseQuery(values.Encode())
	require.NoError(t, err)
	require.Equal(t, token, parsed.Get("state"))
}

func Test_NewStateTokenCodec_BadKey(t *testing.T) {
	_, err := NewStateTokenCodec([]byte("too short"))
	require.Error(t, err)
}
