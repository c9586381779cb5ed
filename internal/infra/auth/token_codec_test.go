package auth

import (
	"strings"
	"testing"
	"time"

	"tastebud/config"
	"tastebud/internal/domain/service"
	"tastebud/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) service.TokenCodec {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Session = "test_session_secret_key_very_long_for_testing"
	cfg.SecretKey.SessionTTL = time.Hour

	codec, err := NewTokenCodec(cfg)
	require.NoError(t, err)

	return codec
}

func TestTokenCodec_IssueAndDecode(t *testing.T) {
	codec := newTestCodec(t)

	issuedAt := time.Now()
	token, err := codec.Issue("alice", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)

	// Expiry lands one hour after issuance, within clock resolution.
	assert.WithinDuration(t, issuedAt.Add(time.Hour), claims.ExpiresAt, 2*time.Second)
}

func TestTokenCodec_WireFormat(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("alice", time.Hour)
	require.NoError(t, err)

	// Two segments: base64url payload, hex HMAC-SHA256 signature.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 2)
	assert.Len(t, parts[1], 64)
	assert.NotContains(t, parts[0], "=")
}

func TestTokenCodec_DefaultTTL(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("alice", 0)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 2*time.Second)
}

func TestTokenCodec_Tampering(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("alice", time.Hour)
	require.NoError(t, err)

	// Flipping any single character of either segment must fail decoding,
	// as a signature mismatch or as a malformed token when the split breaks.
	for i := range token {
		if token[i] == '.' {
			continue
		}

		flipped := byte('x')
		if token[i] == 'x' {
			flipped = 'y'
		}
		tampered := token[:i] + string(flipped) + token[i+1:]

		claims, decodeErr := codec.Decode(tampered)
		require.Errorf(t, decodeErr, "tampered token at index %d was accepted", i)
		assert.Nil(t, claims)
		assert.True(t,
			errors.Is(decodeErr, service.ErrTokenSignature) || errors.Is(decodeErr, service.ErrTokenMalformed),
			"unexpected failure mode at index %d: %v", i, decodeErr)
	}
}

func TestTokenCodec_MissingSeparator(t *testing.T) {
	codec := newTestCodec(t)

	claims, err := codec.Decode("not-a-token-at-all")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)

	claims, err = codec.Decode("")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("alice", -time.Second)
	require.NoError(t, err)

	claims, decodeErr := codec.Decode(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, decodeErr, service.ErrTokenExpired)
}

func TestTokenCodec_ExpiryBoundaryIsStrict(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Session = "test_session_secret_key_very_long_for_testing"

	codec, err := NewTokenCodec(cfg)
	require.NoError(t, err)

	// Pin the clock so expiry == now is exercised exactly.
	frozen := time.Unix(1_700_000_000, 0)
	hc, ok := codec.(*hmacCodec)
	require.True(t, ok)
	hc.now = func() time.Time { return frozen }

	token, err := hc.Issue("alice", 0)
	require.NoError(t, err)

	// A token whose expiry is not strictly in the future is invalid.
	hc.now = func() time.Time { return frozen.Add(hc.defaultTTL) }
	claims, decodeErr := hc.Decode(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, decodeErr, service.ErrTokenExpired)
}

func TestTokenCodec_DifferentSecretsReject(t *testing.T) {
	codec := newTestCodec(t)

	other := &config.Config{}
	other.SecretKey.Session = "another_secret_entirely_for_testing"
	otherCodec, err := NewTokenCodec(other)
	require.NoError(t, err)

	token, err := codec.Issue("alice", time.Hour)
	require.NoError(t, err)

	claims, decodeErr := otherCodec.Decode(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, decodeErr, service.ErrTokenSignature)
}

func TestNewTokenCodec_EmptySecret(t *testing.T) {
	cfg := &config.Config{}

	codec, err := NewTokenCodec(cfg)
	assert.Error(t, err)
	assert.Nil(t, codec)
	assert.Contains(t, err.Error(), "session secret must be provided")
}
