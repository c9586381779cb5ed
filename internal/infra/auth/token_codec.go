package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"tastebud/config"
	"tastebud/internal/domain/service"
	"tastebud/internal/errors"
)

// tokenClaims is the JSON payload of a bearer token. Marshalling a struct
// keeps the field order stable, so re-serialization for verification is
// byte-identical to the originally signed form.
type tokenClaims struct {
	Subject   string `json:"sub"`
	ExpiresAt int64  `json:"exp"` // epoch seconds
}

// hmacCodec implements service.TokenCodec with the fixed wire format
//
//	base64url(json claims) + "." + hex(hmac-sha256(payload, secret))
//
// The signature is a keyed MAC over the encoded payload, never a bare
// hash of payload plus secret, so length-extension forgeries don't apply.
type hmacCodec struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// NewTokenCodec is the constructor for hmacCodec. The signing secret and
// default session TTL come from configuration; there is no package-level state.
func NewTokenCodec(cfg *config.Config) (service.TokenCodec, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session secret must be provided")
	}

	ttl := cfg.SecretKey.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &hmacCodec{
		secret:     []byte(cfg.SecretKey.Session),
		defaultTTL: ttl,
		now:        time.Now,
	}, nil
}

// Issue signs claims for the subject expiring ttl from now.
func (c *hmacCodec) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	claims := tokenClaims{
		Subject:   subject,
		ExpiresAt: c.now().Add(ttl).Unix(),
	}

	raw, err := json.Marshal(claims)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal token claims")
	}

	payload := base64.RawURLEncoding.EncodeToString(raw)

	return payload + "." + c.sign(payload), nil
}

// Decode validates a token string and returns its claims.
// The signature is verified before the payload is parsed, so claims from
// a tampered token are never inspected.
func (c *hmacCodec) Decode(token string) (*service.Claims, error) {
	payload, signature, found := strings.Cut(token, ".")
	if !found || payload == "" || signature == "" {
		return nil, errors.Wrap(service.ErrTokenMalformed, "missing payload or signature segment")
	}

	supplied, err := hex.DecodeString(signature)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenSignature, "signature is not valid hex")
	}
	expected, err := hex.DecodeString(c.sign(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode computed signature")
	}
	if !hmac.Equal(supplied, expected) {
		return nil, errors.Wrap(service.ErrTokenSignature, "signature mismatch")
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenMalformed, "payload is not valid base64url")
	}

	var claims tokenClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, errors.Wrap(service.ErrTokenMalformed, "payload is not valid claims JSON")
	}

	expiresAt := time.Unix(claims.ExpiresAt, 0)
	if !expiresAt.After(c.now()) {
		return nil, errors.Wrap(service.ErrTokenExpired, "token expiry is in the past")
	}

	return &service.Claims{
		Subject:   claims.Subject,
		ExpiresAt: expiresAt,
	}, nil
}

// sign computes the hex HMAC-SHA256 of the encoded payload.
func (c *hmacCodec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))

	return hex.EncodeToString(mac.Sum(nil))
}
