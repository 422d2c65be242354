package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/epic-events/epic-events/internal/shared"
)

const issuer = "epic-events"

// Claims carries the session identity embedded in a signed token.
type Claims struct {
	RoleID int64 `json:"role_id"`
	jwt.RegisteredClaims
}

// CredentialStore persists the encoded token alongside issuance.
type CredentialStore interface {
	Write(token string) error
}

// Codec issues and validates signed, time-limited session tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	method jwt.SigningMethod
	store  CredentialStore

	// now is wall-clock by default; replaced in tests.
	now func() time.Time
}

// NewCodec constructs a Codec. algorithm names a HMAC signing method
// ("HS256", "HS384", "HS512"); anything else is rejected.
func NewCodec(secret string, algorithm string, ttl time.Duration, store CredentialStore) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: secret is required")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token: unsupported signing algorithm %q", algorithm)
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		method: method,
		store:  store,
		now:    time.Now,
	}, nil
}

// Issue signs a token for the subject email and role, persists it via the
// credential store, and returns the encoded string.
func (c *Codec) Issue(subject string, roleID int64) (string, error) {
	if subject == "" {
		return "", errors.New("token: subject is required")
	}
	now := c.now().UTC()
	claims := Claims{
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	if c.store != nil {
		if err := c.store.Write(signed); err != nil {
			return "", err
		}
	}
	return signed, nil
}

// Decode verifies signature and expiry and returns the embedded claims.
// An expired-but-validly-signed token yields shared.ErrExpiredToken; any
// tampering or malformation yields shared.ErrInvalidToken. Expiry is
// checked first so an expired token is never misreported as invalid.
func (c *Codec) Decode(tok string) (*Claims, error) {
	if tok == "" {
		return nil, shared.ErrInvalidToken
	}
	if exp, err := c.PeekExpiry(tok); err == nil && c.now().UTC().After(exp) {
		// Still require a valid signature before trusting the expiry read:
		// a tampered token must not borrow the softer "expired" report.
		if _, verifyErr := c.parseVerified(tok, jwt.WithoutClaimsValidation()); verifyErr != nil {
			return nil, shared.ErrInvalidToken
		}
		return nil, shared.ErrExpiredToken
	}

	claims, err := c.parseVerified(tok)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, shared.ErrExpiredToken
		}
		return nil, shared.ErrInvalidToken
	}
	return claims, nil
}

// PeekExpiry reads the expiry claim without verifying the signature. Used
// to report "expired" distinctly from "tampered" before full validation.
func (c *Codec) PeekExpiry(tok string) (time.Time, error) {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, &claims); err != nil {
		return time.Time{}, shared.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, shared.ErrInvalidToken
	}
	return claims.ExpiresAt.Time, nil
}

func (c *Codec) parseVerified(tok string, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{c.method.Alg()}))
	parsed, err := jwt.ParseWithClaims(tok, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, shared.ErrInvalidToken
	}
	return claims, nil
}
