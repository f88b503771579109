package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 10 * time.Hour

// JWTCodec implements ports.TokenCodec with HS256-signed JWTs.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type JWTOption func(*JWTCodec)

// WithIssuer sets the "iss" claim on issued tokens and requires it on
// validation.
func WithIssuer(issuer string) JWTOption {
	return func(c *JWTCodec) { c.issuer = issuer }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) JWTOption {
	return func(c *JWTCodec) { c.now = now }
}

func NewJWTCodec(secret string, ttl time.Duration, opts ...JWTOption) *JWTCodec {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	c := &JWTCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *JWTCodec) Issue(subject string) (string, error) {
	if len(c.secret) == 0 {
		return "", errors.New("jwt secret is required")
	}
	if subject == "" {
		return "", errors.New("jwt subject is required")
	}

	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    c.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *JWTCodec) Validate(token, expectedSubject string) bool {
	// jwt.WithSubject skips the check for an empty expectation.
	if expectedSubject == "" {
		return false
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(expectedSubject),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	_, ok := c.parse(token, opts...)
	return ok
}

func (c *JWTCodec) ExtractSubject(token string) (string, bool) {
	claims, ok := c.parse(token,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if !ok || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

func (c *JWTCodec) parse(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, bool) {
	if token == "" || len(c.secret) == 0 {
		return nil, false
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, false
	}
	return claims, true
}
