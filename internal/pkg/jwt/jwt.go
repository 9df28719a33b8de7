package jwt

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// AccessTokenTTL is the fixed lifetime of an access token.
const AccessTokenTTL = 24 * time.Hour

// refreshTokenBytes is the entropy of a refresh-token value. 256 random
// bits make collision handling unnecessary.
const refreshTokenBytes = 32

// Claims represents the access-token claims. FirstName and LastName are
// individually keyed even though the display name composes them; clients
// rely on both forms.
type Claims struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return uint(id), nil
}

// Issuer mints and validates HS256 access tokens. Construction fails when
// the signing secret, issuer or audience are unconfigured, so a
// misconfigured process never starts serving.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
}

// NewIssuer validates the signing configuration up front.
func NewIssuer(secret, issuer, audience string) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("jwt: signing secret not configured")
	}
	if issuer == "" {
		return nil, errors.New("jwt: issuer not configured")
	}
	if audience == "" {
		return nil, errors.New("jwt: audience not configured")
	}
	return &Issuer{secret: []byte(secret), issuer: issuer, audience: audience}, nil
}

// Issue signs a new access token for the given identity and returns the
// token with its expiry timestamp.
func (i *Issuer) Issue(userID uint, email, firstName, lastName, role string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(AccessTokenTTL)

	claims := Claims{
		Email:     email,
		Name:      firstName + " " + lastName,
		Role:      role,
		FirstName: firstName,
		LastName:  lastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate checks signature, issuer, audience and expiry with zero
// clock-skew tolerance and returns the claims.
func (i *Issuer) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenInvalid
			}
			return i.secret, nil
		},
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Decode extracts the claims without verifying the signature. Only for
// callers behind a gate that has already validated the token.
func Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// NewRefreshValue returns an opaque refresh-token value: 32 bytes from
// crypto/rand, base64-encoded.
func NewRefreshValue() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
