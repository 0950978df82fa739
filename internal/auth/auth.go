// Package auth implements the single-operator login and signed session tokens.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidCredentials is returned when email or password do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned for missing, malformed, expired or forged tokens.
var ErrInvalidToken = errors.New("invalid session token")

// OperatorID and OperatorName identify the only account.
const (
	OperatorID   = "1"
	OperatorName = "Admin User"
)

// User is the authenticated operator.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Claims are the JWT claims carried by a session token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Credentials holds the configured operator account and the session signing key.
type Credentials struct {
	Email    string
	Password string
	Secret   []byte        // HMAC key for HS256
	Issuer   string        // Public URL of the service
	TTL      time.Duration // Session lifetime

	now func() time.Time
}

// NewCredentials creates Credentials.
func NewCredentials(email, password, secret, issuer string, ttl time.Duration) (*Credentials, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("operator email and password are required")
	}
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	return &Credentials{
		Email:    email,
		Password: password,
		Secret:   []byte(secret),
		Issuer:   issuer,
		TTL:      ttl,
		now:      time.Now,
	}, nil
}

// Authenticate compares email and password against the configured operator.
func (c *Credentials) Authenticate(email, password string) (User, error) {
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(c.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	if !emailOK || !passwordOK {
		return User{}, ErrInvalidCredentials
	}

	return User{ID: OperatorID, Email: email, Name: OperatorName}, nil
}

// IssueToken signs a session token for user.
func (c *Credentials) IssueToken(user User) (token string, expiresAt time.Time, err error) {
	now := c.now()
	expiresAt = now.Add(c.TTL)

	claims := Claims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    c.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// VerifyToken parses and validates a session token and returns its user.
func (c *Credentials) VerifyToken(token string) (User, error) {
	if token == "" {
		return User{}, ErrInvalidToken
	}

	// Expiry is checked below against our own clock.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return User{}, ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(c.now(), true) {
		return User{}, ErrInvalidToken
	}
	if claims.Issuer != c.Issuer || claims.Subject != OperatorID || claims.Email != c.Email {
		return User{}, ErrInvalidToken
	}

	return User{ID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}
