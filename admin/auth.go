package admin

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the fixed shared value used when nothing is configured.
// This gate is not an authorization boundary: anyone with the deployment
// config holds the value. Real access control is a deliberate non-goal.
const DefaultPassword = "admin"

const tokenSubject = "operator"

var ErrInvalidToken = errors.New("invalid session token")

// Authenticator checks the shared admin password and issues short-lived JWT
// session tokens for the admin routes.
type Authenticator struct {
	password     string
	passwordHash string
	secret       []byte
	ttl          time.Duration
}

// NewAuthenticator builds an authenticator. passwordHash, when set, is a
// bcrypt hash that takes precedence over the plain password. An empty secret
// is replaced by a random one, which invalidates sessions on restart.
func NewAuthenticator(password, passwordHash string, secret []byte, ttl time.Duration) *Authenticator {
	if password == "" {
		password = DefaultPassword
	}
	if len(secret) == 0 {
		secret = make([]byte, 32)
		rand.Read(secret)
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Authenticator{
		password:     password,
		passwordHash: passwordHash,
		secret:       secret,
		ttl:          ttl,
	}
}

// Verify reports whether the submitted password matches the shared value.
func (a *Authenticator) Verify(password string) bool {
	if a.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(a.password), []byte(password)) == 1
}

// IssueToken returns a signed session token for a successful login.
func (a *Authenticator) IssueToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// ValidateToken checks a bearer token presented on an admin route.
func (a *Authenticator) ValidateToken(token string) error {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != tokenSubject {
		return ErrInvalidToken
	}
	return nil
}
