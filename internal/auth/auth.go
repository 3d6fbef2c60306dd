package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCredentials = errors.New("invalid username or password")

// Authenticator guards the staff dashboard endpoints with a single
// configured credential. With no JWT secret configured it is disabled
// and the middleware lets everything through (local development).
type Authenticator struct {
	username     string
	passwordHash string
	secret       []byte
	ttl          time.Duration
}

func New(username, passwordHash, secret string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authenticator{username: username, passwordHash: passwordHash, secret: []byte(secret), ttl: ttl}
}

func (a *Authenticator) Enabled() bool { return len(a.secret) > 0 }

// Login checks the credential pair and issues an HS256 token.
func (a *Authenticator) Login(username, password string) (string, time.Time, error) {
	if !a.Enabled() {
		return "", time.Time{}, errors.New("auth is not configured")
	}
	if username != a.username {
		return "", time.Time{}, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)); err != nil {
		return "", time.Time{}, ErrBadCredentials
	}

	expires := time.Now().Add(a.ttl)
	claims := jwt.MapClaims{
		"sub":  username,
		"role": "staff",
		"exp":  expires.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

func (a *Authenticator) validate(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}

// Middleware enforces a Bearer token on staff-only routes.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			return
		}
		if err := a.validate(parts[1]); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}
