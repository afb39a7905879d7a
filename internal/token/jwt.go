package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/codepad-server/internal/model"
)

// Claims represents session JWT claims. The session id travels as the JWT ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id,omitempty"`
}

// JWT implements SessionManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

var _ model.SessionManager = (*JWT)(nil)

// NewJWT creates a new session token manager with the provided secret key and lifetime.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	return &JWT{secretKey: secretKey, ttl: ttl, now: time.Now}
}

// TTL returns the lifetime of generated tokens.
func (j *JWT) TTL() time.Duration {
	return j.ttl
}

// Generate signs a token carrying the session id and, when signed in, the user id.
func (j *JWT) Generate(session model.Session) (string, error) {
	if session.ID == "" {
		return "", fmt.Errorf("session id is empty")
	}

	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID: session.UserID,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Parse validates a session token and returns the session it carries.
func (j *JWT) Parse(tokenString string) (model.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return model.Session{}, fmt.Errorf("session token is invalid")
	}
	if claims.ID == "" {
		return model.Session{}, fmt.Errorf("session token has no session id")
	}

	return model.Session{ID: claims.ID, UserID: claims.UserID}, nil
}
