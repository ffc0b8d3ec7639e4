package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"secaware/internal/model"
)

// SessionTTL is the process-defined session expiry.
const SessionTTL = 12 * time.Hour

// SessionClaims carries the identity bound to a session token. The role is a
// snapshot taken at login time and is never re-derived mid-session; admin-gated
// operations re-read the stored role instead of trusting it.
type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the request-scoped identity extracted from a verified session.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

// IsAdmin reports whether the session role snapshot is admin.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// Identity converts verified claims into a request identity.
func (c *SessionClaims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

// TokenService signs and verifies session tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Generate issues a signed session token for the user. The session id (JTI)
// is returned separately so it can be registered in the session store.
func (s *TokenService) Generate(user *model.User) (sessionID, token string, err error) {
	sessionID = uuid.New().String()
	now := time.Now()
	claims := &SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = tokenObj.SignedString(s.secret)
	return sessionID, token, err
}

// Parse validates a session token and returns its claims.
func (s *TokenService) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
