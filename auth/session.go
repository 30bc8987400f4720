package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Charchl1/Blog-Project/config"
)

// sessionClaims is the payload of the signed cookie token. Only the session
// ID travels to the client; user data stays server-side in the sessions table.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieManager signs, verifies and transports the session token via an
// HttpOnly cookie.
type CookieManager struct {
	cfg *config.SessionConfig
}

// NewCookieManager creates a CookieManager from the session configuration.
func NewCookieManager(cfg *config.SessionConfig) *CookieManager {
	return &CookieManager{cfg: cfg}
}

// EncodeToken wraps a session token in a signed JWT.
func (cm *CookieManager) EncodeToken(token uuid.UUID, expiresAt time.Time) (string, error) {
	claims := &sessionClaims{
		SessionID: token.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "blog-project",
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cm.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// DecodeToken verifies a signed cookie value and returns the session token.
func (cm *CookieManager) DecodeToken(signed string) (uuid.UUID, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cm.cfg.Secret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, errors.New("session token is invalid")
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id claim: %w", err)
	}
	return sessionID, nil
}

// SetCookie attaches the signed session token to the response.
func (cm *CookieManager) SetCookie(w http.ResponseWriter, session *Session) error {
	signed, err := cm.EncodeToken(session.Token, session.ExpiresAt)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cm.cfg.CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   cm.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie.
func (cm *CookieManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cm.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cm.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadToken extracts and verifies the session token from the request cookie.
// Any failure resolves to uuid.Nil and an error; callers treat that as an
// anonymous request.
func (cm *CookieManager) ReadToken(r *http.Request) (uuid.UUID, error) {
	cookie, err := r.Cookie(cm.cfg.CookieName)
	if err != nil {
		return uuid.Nil, err
	}
	return cm.DecodeToken(cookie.Value)
}
