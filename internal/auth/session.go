package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/VictorRuuan/Finance-Control/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrUnauthenticated is returned when a token is absent, forged,
// expired or revoked. Callers must treat all four the same way.
var ErrUnauthenticated = errors.New("unauthenticated")

// Claims is the signed token payload. The registered ID (jti) is the
// session row key, so a signature alone is never enough to stay
// logged in after logout.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates login tokens backed by a
// revocable session row.
type SessionManager struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(db *gorm.DB, secret string, expireHours int) *SessionManager {
	if expireHours <= 0 {
		expireHours = 24
	}
	return &SessionManager{
		db:     db,
		secret: []byte(secret),
		ttl:    time.Duration(expireHours) * time.Hour,
	}
}

// Login binds a new session to userID and returns the signed token.
func (m *SessionManager) Login(userID uint) (string, error) {
	now := time.Now()
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.db.Create(&sess).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Resolve maps a token back to the owning user id. A bad token,
// signature, expiry, revocation or a missing session row yields
// ErrUnauthenticated; a failed session lookup keeps its own error.
func (m *SessionManager) Resolve(tokenStr string) (uint, error) {
	claims, err := m.parse(tokenStr)
	if err != nil {
		return 0, ErrUnauthenticated
	}

	var sess models.Session
	if err := m.db.First(&sess, "id = ?", claims.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUnauthenticated
		}
		return 0, fmt.Errorf("load session: %w", err)
	}
	if sess.Revoked || time.Now().After(sess.ExpiresAt) || sess.UserID != claims.UserID {
		return 0, ErrUnauthenticated
	}
	return sess.UserID, nil
}

// Logout revokes the token's session. Invalid tokens are a no-op.
func (m *SessionManager) Logout(tokenStr string) error {
	claims, err := m.parse(tokenStr)
	if err != nil {
		return nil
	}
	if err := m.db.Model(&models.Session{}).
		Where("id = ?", claims.ID).
		Update("revoked", true).Error; err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// PurgeExpired deletes sessions past their expiry. Housekeeping only,
// Resolve rejects expired rows either way.
func (m *SessionManager) PurgeExpired() error {
	if err := m.db.
		Where("expires_at < ?", time.Now()).
		Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	return nil
}

func (m *SessionManager) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
