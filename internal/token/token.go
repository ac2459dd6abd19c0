// Package token issues and verifies the JWT access/refresh token pairs used
// by the auth endpoints. Both token kinds are HS256-signed with the same
// secret and distinguished by a "typ" claim, so a refresh token can never be
// replayed as an access token.
package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pkordes/panda-market/internal/domain"
)

// Token lifetimes. Refresh tokens additionally require a matching database
// row, so revocation does not depend on expiry alone.
const (
	AccessTTL  = time.Hour
	RefreshTTL = 14 * 24 * time.Hour
)

const (
	typAccess  = "access"
	typRefresh = "refresh"
)

// claims is the JWT payload: registered claims plus the token kind.
type claims struct {
	jwt.RegisteredClaims
	Typ string `json:"typ"`
}

// Manager signs and parses token pairs.
type Manager struct {
	secret []byte
	now    func() time.Time
}

// NewManager constructs a Manager signing with secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), now: time.Now}
}

// IssuePair returns a fresh access/refresh token pair for the user.
func (m *Manager) IssuePair(userID int64) (access, refresh string, err error) {
	access, err = m.sign(userID, typAccess, AccessTTL)
	if err != nil {
		return "", "", fmt.Errorf("token.Manager.IssuePair: %w", err)
	}
	refresh, err = m.sign(userID, typRefresh, RefreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("token.Manager.IssuePair: %w", err)
	}
	return access, refresh, nil
}

// ParseAccess verifies an access token and returns the user ID it was
// issued to. Any failure — bad signature, expiry, wrong kind — maps to
// domain.ErrUnauthorized.
func (m *Manager) ParseAccess(raw string) (int64, error) {
	return m.parse(raw, typAccess)
}

// ParseRefresh is ParseAccess for refresh tokens.
func (m *Manager) ParseRefresh(raw string) (int64, error) {
	return m.parse(raw, typRefresh)
}

func (m *Manager) sign(userID int64, typ string, ttl time.Duration) (string, error) {
	now := m.now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Typ: typ,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

func (m *Manager) parse(raw, wantTyp string) (int64, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil {
		return 0, fmt.Errorf("token: %w", domain.ErrUnauthorized)
	}
	if c.Typ != wantTyp {
		return 0, fmt.Errorf("token: wrong token type: %w", domain.ErrUnauthorized)
	}
	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("token: bad subject: %w", domain.ErrUnauthorized)
	}
	return userID, nil
}
