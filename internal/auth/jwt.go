package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Token kinds carried in Claims.Kind. Refresh tokens are only good for
// getting a new pair, never for calling the API.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims holds the JWT payload. Sessions are name-only: the token proves the
// bearer picked this player name, nothing more.
type Claims struct {
	Player string `json:"player"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

// JWTManager handles token creation and validation.
type JWTManager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewJWTManager creates a JWTManager with the given secret.
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{
		secret:        []byte(secret),
		accessExpiry:  1 * time.Hour,
		refreshExpiry: 7 * 24 * time.Hour,
	}
}

func (m *JWTManager) generate(player, kind string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Player: player,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   player,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// GenerateAccessToken creates a short-lived access token for the given player.
func (m *JWTManager) GenerateAccessToken(player string) (string, error) {
	return m.generate(player, KindAccess, m.accessExpiry)
}

// GenerateRefreshToken creates a long-lived refresh token.
func (m *JWTManager) GenerateRefreshToken(player string) (string, error) {
	return m.generate(player, KindRefresh, m.refreshExpiry)
}

// ValidateToken parses and validates a JWT string, returning the claims.
func (m *JWTManager) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Player == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateKind is ValidateToken that also requires the given token kind.
func (m *JWTManager) ValidateKind(tokenStr, kind string) (*Claims, error) {
	claims, err := m.ValidateToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Kind != kind {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenPair holds an access and refresh token.
type TokenPair struct {
	Player       string `json:"player"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}

// GenerateTokenPair creates both tokens for a player.
func (m *JWTManager) GenerateTokenPair(player string) (*TokenPair, error) {
	access, err := m.GenerateAccessToken(player)
	if err != nil {
		return nil, err
	}
	refresh, err := m.GenerateRefreshToken(player)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		Player:       player,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(m.accessExpiry.Seconds()),
	}, nil
}
