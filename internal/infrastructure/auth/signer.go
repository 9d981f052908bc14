package auth

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "iothub/internal/shared/errors"
)

// Claims is the claim set carried by every token this service issues.
// Session tokens only fill the registered claims; device access tokens add
// the device identity, refresh tokens add the refresh marker.
type Claims struct {
	UserID     uint   `json:"user_id,omitempty"`
	IsDevice   bool   `json:"isDevice,omitempty"`
	DeviceUUID string `json:"deviceUuid,omitempty"`
	DeviceID   uint   `json:"deviceId,omitempty"`
	IsRefresh  bool   `json:"isRefresh,omitempty"`
	jwt.RegisteredClaims
}

// SignerConfig holds token lifetimes in days.
type SignerConfig struct {
	SessionExpDays      int
	DeviceAccessExpDays int
	RefreshExpDays      int
}

// Signer issues and verifies RS256-signed tokens. It exclusively owns the
// private key for the process lifetime; the key is loaded once and never
// logged. Safe for concurrent use.
type Signer struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	cfg        SignerConfig
}

// NewSigner parses a PEM-encoded RSA private key (PKCS#1 or PKCS#8) and
// returns a Signer. Callers treat an error as fatal at startup.
func NewSigner(privateKeyPEM []byte, cfg SignerConfig) (*Signer, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}
	if cfg.SessionExpDays <= 0 {
		cfg.SessionExpDays = 10
	}
	if cfg.DeviceAccessExpDays <= 0 {
		cfg.DeviceAccessExpDays = 10
	}
	if cfg.RefreshExpDays <= 0 {
		cfg.RefreshExpDays = 14
	}
	return &Signer{
		privateKey: key,
		publicKey:  &key.PublicKey,
		cfg:        cfg,
	}, nil
}

// IssueSessionToken signs a session token for a human user.
func (s *Signer) IssueSessionToken(email string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.SessionExpDays) * 24 * time.Hour)),
		},
	}
	return s.sign(claims)
}

// IssueDeviceAccessToken signs an access token scoped to a paired device.
// The isDevice claim exempts the token from expiry checks in IsExpired.
func (s *Signer) IssueDeviceAccessToken(ownerEmail, deviceUUID string, deviceID, ownerID uint) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID:     ownerID,
		IsDevice:   true,
		DeviceUUID: deviceUUID,
		DeviceID:   deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerEmail,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.DeviceAccessExpDays) * 24 * time.Hour)),
		},
	}
	return s.sign(claims)
}

// IssueDeviceRefreshToken signs the long-lived refresh token handed out
// alongside a device access token.
func (s *Signer) IssueDeviceRefreshToken(ownerEmail string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		IsRefresh: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerEmail,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.RefreshExpDays) * 24 * time.Hour)),
		},
	}
	return s.sign(claims)
}

func (s *Signer) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and structure only. Expiry is policy, not
// validity: device access tokens outlive their exp claim, and the refresh
// flow must read claims out of an expired access token, so claim validation
// is applied by the callers that need it.
func (s *Signer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.publicKey, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, apperrors.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.NewInvalidTokenError()
	}
	return claims, nil
}

// IsExpired reports whether the token is past its expiry. Device access
// tokens are treated as non-expiring: firmware in the field holds tokens
// minted under this contract, so the isDevice claim short-circuits the
// check. An unverifiable token counts as expired.
func (s *Signer) IsExpired(tokenString string) (bool, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return true, err
	}
	return s.claimsExpired(claims, true), nil
}

// claimsExpired applies the expiry rule. deviceExempt selects between the
// access-token rule (device tokens never expire) and the generic rule used
// for refresh tokens.
func (s *Signer) claimsExpired(claims *Claims, deviceExempt bool) bool {
	if deviceExempt && claims.IsDevice {
		return false
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Before(time.Now().UTC())
}

// ExtractSubject returns the subject of a structurally valid token.
func (s *Signer) ExtractSubject(tokenString string) (string, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractDeviceUUID returns the device UUID of a device-scoped token. A
// token without the isDevice marker or the UUID claim is rejected.
func (s *Signer) ExtractDeviceUUID(tokenString string) (string, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return "", err
	}
	if !claims.IsDevice {
		return "", apperrors.NewNotDeviceTokenError()
	}
	if claims.DeviceUUID == "" {
		return "", apperrors.NewNotDeviceTokenError()
	}
	return claims.DeviceUUID, nil
}

// IsRefreshTokenValid reports whether the token is a live refresh token.
// Fails closed: anything unverifiable, unmarked or expired (by the generic
// rule, without the device exemption) is invalid.
func (s *Signer) IsRefreshTokenValid(tokenString string) bool {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return false
	}
	if !claims.IsRefresh {
		return false
	}
	return !s.claimsExpired(claims, false)
}
