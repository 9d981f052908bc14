package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "iothub/internal/shared/errors"
)

func testKeyPEM(t *testing.T) []byte {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

func newTestSigner(t *testing.T) *Signer {
	t.Helper()
	signer, err := NewSigner(testKeyPEM(t), SignerConfig{})
	require.NoError(t, err)
	return signer
}

func TestNewSigner_InvalidPEM(t *testing.T) {
	_, err := NewSigner([]byte("not a key"), SignerConfig{})
	assert.Error(t, err)
}

func TestSigner_SessionToken(t *testing.T) {
	signer := newTestSigner(t)

	token, err := signer.IssueSessionToken("alice@example.com")
	require.NoError(t, err)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.False(t, claims.IsDevice)
	assert.False(t, claims.IsRefresh)

	expired, err := signer.IsExpired(token)
	require.NoError(t, err)
	assert.False(t, expired)

	subject, err := signer.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestSigner_DeviceAccessToken(t *testing.T) {
	signer := newTestSigner(t)

	token, err := signer.IssueDeviceAccessToken("alice@example.com", "dev-uuid-1", 7, 42)
	require.NoError(t, err)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.IsDevice)
	assert.Equal(t, "dev-uuid-1", claims.DeviceUUID)
	assert.Equal(t, uint(7), claims.DeviceID)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Subject)

	uuid, err := signer.ExtractDeviceUUID(token)
	require.NoError(t, err)
	assert.Equal(t, "dev-uuid-1", uuid)
}

func TestSigner_ExtractDeviceUUID_SessionToken(t *testing.T) {
	signer := newTestSigner(t)

	token, err := signer.IssueSessionToken("alice@example.com")
	require.NoError(t, err)

	_, err = signer.ExtractDeviceUUID(token)
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeNotDeviceToken, appErr.Type)
}

func TestSigner_Verify_Garbage(t *testing.T) {
	signer := newTestSigner(t)

	_, err := signer.Verify("not.a.token")
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeInvalidToken, appErr.Type)
}

func TestSigner_Verify_WrongKey(t *testing.T) {
	signer := newTestSigner(t)
	other := newTestSigner(t)

	token, err := other.IssueSessionToken("alice@example.com")
	require.NoError(t, err)

	_, err = signer.Verify(token)
	assert.Error(t, err)
}

func TestSigner_Verify_AlgNone(t *testing.T) {
	signer := newTestSigner(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "mallory@example.com"},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = signer.Verify(token)
	assert.Error(t, err)
}

// Expired session tokens still verify; expiry is reported separately so the
// device refresh flow can read claims out of an expired access token.
func TestSigner_ExpiredTokenStillVerifies(t *testing.T) {
	pemBytes := testKeyPEM(t)
	signer, err := NewSigner(pemBytes, SignerConfig{})
	require.NoError(t, err)

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	require.NoError(t, err)
	expired := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	token, err := expired.SignedString(key)
	require.NoError(t, err)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)

	isExpired, err := signer.IsExpired(token)
	require.NoError(t, err)
	assert.True(t, isExpired)
}

// Device access tokens never expire, whatever their exp claim says.
func TestSigner_IsExpired_DeviceExemption(t *testing.T) {
	pemBytes := testKeyPEM(t)
	signer, err := NewSigner(pemBytes, SignerConfig{})
	require.NoError(t, err)

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	require.NoError(t, err)
	deviceToken := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		IsDevice:   true,
		DeviceUUID: "dev-uuid-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	})
	token, err := deviceToken.SignedString(key)
	require.NoError(t, err)

	expired, err := signer.IsExpired(token)
	require.NoError(t, err)
	assert.False(t, expired)
}

func TestSigner_IsExpired_MissingExpClaim(t *testing.T) {
	pemBytes := testKeyPEM(t)
	signer, err := NewSigner(pemBytes, SignerConfig{})
	require.NoError(t, err)

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	require.NoError(t, err)
	noExp := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice@example.com"},
	})
	token, err := noExp.SignedString(key)
	require.NoError(t, err)

	expired, err := signer.IsExpired(token)
	require.NoError(t, err)
	assert.True(t, expired)
}

func TestSigner_IsRefreshTokenValid(t *testing.T) {
	signer := newTestSigner(t)

	refresh, err := signer.IssueDeviceRefreshToken("alice@example.com")
	require.NoError(t, err)
	assert.True(t, signer.IsRefreshTokenValid(refresh))

	session, err := signer.IssueSessionToken("alice@example.com")
	require.NoError(t, err)
	assert.False(t, signer.IsRefreshTokenValid(session), "session token is not a refresh token")

	access, err := signer.IssueDeviceAccessToken("alice@example.com", "dev-uuid-1", 7, 42)
	require.NoError(t, err)
	assert.False(t, signer.IsRefreshTokenValid(access), "access token is not a refresh token")

	assert.False(t, signer.IsRefreshTokenValid("garbage"))
}

// A refresh token marked isDevice does not get the device expiry exemption.
func TestSigner_IsRefreshTokenValid_ExpiredDeviceMarked(t *testing.T) {
	pemBytes := testKeyPEM(t)
	signer, err := NewSigner(pemBytes, SignerConfig{})
	require.NoError(t, err)

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	require.NoError(t, err)
	forged := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		IsRefresh: true,
		IsDevice:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	token, err := forged.SignedString(key)
	require.NoError(t, err)

	assert.False(t, signer.IsRefreshTokenValid(token))
}
