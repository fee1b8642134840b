package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generateKeyPEM creates a throwaway ed25519 key for signing tests.
func generateKeyPEM(t *testing.T) (ed25519.PublicKey, []byte) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)

	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: der,
	})
	return pub, pemBytes
}

func TestBase64ToBase64URL(t *testing.T) {
	assert.Equal(t, "ab-cd_ef", Base64ToBase64URL("ab+cd/ef"))
	assert.Equal(t, "abcd", Base64ToBase64URL("abcd=="))
	assert.Equal(t, "", Base64ToBase64URL(""))
	assert.Equal(t, "plain", Base64ToBase64URL("plain"))
}

func TestSignAssertion(t *testing.T) {
	pub, pemBytes := generateKeyPEM(t)
	expiresAt := time.Now().Add(5 * time.Minute)

	signed, err := SignAssertion(
		AlgorithmEdDSA,
		"key-1",
		"https://auth.example.com/token",
		"client-1",
		"client-1",
		expiresAt,
		map[string]interface{}{"organization_id": "org-1"},
		pemBytes,
	)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return pub, nil
	}, jwt.WithValidMethods([]string{AlgorithmEdDSA}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, "key-1", parsed.Header["kid"])

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "client-1", claims["iss"])
	assert.Equal(t, "client-1", claims["sub"])
	assert.Equal(t, "https://auth.example.com/token", claims["aud"])
	assert.Equal(t, "org-1", claims["organization_id"])
	assert.Equal(t, float64(expiresAt.Unix()), claims["exp"])
}

func TestSignAssertionBadKey(t *testing.T) {
	_, err := SignAssertion(
		AlgorithmEdDSA,
		"key-1",
		"https://auth.example.com/token",
		"client-1",
		"client-1",
		time.Now().Add(time.Minute),
		nil,
		[]byte("not a pem key"),
	)
	require.Error(t, err)

	var signErr *SigningError
	require.ErrorAs(t, err, &signErr)
}

func TestSignAssertionUnsupportedAlgorithm(t *testing.T) {
	_, pemBytes := generateKeyPEM(t)

	_, err := SignAssertion(
		"HS256",
		"key-1",
		"https://auth.example.com/token",
		"client-1",
		"client-1",
		time.Now().Add(time.Minute),
		nil,
		pemBytes,
	)
	require.Error(t, err)

	var algErr *UnsupportedAlgorithmError
	require.ErrorAs(t, err, &algErr)
	assert.Equal(t, "HS256", algErr.Algorithm)
	assert.Equal(t, "unsupported algorithm: HS256", err.Error())
}
