package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AlgorithmEdDSA is the only signature algorithm the authorization server
// accepts for client assertions.
const AlgorithmEdDSA = "EdDSA"

// Base64ToBase64URL converts a standard base64 string to the unpadded
// base64url alphabet used in compact JWT serialization.
func Base64ToBase64URL(s string) string {
	s = strings.ReplaceAll(s, "+", "-")
	s = strings.ReplaceAll(s, "/", "_")
	return strings.TrimRight(s, "=")
}

// SignAssertion builds and signs a compact JWT client assertion. The key is
// parsed before the algorithm check so bad key material surfaces as a
// SigningError and an unknown algorithm as UnsupportedAlgorithmError.
func SignAssertion(
	alg string,
	keyID string,
	audience string,
	issuer string,
	subject string,
	expiresAt time.Time,
	extraClaims map[string]interface{},
	privateKeyPEM []byte,
) (string, error) {
	key, err := jwt.ParseEdPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return "", &SigningError{Err: err}
	}

	if alg != AlgorithmEdDSA {
		return "", &UnsupportedAlgorithmError{Algorithm: alg}
	}

	claims := jwt.MapClaims{
		"iss": issuer,
		"sub": subject,
		"aud": audience,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	for k, v := range extraClaims {
		claims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["kid"] = keyID

	signed, err := token.SignedString(key)
	if err != nil {
		return "", &SigningError{Err: err}
	}

	return signed, nil
}
