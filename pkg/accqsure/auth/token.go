package auth

import (
	"encoding/json"
	"time"
)

// expiryBuffer is the safety margin subtracted from a token's lifetime: a
// token inside this window of its expiry is treated as already expired so
// in-flight requests don't race the server-side cutoff.
const expiryBuffer = 60 * time.Second

// Token is a short-lived bearer credential. It carries the API endpoint it
// was minted for so the request layer always talks to the environment the
// token belongs to. Tokens are replaced, never mutated, once minted.
type Token struct {
	OrganizationID string `json:"organization_id"`
	AccessToken    string `json:"access_token"`
	ExpiresAt      int64  `json:"expires_at"`
	APIEndpoint    string `json:"api_endpoint"`
}

// Valid reports whether the token can still be used. A nil token is the "no
// token" sentinel and is always invalid.
func (t *Token) Valid() bool {
	if t == nil {
		return false
	}
	return time.Unix(t.ExpiresAt, 0).After(time.Now().Add(expiryBuffer))
}

// ToJSON serializes the token for the on-disk cache.
func (t *Token) ToJSON() ([]byte, error) {
	return json.Marshal(t)
}

// TokenFromJSON deserializes a cached token.
func TokenFromJSON(data []byte) (*Token, error) {
	var t Token
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
