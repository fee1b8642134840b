package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// assertionLifetime bounds the validity of the signed client assertion; the
// authorization server rejects assertions that outlive this window anyway.
const assertionLifetime = 5 * time.Minute

type tokenRequest struct {
	GrantType string `json:"grant_type"`
	Assertion string `json:"assertion"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// exchangeToken signs a client assertion for the credential and trades it at
// the authorization endpoint for a bearer token.
func (a *Auth) exchangeToken(ctx context.Context, key *Key) (*Token, error) {
	assertion, err := SignAssertion(
		AlgorithmEdDSA,
		key.KeyID,
		key.AuthURI,
		key.ClientID,
		key.ClientID,
		time.Now().Add(assertionLifetime),
		map[string]interface{}{"organization_id": key.OrganizationID},
		[]byte(key.PrivateKey),
	)
	if err != nil {
		return nil, &AuthenticationError{Message: "error signing client JWT", Err: err}
	}

	body, err := json.Marshal(tokenRequest{
		GrantType: "client_credentials",
		Assertion: assertion,
	})
	if err != nil {
		return nil, &AuthenticationError{Message: "error encoding token request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, key.AuthURI, bytes.NewReader(body))
	if err != nil {
		return nil, &AuthenticationError{Message: "error building token request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	a.logger.Debug("exchanging client assertion for access token", "auth_uri", key.AuthURI)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &AuthenticationError{Message: "error requesting access token", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthenticationError{Message: "error reading token response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AuthenticationError{
			Message: fmt.Sprintf("token exchange failed (status %d): %s", resp.StatusCode, string(respBody)),
		}
	}

	var tr tokenResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return nil, &AuthenticationError{Message: "malformed token response", Err: err}
	}

	if tr.AccessToken == "" {
		return nil, &AuthenticationError{Message: "token response missing access_token"}
	}

	expiresAt := tr.ExpiresAt
	if expiresAt == 0 && tr.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second).Unix()
	}

	endpoint := a.apiEndpoint
	if endpoint == "" {
		endpoint = deriveAPIEndpoint(key.AuthURI)
	}

	return &Token{
		OrganizationID: key.OrganizationID,
		AccessToken:    tr.AccessToken,
		ExpiresAt:      expiresAt,
		APIEndpoint:    endpoint,
	}, nil
}
