package auth

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/afero"
)

// Key is a long-lived private-key credential used to mint short-lived access
// tokens. It is loaded once, either from an explicit struct or from a JSON
// credentials file, and treated as immutable afterwards.
type Key struct {
	OrganizationID string `json:"organization_id"`
	ClientID       string `json:"client_id"`
	KeyID          string `json:"key_id"`
	AuthURI        string `json:"auth_uri"`
	PrivateKey     string `json:"private_key"`
}

// Validate checks that every credential field is populated and that the auth
// URI is an absolute URL.
func (k *Key) Validate() error {
	return validation.ValidateStruct(k,
		validation.Field(&k.OrganizationID, validation.Required),
		validation.Field(&k.ClientID, validation.Required),
		validation.Field(&k.KeyID, validation.Required),
		validation.Field(&k.AuthURI, validation.Required, is.URL),
		validation.Field(&k.PrivateKey, validation.Required),
	)
}

// LoadKey reads a credential from a JSON file. A missing or unreadable file
// is a ConfigurationError naming the path; the credential source is required
// at the point a new token is needed.
func LoadKey(fs afero.Fs, path string) (*Key, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigurationError{
				Message: fmt.Sprintf("credentials file %s not found", path),
				Err:     err,
			}
		}
		return nil, &ConfigurationError{
			Message: fmt.Sprintf("error reading credentials file %s", path),
			Err:     err,
		}
	}

	var key Key
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, &ConfigurationError{
			Message: fmt.Sprintf("credentials file %s is not valid JSON", path),
			Err:     err,
		}
	}

	return &key, nil
}

// deriveAPIEndpoint returns the API base URL for tokens minted against the
// given auth URI: the URI's scheme and host with the path stripped.
func deriveAPIEndpoint(authURI string) string {
	u, err := url.Parse(authURI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
