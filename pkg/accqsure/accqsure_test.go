package accqsure

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accqsure/accqsure-go/pkg/accqsure/auth"
)

// newTestClient builds a client whose auth layer adopts a pre-seeded token
// cache pointing at the given endpoint, so tests never hit a real
// authorization server.
func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()

	fs := afero.NewMemMapFs()
	token := &auth.Token{
		OrganizationID: "org-1",
		AccessToken:    "test-token",
		ExpiresAt:      time.Now().Add(time.Hour).Unix(),
		APIEndpoint:    endpoint,
	}
	data, err := token.ToJSON()
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/config/token.json", data, 0o600))

	client, err := New(Config{
		ConfigDir: "/config",
		Fs:        fs,
	})
	require.NoError(t, err)
	return client
}

func TestNewDefaults(t *testing.T) {
	client := newTestClient(t, "https://api.example.com")

	assert.NotNil(t, client.Documents)
	assert.NotNil(t, client.DocumentTypes)
	assert.NotNil(t, client.Manifests)
	assert.NotNil(t, client.Inspections)
	assert.NotNil(t, client.Text)
	assert.NotNil(t, client.Auth())
	assert.NotEmpty(t, client.Version())
}

func TestContentTypeMatching(t *testing.T) {
	assert.True(t, contentTypeIsJSON("application/json"))
	assert.True(t, contentTypeIsJSON("application/json; charset=utf-8"))
	assert.False(t, contentTypeIsJSON("text/plain"))

	assert.True(t, contentTypeIsText("text/plain"))
	assert.True(t, contentTypeIsText("text/markdown; charset=utf-8"))
	assert.False(t, contentTypeIsText("application/octet-stream"))
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, isDomainError(&auth.ConfigurationError{Message: "x"}))
	assert.True(t, isDomainError(&auth.AuthenticationError{Message: "x"}))
	assert.True(t, isDomainError(&APIError{Status: 500}))
	assert.False(t, isDomainError(assert.AnError))
}
