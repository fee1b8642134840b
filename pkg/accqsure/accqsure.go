// Package accqsure is a client SDK for the AccQsure document-inspection
// service. A Client authenticates with a private-key credential exchanged
// for short-lived bearer tokens and exposes typed managers for documents,
// document types, manifests, inspections, and text operations.
package accqsure

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/accqsure/accqsure-go/internal/version"
	"github.com/accqsure/accqsure-go/pkg/accqsure/auth"
)

const (
	defaultConfigDirName   = ".accqsure"
	defaultCredentialsFile = "credentials.json"

	envConfigDir       = "ACCQSURE_CONFIG_DIR"
	envCredentialsFile = "ACCQSURE_CREDENTIALS_FILE"
	envAPIEndpoint     = "ACCQSURE_API_ENDPOINT"

	apiVersionPrefix = "/v1"
)

// Config holds client configuration. The zero value is usable: paths fall
// back to environment variables and then to ~/.accqsure.
type Config struct {
	// ConfigDir holds the token cache. Default: $ACCQSURE_CONFIG_DIR,
	// then ~/.accqsure.
	ConfigDir string

	// CredentialsFile is the JSON private-key credential. Default:
	// $ACCQSURE_CREDENTIALS_FILE, then <ConfigDir>/credentials.json.
	CredentialsFile string

	// Key is an explicit in-memory credential, taking precedence over the
	// credentials file.
	Key *auth.Key

	// APIEndpoint overrides the API base URL carried by minted tokens.
	// Default: $ACCQSURE_API_ENDPOINT, then derived from the auth URI.
	APIEndpoint string

	// Timeout applies to non-streaming requests. Default: 60s. Streaming
	// and polling are bounded by their own budgets and the caller's
	// context.
	Timeout time.Duration

	HTTPClient *http.Client
	Fs         afero.Fs
	Logger     hclog.Logger
}

// Client is the AccQsure API client.
type Client struct {
	auth         *auth.Auth
	httpClient   *http.Client
	streamClient *http.Client
	logger       hclog.Logger
	userAgent    string

	Documents     *Documents
	DocumentTypes *DocumentTypes
	Manifests     *Manifests
	Inspections   *Inspections
	Text          *Text
}

// New creates a Client. Missing credentials do not fail here; they surface
// as a ConfigurationError the first time a token has to be minted.
func New(cfg Config) (*Client, error) {
	configDir := cfg.ConfigDir
	if configDir == "" {
		configDir = os.Getenv(envConfigDir)
	}
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		configDir = filepath.Join(home, defaultConfigDirName)
	}

	credentialsFile := cfg.CredentialsFile
	if credentialsFile == "" {
		credentialsFile = os.Getenv(envCredentialsFile)
	}
	if credentialsFile == "" {
		credentialsFile = filepath.Join(configDir, defaultCredentialsFile)
	}

	apiEndpoint := cfg.APIEndpoint
	if apiEndpoint == "" {
		apiEndpoint = os.Getenv(envAPIEndpoint)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		auth: auth.New(auth.Options{
			ConfigDir:       configDir,
			CredentialsFile: credentialsFile,
			Key:             cfg.Key,
			APIEndpoint:     apiEndpoint,
			HTTPClient:      httpClient,
			Fs:              cfg.Fs,
			Logger:          logger,
		}),
		httpClient: httpClient,
		// Streams can legitimately outlive any fixed timeout; they are
		// cancelled through the request context instead.
		streamClient: &http.Client{Transport: httpClient.Transport},
		logger:       logger.Named("accqsure"),
		userAgent:    "accqsure-go/" + version.Version,
	}

	c.Documents = &Documents{client: c}
	c.DocumentTypes = &DocumentTypes{client: c}
	c.Manifests = &Manifests{client: c}
	c.Inspections = &Inspections{client: c}
	c.Text = &Text{client: c}

	return c, nil
}

// Version returns the SDK version string.
func (c *Client) Version() string {
	return version.Version
}

// Auth exposes the token coordinator, mainly so callers can force a fresh
// mint with GetNewToken.
func (c *Client) Auth() *auth.Auth {
	return c.auth
}

// isDomainError reports whether err already carries one of the SDK's typed
// errors and should pass through unwrapped.
func isDomainError(err error) bool {
	var (
		configErr *auth.ConfigurationError
		authErr   *auth.AuthenticationError
		signErr   *auth.SigningError
		algErr    *auth.UnsupportedAlgorithmError
		apiErr    *APIError
	)
	return errors.As(err, &configErr) ||
		errors.As(err, &authErr) ||
		errors.As(err, &signErr) ||
		errors.As(err, &algErr) ||
		errors.As(err, &apiErr)
}

// contentTypeIsJSON matches application/json with optional parameters.
func contentTypeIsJSON(contentType string) bool {
	return strings.HasPrefix(contentType, "application/json")
}

// contentTypeIsText matches any text/* content type.
func contentTypeIsText(contentType string) bool {
	return strings.HasPrefix(contentType, "text/")
}
