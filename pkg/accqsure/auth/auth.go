// Package auth implements the token lifecycle for the AccQsure API: loading
// a private-key credential, signing a JWT client assertion, exchanging it
// for a bearer token, and caching that token on disk between invocations.
package auth

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
)

const tokenFileName = "token.json"

// Options configures an Auth coordinator.
type Options struct {
	// ConfigDir holds the token cache unless TokenFilePath overrides it.
	ConfigDir string

	// CredentialsFile is the JSON credential read when Key is nil.
	CredentialsFile string

	// TokenFilePath overrides the default ConfigDir/token.json cache path.
	TokenFilePath string

	// Key is an explicit in-memory credential; when set the credentials
	// file is never read.
	Key *Key

	// APIEndpoint overrides the API base URL carried by minted tokens.
	// When empty the endpoint is derived from the credential's auth URI.
	APIEndpoint string

	HTTPClient *http.Client
	Fs         afero.Fs
	Logger     hclog.Logger
}

// Auth coordinates the token lifecycle: it answers GetToken from memory when
// possible, falls back to the on-disk cache, and only then drives a fresh
// exchange. Two concurrent callers under an expired token may both mint; the
// last cache write wins and callers needing at-most-one-mint serialize
// externally.
type Auth struct {
	credentialsFile string
	tokenFilePath   string
	key             *Key
	apiEndpoint     string

	token *Token

	httpClient *http.Client
	fs         afero.Fs
	logger     hclog.Logger
}

// New creates an Auth coordinator. Missing credentials are not an error
// here; they become one the first time a new token has to be minted.
func New(opts Options) *Auth {
	tokenFilePath := opts.TokenFilePath
	if tokenFilePath == "" {
		tokenFilePath = filepath.Join(opts.ConfigDir, tokenFileName)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Auth{
		credentialsFile: opts.CredentialsFile,
		tokenFilePath:   tokenFilePath,
		key:             opts.Key,
		apiEndpoint:     opts.APIEndpoint,
		httpClient:      httpClient,
		fs:              fs,
		logger:          logger.Named("auth"),
	}
}

// GetToken returns a usable bearer token, in order of preference: the
// in-memory token, a still-valid cached token from disk, or a freshly minted
// one.
func (a *Auth) GetToken(ctx context.Context) (*Token, error) {
	if a.token.Valid() {
		return a.token, nil
	}

	if cached := loadCachedToken(a.fs, a.tokenFilePath); cached.Valid() {
		a.logger.Debug("adopting cached token", "path", a.tokenFilePath)
		a.token = cached
		return a.token, nil
	}

	return a.GetNewToken(ctx)
}

// GetNewToken forces a fresh token exchange, replacing the in-memory token
// and the disk cache. Credential resolution and exchange failures propagate
// as typed errors; there is no retry at this layer.
func (a *Auth) GetNewToken(ctx context.Context) (*Token, error) {
	key := a.key
	if key == nil {
		loaded, err := LoadKey(a.fs, a.credentialsFile)
		if err != nil {
			return nil, err
		}
		key = loaded
	}

	if err := key.Validate(); err != nil {
		return nil, &ConfigurationError{Message: "invalid credential", Err: err}
	}

	token, err := a.exchangeToken(ctx, key)
	if err != nil {
		return nil, err
	}

	a.key = key
	a.token = token

	if err := saveToken(a.fs, a.tokenFilePath, token); err != nil {
		// A read-only cache location shouldn't break authentication.
		a.logger.Warn("failed to cache token", "path", a.tokenFilePath, "error", err)
	}

	return token, nil
}
