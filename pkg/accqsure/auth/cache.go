package auth

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// tokenFileMode keeps the cached bearer token readable by the owner only.
const tokenFileMode = 0o600

// loadCachedToken reads a token from the cache file. A missing file is a
// cache miss, not an error, and so is a corrupt one: the caller falls back
// to minting a new token either way.
func loadCachedToken(fs afero.Fs, path string) *Token {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil
	}
	token, err := TokenFromJSON(data)
	if err != nil {
		return nil
	}
	return token
}

// saveToken persists a token to the cache file with owner-only permissions,
// creating parent directories as needed. The write goes to a temp file which
// is renamed into place so a concurrent reader never sees a partial token.
func saveToken(fs afero.Fs, path string, token *Token) error {
	data, err := token.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize token: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create token cache directory %s: %w", dir, err)
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, tokenFileMode); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}
	// WriteFile's mode is subject to the umask; chmod explicitly.
	if err := fs.Chmod(tmp, os.FileMode(tokenFileMode)); err != nil {
		return fmt.Errorf("failed to set token cache permissions: %w", err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move token cache into place: %w", err)
	}

	return nil
}
