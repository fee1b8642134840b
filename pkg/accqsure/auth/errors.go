package auth

import "fmt"

// ConfigurationError indicates a missing or invalid credential source, such
// as an absent credentials file or a key with empty fields.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// UnsupportedAlgorithmError is returned when a signature algorithm other
// than EdDSA is requested.
type UnsupportedAlgorithmError struct {
	Algorithm string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported algorithm: %s", e.Algorithm)
}

// SigningError wraps failures from key parsing or the signature backend so
// raw crypto errors never cross the package boundary.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("error signing client JWT: %v", e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// AuthenticationError indicates a failed token exchange: a non-2xx response
// from the authorization server, a malformed response body, or a response
// missing required token fields.
type AuthenticationError struct {
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AuthenticationError) Unwrap() error { return e.Err }
