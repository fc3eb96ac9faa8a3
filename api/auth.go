package api

import (
	"errors"
	"strings"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"

	contentTypeJSON = "application/json"
	authScheme      = "Bearer"
)

// AuthProvider turns an API key into the header set attached to every
// outbound request. It is stateless beyond the key it holds and never
// reveals the key in errors or string output.
type AuthProvider struct {
	apiKey string
}

// NewAuthProvider builds a provider for the given API key.
func NewAuthProvider(apiKey string) (*AuthProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key must be set")
	}
	return &AuthProvider{apiKey: apiKey}, nil
}

// Headers returns the headers required on every outbound request.
func (p *AuthProvider) Headers() map[string]string {
	return map[string]string{
		headerAuthorization: authScheme + " " + p.apiKey,
		headerContentType:   contentTypeJSON,
	}
}

// String identifies the provider without exposing the key.
func (p *AuthProvider) String() string {
	return "AuthProvider(<redacted>)"
}
