package suggestions

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

const (
	credentialPrefix = "AIza"
	credentialLength = 39

	probePrompt = "Hello"
)

var (
	// ErrInvalidCredential reports a credential that fails the local format
	// check and would be rejected before reaching the remote service.
	ErrInvalidCredential = errors.New("invalid credential format")
	// ErrRemoteService marks failures coming from the remote model service,
	// as opposed to local validation.
	ErrRemoteService = errors.New("remote suggestion service error")
)

// CredentialStatus classifies the outcome of a live credential check.
type CredentialStatus string

const (
	CredentialValid        CredentialStatus = "valid"
	CredentialBadFormat    CredentialStatus = "format"
	CredentialUnauthorized CredentialStatus = "unauthorized"
	CredentialRateLimited  CredentialStatus = "rate-limited"
	CredentialNetwork      CredentialStatus = "network"
	CredentialUnknown      CredentialStatus = "unknown"
)

// ValidateCredential performs the offline format check. Gemini API keys
// start with "AIza" and are exactly 39 characters long.
func ValidateCredential(key string) error {
	key = strings.TrimSpace(key)
	if !strings.HasPrefix(key, credentialPrefix) || len(key) != credentialLength {
		return ErrInvalidCredential
	}
	return nil
}

// CheckCredential verifies the credential against the live service with a
// trivial prompt. The returned status classifies the failure; err carries
// the underlying cause for statuses other than valid and format.
func CheckCredential(ctx context.Context, apiKey string) (CredentialStatus, error) {
	if err := ValidateCredential(apiKey); err != nil {
		return CredentialBadFormat, err
	}

	client, err := NewGeminiClient(ctx, apiKey, "")
	if err != nil {
		return CredentialUnknown, err
	}

	if _, err := client.GenerateContent(ctx, probePrompt); err != nil {
		return classifyProbeError(err), fmt.Errorf("%w: %w", ErrRemoteService, err)
	}

	return CredentialValid, nil
}

func classifyProbeError(err error) CredentialStatus {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return CredentialNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") && (strings.Contains(msg, "invalid") || strings.Contains(msg, "expired")):
		return CredentialUnauthorized
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") ||
		strings.Contains(msg, "unauthenticated") || strings.Contains(msg, "permission"):
		return CredentialUnauthorized
	case strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "exhausted"):
		return CredentialRateLimited
	case strings.Contains(msg, "connection") || strings.Contains(msg, "no such host") || strings.Contains(msg, "timeout"):
		return CredentialNetwork
	}

	return CredentialUnknown
}
