package ai

import "errors"

// Sentinel failures produced by provider adapters. Each adapter maps its
// SDK's structured error onto this closed set at the boundary so the
// orchestrator never inspects provider-specific messages.
var (
	// ErrQuota marks temporary resource exhaustion (quota, rate limit).
	// It is never surfaced to callers - the fallback analyzer takes over.
	ErrQuota = errors.New("provider quota exhausted")

	// ErrInvalidCredentials marks a misconfigured or rejected API key.
	ErrInvalidCredentials = errors.New("invalid provider credentials")
)

// ValidationError means the caller supplied an unusable product payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError means the requested provider is unknown, not
// configured or rejected its credentials. Operator fault, must be visible.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// ProviderError wraps any unrecognized upstream AI failure. The raw
// diagnostic message is preserved for the caller.
type ProviderError struct {
	Provider string
	Message  string
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Message
}
