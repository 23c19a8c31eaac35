package client

import "fmt"

// ConfigError reports missing or unusable configuration, such as an absent
// API key. It fails the call, not the process.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// ValidationError reports a request field that violates its constraint.
// The field name uses the upstream parameter spelling (q, lang, max, ...).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// NetworkError wraps a transport-level failure: DNS, connection refused,
// timeout, or a dropped connection mid-body.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error connecting to GNews API: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UpstreamError carries a non-2xx response from the GNews API.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("GNews API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("GNews API error: status %d - %s", e.StatusCode, e.Message)
}

// ProtocolError reports a 2xx response whose body is not valid JSON.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string {
	return "malformed GNews API response: " + e.Err.Error()
}

func (e *ProtocolError) Unwrap() error { return e.Err }
