package runtime

import (
	"context"
	"errors"
	"time"
)

// Errors for request validation and backend selection.
var (
	// ErrMissingLanguage is returned when a request has no language.
	ErrMissingLanguage = errors.New("language is required")

	// ErrBackendNotFound is returned when no backend is registered for a kind.
	ErrBackendNotFound = errors.New("backend not found")
)

// BackendKind identifies a backend implementation.
type BackendKind string

// Known backend kinds.
const (
	BackendRemote BackendKind = "remote"
	BackendLocal  BackendKind = "local"
)

// Readiness describes how mature a backend is.
type Readiness string

// Readiness levels.
const (
	ReadinessStable Readiness = "stable"
	ReadinessBeta   Readiness = "beta"
)

// Backend executes code snippets.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Execute must honor cancellation and deadlines.
// - Errors: a returned error means the snippet could not be run at all
// (transport failure, rejected request). A snippet that ran and failed is
// reported through ExecuteResult.Stderr, not as an error.
type Backend interface {
	// Kind returns the backend kind identifier.
	Kind() BackendKind

	// Execute runs a single snippet and waits for it to finish.
	Execute(ctx context.Context, req ExecuteRequest) (ExecuteResult, error)
}

// HostRule permits outbound traffic to a host. "*" matches any host.
type HostRule struct {
	Host string `json:"host"`
}

// NetworkPolicy lists the hosts a snippet may reach. The zero value denies
// all outbound traffic.
type NetworkPolicy struct {
	Allow []HostRule `json:"allow,omitempty"`
}

// AllowAllHosts returns a policy permitting outbound access to any host.
func AllowAllHosts() NetworkPolicy {
	return NetworkPolicy{Allow: []HostRule{{Host: "*"}}}
}

// AllowsAll reports whether the policy contains the wildcard rule.
func (p NetworkPolicy) AllowsAll() bool {
	for _, r := range p.Allow {
		if r.Host == "*" {
			return true
		}
	}
	return false
}

// ExecuteRequest describes one snippet execution.
type ExecuteRequest struct {
	// Language of the snippet, e.g. "python" or "typescript".
	Language string

	// Code is the source to run.
	Code string

	// RuntimeRevisionID selects the execution environment revision on
	// backends that support it. Opaque to this package.
	RuntimeRevisionID string

	// Env is exposed to the snippet as environment variables.
	Env map[string]string

	// Network controls outbound access.
	Network NetworkPolicy

	// Timeout bounds the execution. Zero leaves it to the backend.
	Timeout time.Duration
}

// Validate checks that required fields are set. Empty code is valid; the
// backend runs it like any other program.
func (r ExecuteRequest) Validate() error {
	if r.Language == "" {
		return ErrMissingLanguage
	}
	return nil
}

// BackendInfo describes the backend that produced a result.
type BackendInfo struct {
	Kind      BackendKind
	Readiness Readiness
	Details   map[string]any
}

// ExecuteResult is the outcome of a snippet that was run.
type ExecuteResult struct {
	// Stdout is the snippet's standard output.
	Stdout string

	// Stderr is the snippet's error output. Empty means the snippet
	// produced no error output.
	Stderr string

	// ExitCode is the process exit code reported by the backend.
	ExitCode int

	// Duration is the wall-clock execution time.
	Duration time.Duration

	// Backend identifies where the snippet ran.
	Backend BackendInfo
}
