// Package remote provides a backend that executes snippets on a remote
// sandboxed code-execution service.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/snippetexec/runtime"
)

// Errors for remote backend operations.
var (
	// ErrConnectionFailed is returned when the remote service cannot be reached.
	ErrConnectionFailed = errors.New("connection to remote service failed")

	// ErrRemoteExecutionFailed is returned when the service rejects a request
	// or replies with an unusable result.
	ErrRemoteExecutionFailed = errors.New("remote execution failed")

	// ErrClientNotConfigured is returned when no remote client is configured.
	ErrClientNotConfigured = errors.New("remote client not configured")
)

// Logger is the interface for logging.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// RemoteClient executes remote requests.
//
// Contract:
// - Concurrency: Implementations must be safe for concurrent use.
// - Context: Execute must honor cancellation and deadlines.
type RemoteClient interface {
	Execute(ctx context.Context, payload ExecutePayload) (ExecuteResultPayload, error)
}

// EndpointProvider optionally exposes the configured endpoint for diagnostics.
type EndpointProvider interface {
	Endpoint() string
}

// Config configures a remote backend.
type Config struct {
	// Client executes remote requests.
	// Required.
	Client RemoteClient

	// Logger is an optional logger for backend events.
	Logger Logger
}

// Backend executes snippets on a remote runtime service.
type Backend struct {
	client RemoteClient
	logger Logger
}

// New creates a new remote backend with the given configuration.
func New(cfg Config) *Backend {
	return &Backend{
		client: cfg.Client,
		logger: cfg.Logger,
	}
}

// Kind returns the backend kind identifier.
func (b *Backend) Kind() runtime.BackendKind {
	return runtime.BackendRemote
}

// Execute submits the snippet and waits for the service's reply. There is a
// single attempt per call; failures are returned to the caller as-is.
func (b *Backend) Execute(ctx context.Context, req runtime.ExecuteRequest) (runtime.ExecuteResult, error) {
	if err := req.Validate(); err != nil {
		return runtime.ExecuteResult{}, err
	}
	if b.client == nil {
		return runtime.ExecuteResult{}, ErrClientNotConfigured
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	start := time.Now()
	payload := buildExecutePayload(req)

	if b.logger != nil {
		b.logger.Debug("submitting snippet",
			"language", payload.Language,
			"runtime_revision_id", payload.RuntimeRevisionID,
			"bytes", len(payload.Code))
	}

	response, err := b.client.Execute(ctx, payload)
	if err != nil {
		return runtime.ExecuteResult{
			Duration: time.Since(start),
			Backend:  b.backendInfo(),
		}, err
	}
	if response.Stderr == nil {
		if b.logger != nil {
			b.logger.Warn("remote reply has no stderr field")
		}
		return runtime.ExecuteResult{
			Duration: time.Since(start),
			Backend:  b.backendInfo(),
		}, fmt.Errorf("%w: missing stderr", ErrRemoteExecutionFailed)
	}

	result := mapRemoteResult(response)
	if result.Duration == 0 {
		result.Duration = time.Since(start)
	}
	result.Backend = b.backendInfo()
	return result, nil
}

var _ runtime.Backend = (*Backend)(nil)

// ExecutePayload is the wire request to the execution service.
type ExecutePayload struct {
	Language          string            `json:"language"`
	Code              string            `json:"code"`
	RuntimeRevisionID string            `json:"runtime_revision_id,omitempty"`
	Env               map[string]string `json:"env,omitempty"`
	HTTP              *HTTPPayload      `json:"http,omitempty"`
}

// HTTPPayload encodes the outbound network policy.
type HTTPPayload struct {
	Allow []AllowPayload `json:"allow"`
}

// AllowPayload permits a single host.
type AllowPayload struct {
	Host string `json:"host"`
}

// ExecuteResultPayload is the wire response from the execution service.
// Stdout and Stderr are pointers so an absent field can be told apart from
// an empty one.
type ExecuteResultPayload struct {
	ExitCode       int     `json:"exit_code"`
	Stdout         *string `json:"stdout"`
	Stderr         *string `json:"stderr"`
	DurationMillis int64   `json:"duration,omitempty"`
}

// ErrorPayload is the body the service returns with a non-2xx status.
type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func buildExecutePayload(req runtime.ExecuteRequest) ExecutePayload {
	payload := ExecutePayload{
		Language:          req.Language,
		Code:              req.Code,
		RuntimeRevisionID: req.RuntimeRevisionID,
		Env:               req.Env,
	}
	if len(req.Network.Allow) > 0 {
		payload.HTTP = &HTTPPayload{Allow: make([]AllowPayload, len(req.Network.Allow))}
		for i, rule := range req.Network.Allow {
			payload.HTTP.Allow[i] = AllowPayload{Host: rule.Host}
		}
	}
	return payload
}

func mapRemoteResult(payload ExecuteResultPayload) runtime.ExecuteResult {
	result := runtime.ExecuteResult{
		ExitCode: payload.ExitCode,
		Duration: time.Duration(payload.DurationMillis) * time.Millisecond,
	}
	if payload.Stdout != nil {
		result.Stdout = *payload.Stdout
	}
	if payload.Stderr != nil {
		result.Stderr = *payload.Stderr
	}
	return result
}

func (b *Backend) backendInfo() runtime.BackendInfo {
	details := map[string]any{}
	if provider, ok := b.client.(EndpointProvider); ok {
		if endpoint := provider.Endpoint(); endpoint != "" {
			details["endpoint"] = endpoint
		}
	}
	return runtime.BackendInfo{
		Kind:      runtime.BackendRemote,
		Readiness: runtime.ReadinessStable,
		Details:   details,
	}
}
