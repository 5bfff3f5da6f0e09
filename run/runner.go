package run

import (
	"context"
	"errors"
	"time"

	"github.com/jonwraymond/snippetexec/runtime"
	"github.com/jonwraymond/snippetexec/snippet"
)

// Errors returned by the Runner.
var (
	// ErrBackendRequired is returned by NewRunner when no backend is set.
	ErrBackendRequired = errors.New("run: backend is required")

	// ErrLanguageRequired is returned by Run when Params has no language.
	ErrLanguageRequired = errors.New("run: language is required")
)

// Params describes the environment shared by every snippet in a run.
type Params struct {
	// Language of the snippets.
	Language snippet.Language

	// EnvName is the environment variable the secret is exposed under,
	// e.g. "COHERE_API_KEY".
	EnvName string

	// Secret replaces placeholders and is bound under EnvName.
	Secret string

	// RuntimeRevisionID selects the remote execution environment.
	RuntimeRevisionID string

	// Network is the outbound access policy. The zero value is replaced by
	// runtime.AllowAllHosts().
	Network runtime.NetworkPolicy

	// Timeout bounds each snippet. Zero leaves it to the backend.
	Timeout time.Duration
}

func (p Params) request(code string) runtime.ExecuteRequest {
	network := p.Network
	if len(network.Allow) == 0 {
		network = runtime.AllowAllHosts()
	}
	var env map[string]string
	if p.EnvName != "" {
		env = map[string]string{p.EnvName: p.Secret}
	}
	return runtime.ExecuteRequest{
		Language:          p.Language.String(),
		Code:              code,
		RuntimeRevisionID: p.RuntimeRevisionID,
		Env:               env,
		Network:           network,
		Timeout:           p.Timeout,
	}
}

// Runner executes snippets sequentially.
type Runner struct {
	cfg Config
}

// NewRunner creates a Runner. The delay defaults to DefaultDelay unless
// WithDelay is given.
func NewRunner(opts ...ConfigOption) (*Runner, error) {
	cfg := Config{Delay: DefaultDelay}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Backend == nil {
		return nil, ErrBackendRequired
	}
	cfg.applyDefaults()
	return &Runner{cfg: cfg}, nil
}

// Run executes snippets in order, one at a time, and returns the tally.
// Per-snippet failures are counted, never returned; the only errors are an
// invalid Params or a done ctx, in which case the tally so far is returned.
func (r *Runner) Run(ctx context.Context, snippets []string, params Params) (Tally, error) {
	if params.Language == "" {
		return Tally{}, ErrLanguageRequired
	}

	var tally Tally
	for i, code := range snippets {
		if err := ctx.Err(); err != nil {
			return tally, err
		}

		outcome := r.runOne(ctx, i, code, params)
		tally = tally.add(outcome)
		r.cfg.Reporter.Tally(tally)

		if i == len(snippets)-1 {
			break
		}
		if err := r.cfg.Sleep(ctx, r.cfg.Delay); err != nil {
			return tally, err
		}
	}

	if r.cfg.Logger != nil {
		r.cfg.Logger.Info("run complete",
			"snippets", len(snippets),
			"succeeded", tally.Succeeded,
			"failed", tally.Failed,
			"skipped", tally.Skipped)
	}
	return tally, nil
}

func (r *Runner) runOne(ctx context.Context, index int, code string, params Params) Outcome {
	code, replaced := snippet.Substitute(code, params.Secret)
	if !replaced && r.cfg.Logger != nil {
		r.cfg.Logger.Debug("no placeholder found", "snippet", index)
	}
	r.cfg.Reporter.Snippet(index, code)

	start := time.Now()
	result, err := r.cfg.Backend.Execute(ctx, params.request(code))
	if err != nil {
		r.cfg.Reporter.Error(index, err)
		result = runtime.ExecuteResult{}
	}
	r.cfg.Reporter.Output(index, result.Stdout, result.Stderr)

	outcome := Classify(result, err)
	if r.cfg.Logger != nil {
		r.cfg.Logger.Debug("snippet finished",
			"snippet", index,
			"status", string(outcome.Status),
			"reason", outcome.Reason,
			"duration", time.Since(start))
	}
	return outcome
}
