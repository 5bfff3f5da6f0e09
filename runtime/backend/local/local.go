// Package local provides a backend that runs snippets through interpreters
// installed on the host. It has no sandboxing and ignores runtime revision
// IDs; it exists for offline runs against documentation drafts.
package local

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/jonwraymond/snippetexec/runtime"
)

// Errors for local backend operations.
var (
	// ErrUnsupportedLanguage is returned when no interpreter is configured
	// for the request language.
	ErrUnsupportedLanguage = errors.New("no interpreter for language")

	// ErrInterpreterNotFound is returned when the interpreter binary is not
	// on PATH.
	ErrInterpreterNotFound = errors.New("interpreter not found")
)

// DefaultInterpreters maps languages to commands reading a program on stdin.
func DefaultInterpreters() map[string][]string {
	return map[string][]string{
		"python":     {"python3", "-"},
		"typescript": {"deno", "run", "--quiet", "--ext=ts", "-"},
	}
}

// netFlags are inserted before the trailing "-" when the request allows
// outbound access to every host. Only deno gates network and env access.
var netFlags = map[string][]string{
	"deno": {"--allow-net", "--allow-env"},
}

// Config configures a local backend.
type Config struct {
	// Interpreters maps a language to the command that runs a program read
	// from stdin. Default: DefaultInterpreters().
	Interpreters map[string][]string

	// InheritEnv passes the parent process environment to snippets in
	// addition to the request Env. Default: false.
	InheritEnv bool
}

// Backend executes snippets as local subprocesses.
type Backend struct {
	interpreters map[string][]string
	inheritEnv   bool
}

// New creates a new local backend.
func New(cfg Config) *Backend {
	interpreters := cfg.Interpreters
	if len(interpreters) == 0 {
		interpreters = DefaultInterpreters()
	}
	return &Backend{
		interpreters: interpreters,
		inheritEnv:   cfg.InheritEnv,
	}
}

// Kind returns the backend kind identifier.
func (b *Backend) Kind() runtime.BackendKind {
	return runtime.BackendLocal
}

// Execute pipes the snippet to its interpreter and waits for it to exit.
// A non-zero exit is reported through the result, not as an error.
func (b *Backend) Execute(ctx context.Context, req runtime.ExecuteRequest) (runtime.ExecuteResult, error) {
	if err := req.Validate(); err != nil {
		return runtime.ExecuteResult{}, err
	}

	argv, ok := b.interpreters[req.Language]
	if !ok || len(argv) == 0 {
		return runtime.ExecuteResult{}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, req.Language)
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return runtime.ExecuteResult{}, fmt.Errorf("%w: %s", ErrInterpreterNotFound, argv[0])
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, buildArgs(argv, req.Network)...)
	cmd.Stdin = strings.NewReader(req.Code)
	cmd.Env = b.buildEnv(req.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	result := runtime.ExecuteResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		Backend: runtime.BackendInfo{
			Kind:      runtime.BackendLocal,
			Readiness: runtime.ReadinessBeta,
			Details:   map[string]any{"interpreter": path},
		},
	}

	if runErr != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, runErr
	}
	return result, nil
}

var _ runtime.Backend = (*Backend)(nil)

func buildArgs(argv []string, network runtime.NetworkPolicy) []string {
	args := append([]string(nil), argv[1:]...)
	flags, gated := netFlags[argv[0]]
	if !gated || !network.AllowsAll() {
		return args
	}
	// Flags must precede the script argument.
	if n := len(args); n > 0 && args[n-1] == "-" {
		out := append([]string(nil), args[:n-1]...)
		out = append(out, flags...)
		return append(out, "-")
	}
	return append(args, flags...)
}

func (b *Backend) buildEnv(extra map[string]string) []string {
	var env []string
	if b.inheritEnv {
		env = os.Environ()
	} else if p := os.Getenv("PATH"); p != "" {
		env = []string{"PATH=" + p}
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+extra[k])
	}
	return env
}
