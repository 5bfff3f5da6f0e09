// Command snippetexec runs the code snippets embedded in a provider's
// documentation against a sandboxed runtime and reports how many succeeded.
//
// Usage:
//
//	snippetexec [flags] <provider> [language]
//
// The snippets are read from <provider>.txt (override with --file). The
// provider's API key is read from its environment variable, substituted for
// the first placeholder in each snippet, and exposed to the snippet under
// the same name.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"

	"github.com/jonwraymond/snippetexec/catalog"
	"github.com/jonwraymond/snippetexec/config"
	"github.com/jonwraymond/snippetexec/report"
	"github.com/jonwraymond/snippetexec/run"
	"github.com/jonwraymond/snippetexec/runtime"
	"github.com/jonwraymond/snippetexec/runtime/backend/local"
	"github.com/jonwraymond/snippetexec/runtime/backend/remote"
	"github.com/jonwraymond/snippetexec/snippet"
)

const userAgent = "snippetexec"

// errUsage is returned by parseArgs when the command line is incomplete.
var errUsage = errors.New("usage")

type options struct {
	file          string
	envFile       string
	backend       string
	delay         time.Duration
	timeout       time.Duration
	providersFile string
	listProviders bool
	strict        bool
	verbose       bool
	help          bool

	provider string
	language string
	query    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := runCLI(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

func runCLI(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	opts, flags, err := parseArgs(args, stderr)
	if opts.help {
		flags.Usage()
		return 0
	}
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, err)
		}
		flags.Usage()
		return 1
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	providers := config.DefaultProviders()
	if opts.providersFile != "" {
		providers, err = config.LoadProviders(opts.providersFile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	if opts.listProviders {
		return listProviders(stdout, stderr, providers, opts.query)
	}

	getenv, err = config.WithEnvFile(opts.envFile, getenv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	kind := runtime.BackendKind(opts.backend)
	cfg, err := config.Load(config.LoadOptions{
		Provider:  opts.provider,
		Language:  opts.language,
		Providers: providers,
		Remote:    kind == runtime.BackendRemote,
		Getenv:    getenv,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	backend, err := newRegistry(cfg, logger).New(kind)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	path := opts.file
	if path == "" {
		path = cfg.DocumentPath()
	}
	snippets := snippet.ExtractFile(path, cfg.Language, logger)
	logger.Debug("snippets extracted", "file", path, "language", cfg.Language, "count", len(snippets))

	console := report.NewConsole(report.Options{Stdout: stdout, Stderr: stderr})
	runner, err := run.NewRunner(
		run.WithBackend(backend),
		run.WithDelay(opts.delay),
		run.WithReporter(console),
		run.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	tally, err := runner.Run(ctx, snippets, run.Params{
		Language:          cfg.Language,
		EnvName:           cfg.Key.EnvName,
		Secret:            cfg.Key.Secret,
		RuntimeRevisionID: cfg.RuntimeRevisionID,
		Timeout:           opts.timeout,
	})
	console.Summary(cfg.Key.Provider, tally)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if opts.strict && tally.Failed > 0 {
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (options, *pflag.FlagSet, error) {
	var opts options
	flags := pflag.NewFlagSet("snippetexec", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.file, "file", "f", "", "Read snippets from this file instead of <provider>.txt")
	flags.StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "Read unset variables from this dotenv file when it exists")
	flags.StringVarP(&opts.backend, "backend", "b", string(runtime.BackendRemote), "Execution backend: remote or local")
	flags.DurationVarP(&opts.delay, "delay", "d", run.DefaultDelay, "Pause between snippets")
	flags.DurationVarP(&opts.timeout, "timeout", "t", 0, "Per-snippet timeout (0 for none)")
	flags.StringVar(&opts.providersFile, "providers-file", "", "YAML file declaring additional providers")
	flags.BoolVar(&opts.listProviders, "providers", false, "List known providers (optionally matching a query) and exit")
	flags.BoolVar(&opts.strict, "strict", false, "Exit with status 1 when any snippet fails")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVarP(&opts.help, "help", "h", false, "Show this help message")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: snippetexec [flags] <provider> [language]\n\n")
		fmt.Fprintf(stderr, "Runs the %s or %s snippets in <provider>.txt and reports the results.\n\n",
			snippet.LanguagePython, snippet.LanguageTypeScript)
		fmt.Fprintf(stderr, "Flags:\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return opts, flags, err
	}
	if opts.help {
		return opts, flags, nil
	}

	rest := flags.Args()
	if opts.listProviders {
		if len(rest) > 0 {
			opts.query = rest[0]
		}
		return opts, flags, nil
	}
	if len(rest) == 0 {
		return opts, flags, errUsage
	}
	if len(rest) > 2 {
		return opts, flags, fmt.Errorf("unexpected arguments: %v", rest[2:])
	}
	opts.provider = rest[0]
	if len(rest) > 1 {
		opts.language = rest[1]
	}
	switch runtime.BackendKind(opts.backend) {
	case runtime.BackendRemote, runtime.BackendLocal:
	default:
		return opts, flags, fmt.Errorf("unknown backend %q (want %s or %s)",
			opts.backend, runtime.BackendRemote, runtime.BackendLocal)
	}
	return opts, flags, nil
}

func newRegistry(cfg config.Config, logger *slog.Logger) *runtime.Registry {
	reg := runtime.NewRegistry()
	reg.RegisterFactory(runtime.BackendRemote, func() (runtime.Backend, error) {
		client, err := remote.NewHTTPClient(remote.HTTPClientConfig{
			BaseURL:   cfg.ServiceBaseURL,
			APIKey:    cfg.ServiceAPIKey,
			UserAgent: userAgent,
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("remote backend configured", "endpoint", client.Endpoint())
		return remote.New(remote.Config{Client: client, Logger: logger}), nil
	})
	reg.RegisterFactory(runtime.BackendLocal, func() (runtime.Backend, error) {
		return local.New(local.Config{}), nil
	})
	return reg
}

func listProviders(stdout, stderr io.Writer, providers map[string]config.Provider, query string) int {
	cat, err := catalog.New(providers)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	entries, err := cat.Search(query, 0)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	for _, e := range entries {
		fmt.Fprintf(stdout, "%-16s %-24s %s\n", e.Name, e.EnvName, e.Description)
	}
	return 0
}
