package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonwraymond/snippetexec/snippet"
)

// ErrConfiguration indicates an invalid or incomplete configuration.
var ErrConfiguration = errors.New("configuration error")

// Environment variables read by Load.
const (
	EnvRuntimeRevisionPython     = "RIZA_RUNTIME_REVISION_ID_PYTHON"
	EnvRuntimeRevisionTypeScript = "RIZA_RUNTIME_REVISION_ID_TYPESCRIPT"
	EnvServiceAPIKey             = "RIZA_API_KEY"
	EnvServiceBaseURL            = "RIZA_BASE_URL"
)

// runtimeRevisionEnv maps each language to the variable holding its
// runtime revision ID.
var runtimeRevisionEnv = map[snippet.Language]string{
	snippet.LanguagePython:     EnvRuntimeRevisionPython,
	snippet.LanguageTypeScript: EnvRuntimeRevisionTypeScript,
}

// ProviderKey is a provider's resolved API key record.
type ProviderKey struct {
	// Provider is the provider name, e.g. "cohere".
	Provider string

	// EnvName is the variable the secret was read from and is exposed
	// under to snippets.
	EnvName string

	// Secret is the resolved API key.
	Secret string
}

// LoadOptions controls what Load resolves.
type LoadOptions struct {
	// Provider name. Required.
	Provider string

	// Language name. Empty selects snippet.DefaultLanguage.
	Language string

	// Providers declares the known providers. Default: DefaultProviders().
	Providers map[string]Provider

	// Remote requires the runtime revision ID and service API key used by
	// the remote backend.
	Remote bool

	// Getenv looks up environment variables. Default: os.Getenv.
	Getenv func(string) string
}

// Config is the resolved configuration for one run.
type Config struct {
	Key               ProviderKey
	Language          snippet.Language
	RuntimeRevisionID string
	ServiceAPIKey     string
	ServiceBaseURL    string
}

// DocumentPath returns the documentation file for the provider, relative to
// the working directory.
func (c Config) DocumentPath() string {
	return c.Key.Provider + ".txt"
}

// Load resolves the configuration. Checks run in a fixed order: provider
// name, language, runtime revision ID (remote only), provider key, service
// API key (remote only). The first failure is returned.
func Load(opts LoadOptions) (Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	providers := opts.Providers
	if providers == nil {
		providers = DefaultProviders()
	}

	if opts.Provider == "" {
		return Config{}, fmt.Errorf("%w: provider name is required", ErrConfiguration)
	}

	lang, err := snippet.ParseLanguage(opts.Language)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	var revision string
	if opts.Remote {
		revision = getenv(runtimeRevisionEnv[lang])
		if revision == "" {
			return Config{}, fmt.Errorf("%w: runtime revision ID not found for %s (set %s)",
				ErrConfiguration, lang, runtimeRevisionEnv[lang])
		}
	}

	key, err := resolveKey(opts.Provider, providers, getenv)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Key:               key,
		Language:          lang,
		RuntimeRevisionID: revision,
		ServiceBaseURL:    getenv(EnvServiceBaseURL),
	}
	if opts.Remote {
		cfg.ServiceAPIKey = getenv(EnvServiceAPIKey)
		if cfg.ServiceAPIKey == "" {
			return Config{}, fmt.Errorf("%w: execution service API key not found (set %s)",
				ErrConfiguration, EnvServiceAPIKey)
		}
	}
	return cfg, nil
}

func resolveKey(name string, providers map[string]Provider, getenv func(string) string) (ProviderKey, error) {
	p, ok := providers[name]
	if !ok {
		return ProviderKey{}, fmt.Errorf("%w: unknown provider %q", ErrConfiguration, name)
	}
	secret := getenv(p.EnvName)
	if secret == "" {
		return ProviderKey{}, fmt.Errorf("%w: API key not found for %s (set %s)",
			ErrConfiguration, name, p.EnvName)
	}
	return ProviderKey{Provider: name, EnvName: p.EnvName, Secret: secret}, nil
}
