package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// Provider declares where a provider's API key is read from.
type Provider struct {
	// EnvName is the environment variable holding the API key.
	EnvName string

	// Description is shown in provider listings.
	Description string
}

// DefaultProviders returns the built-in providers.
func DefaultProviders() map[string]Provider {
	return map[string]Provider{
		"elevenlabs": {EnvName: "ELEVENLABS_API_KEY", Description: "ElevenLabs text to speech and voice API"},
		"cohere":     {EnvName: "COHERE_API_KEY", Description: "Cohere language model API"},
	}
}

// providersFile represents the YAML file structure
type providersFile struct {
	Providers map[string]providerEntry `yaml:"providers"`
}

// providerEntry represents a single provider in YAML
type providerEntry struct {
	Env         string `yaml:"env"`
	Description string `yaml:"description,omitempty"`
}

// providerNameRegex validates provider names; they double as file names.
var providerNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// envNameRegex validates environment variable names.
var envNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseProviders parses YAML content into provider declarations.
func ParseProviders(content []byte) (map[string]Provider, error) {
	var pf providersFile
	if err := yaml.Unmarshal(content, &pf); err != nil {
		return nil, fmt.Errorf("%w: invalid YAML: %v", ErrConfiguration, err)
	}

	names := make([]string, 0, len(pf.Providers))
	for name := range pf.Providers {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]Provider, len(pf.Providers))
	for _, name := range names {
		entry := pf.Providers[name]
		if !providerNameRegex.MatchString(name) {
			return nil, fmt.Errorf("%w: invalid provider name %q", ErrConfiguration, name)
		}
		if entry.Env == "" {
			return nil, fmt.Errorf("%w: provider %q requires 'env'", ErrConfiguration, name)
		}
		if !envNameRegex.MatchString(entry.Env) {
			return nil, fmt.Errorf("%w: invalid env name %q for provider %q", ErrConfiguration, entry.Env, name)
		}
		out[name] = Provider{EnvName: entry.Env, Description: entry.Description}
	}
	return out, nil
}

// LoadProviders reads a providers file and merges it over DefaultProviders.
// Entries in the file replace built-ins of the same name.
func LoadProviders(path string) (map[string]Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading providers file: %v", ErrConfiguration, err)
	}
	extra, err := ParseProviders(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return MergeProviders(DefaultProviders(), extra), nil
}

// MergeProviders returns base overlaid with extra. Neither input is modified.
func MergeProviders(base, extra map[string]Provider) map[string]Provider {
	out := make(map[string]Provider, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// ProviderNames returns provider names sorted for deterministic output.
func ProviderNames(providers map[string]Provider) []string {
	out := make([]string, 0, len(providers))
	for name := range providers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
