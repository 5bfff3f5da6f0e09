package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jonwraymond/snippetexec/snippet"
)

// envMap returns a Getenv backed by m.
func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func fullEnv() map[string]string {
	return map[string]string{
		"COHERE_API_KEY":             "co-1",
		"ELEVENLABS_API_KEY":         "el-1",
		EnvRuntimeRevisionPython:     "rev-py",
		EnvRuntimeRevisionTypeScript: "rev-ts",
		EnvServiceAPIKey:             "riza-1",
		EnvServiceBaseURL:            "http://localhost:9000",
	}
}

func TestLoad_Remote(t *testing.T) {
	cfg, err := Load(LoadOptions{
		Provider: "cohere",
		Language: "python",
		Remote:   true,
		Getenv:   envMap(fullEnv()),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		Key:               ProviderKey{Provider: "cohere", EnvName: "COHERE_API_KEY", Secret: "co-1"},
		Language:          snippet.LanguagePython,
		RuntimeRevisionID: "rev-py",
		ServiceAPIKey:     "riza-1",
		ServiceBaseURL:    "http://localhost:9000",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.DocumentPath(); got != "cohere.txt" {
		t.Errorf("DocumentPath() = %q, want %q", got, "cohere.txt")
	}
}

func TestLoad_DefaultLanguage(t *testing.T) {
	cfg, err := Load(LoadOptions{Provider: "elevenlabs", Remote: true, Getenv: envMap(fullEnv())})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Language != snippet.LanguageTypeScript {
		t.Errorf("Language = %q, want %q", cfg.Language, snippet.LanguageTypeScript)
	}
	if cfg.RuntimeRevisionID != "rev-ts" {
		t.Errorf("RuntimeRevisionID = %q, want %q", cfg.RuntimeRevisionID, "rev-ts")
	}
}

func TestLoad_LocalSkipsServiceSettings(t *testing.T) {
	env := map[string]string{"COHERE_API_KEY": "co-1"}
	cfg, err := Load(LoadOptions{Provider: "cohere", Language: "python", Getenv: envMap(env)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RuntimeRevisionID != "" || cfg.ServiceAPIKey != "" {
		t.Errorf("local config should not carry service settings: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		opts     LoadOptions
		drop     string
		wantText string
	}{
		{
			name:     "missing provider",
			opts:     LoadOptions{Remote: true},
			wantText: "provider name is required",
		},
		{
			name:     "unknown language",
			opts:     LoadOptions{Provider: "cohere", Language: "ruby", Remote: true},
			wantText: "unknown language",
		},
		{
			name:     "missing runtime revision",
			opts:     LoadOptions{Provider: "cohere", Language: "python", Remote: true},
			drop:     EnvRuntimeRevisionPython,
			wantText: EnvRuntimeRevisionPython,
		},
		{
			name:     "unknown provider",
			opts:     LoadOptions{Provider: "openai", Remote: true},
			wantText: `unknown provider "openai"`,
		},
		{
			name:     "missing provider key",
			opts:     LoadOptions{Provider: "cohere", Remote: true},
			drop:     "COHERE_API_KEY",
			wantText: "API key not found for cohere",
		},
		{
			name:     "missing service key",
			opts:     LoadOptions{Provider: "cohere", Remote: true},
			drop:     EnvServiceAPIKey,
			wantText: EnvServiceAPIKey,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := fullEnv()
			delete(env, tt.drop)
			tt.opts.Getenv = envMap(env)

			_, err := Load(tt.opts)
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("Load() error = %v, want %v", err, ErrConfiguration)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("Load() error = %q, want it to contain %q", err, tt.wantText)
			}
		})
	}
}

func TestLoad_RevisionCheckedBeforeKey(t *testing.T) {
	_, err := Load(LoadOptions{
		Provider: "cohere",
		Language: "python",
		Remote:   true,
		Getenv:   envMap(map[string]string{}),
	})
	if err == nil || !strings.Contains(err.Error(), "runtime revision") {
		t.Errorf("Load() error = %v, want runtime revision error first", err)
	}
}

func TestLoad_CustomProviders(t *testing.T) {
	providers := MergeProviders(DefaultProviders(), map[string]Provider{
		"openai": {EnvName: "OPENAI_API_KEY"},
	})
	cfg, err := Load(LoadOptions{
		Provider:  "openai",
		Providers: providers,
		Getenv:    envMap(map[string]string{"OPENAI_API_KEY": "oa-1"}),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Key.Secret != "oa-1" || cfg.Key.EnvName != "OPENAI_API_KEY" {
		t.Errorf("Key = %+v", cfg.Key)
	}
}

func TestLoad_UsesProcessEnvironment(t *testing.T) {
	t.Setenv("COHERE_API_KEY", "from-env")
	cfg, err := Load(LoadOptions{Provider: "cohere"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Key.Secret != "from-env" {
		t.Errorf("Secret = %q, want %q", cfg.Key.Secret, "from-env")
	}
}
