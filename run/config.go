package run

import (
	"context"
	"time"

	"github.com/jonwraymond/snippetexec/runtime"
)

// DefaultDelay is the pause between consecutive snippets.
const DefaultDelay = time.Second

// Sleeper waits for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration) error

// Config controls how a Runner executes snippets.
type Config struct {
	// Backend executes snippets.
	// Required.
	Backend runtime.Backend

	// Delay is the pause after each snippet before the next one starts.
	// Defaults to DefaultDelay; zero disables pacing.
	Delay time.Duration

	// Reporter receives per-snippet output. Optional.
	Reporter Reporter

	// Logger receives diagnostics. Optional.
	Logger Logger

	// Sleep implements the pacing delay. Defaults to a context-aware timer.
	Sleep Sleeper
}

// applyDefaults sets default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Reporter == nil {
		c.Reporter = nopReporter{}
	}
	if c.Sleep == nil {
		c.Sleep = sleepContext
	}
}

// ConfigOption is a functional option for configuring a Runner.
type ConfigOption func(*Config)

// WithBackend sets the execution backend.
func WithBackend(b runtime.Backend) ConfigOption {
	return func(c *Config) {
		c.Backend = b
	}
}

// WithDelay sets the pause between snippets.
func WithDelay(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Delay = d
	}
}

// WithReporter sets the reporter.
func WithReporter(r Reporter) ConfigOption {
	return func(c *Config) {
		c.Reporter = r
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) ConfigOption {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithSleeper replaces the pacing implementation.
func WithSleeper(s Sleeper) ConfigOption {
	return func(c *Config) {
		c.Sleep = s
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
