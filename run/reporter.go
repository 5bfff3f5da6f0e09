package run

// Reporter receives operator-facing output for each snippet. Index is the
// zero-based position of the snippet in the run.
//
// Contract:
// - Ordering: for each snippet, Snippet is called first, then Error (only
// when the backend call failed), then Output, then Tally.
// - Errors: reporting is best-effort and must not panic.
type Reporter interface {
	// Snippet receives the code as submitted, after placeholder substitution.
	Snippet(index int, code string)

	// Output receives the snippet's standard output and error streams.
	// Both are empty when the backend call failed.
	Output(index int, stdout, stderr string)

	// Error receives a backend call failure.
	Error(index int, err error)

	// Tally receives the running counts after the snippet is classified.
	Tally(t Tally)
}

// Logger is the interface for diagnostics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type nopReporter struct{}

func (nopReporter) Snippet(int, string)        {}
func (nopReporter) Output(int, string, string) {}
func (nopReporter) Error(int, error)           {}
func (nopReporter) Tally(Tally)                {}
