package run

import (
	"fmt"
	"strings"

	"github.com/jonwraymond/snippetexec/runtime"
)

// Status is the classification of a single snippet execution.
type Status string

// Snippet statuses.
const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Outcome is the result of one snippet.
type Outcome struct {
	Status Status

	// Reason explains a failure. Empty on success.
	Reason string
}

// OK returns true if the snippet succeeded.
func (o Outcome) OK() bool {
	return o.Status == StatusSucceeded
}

// Classify derives the outcome of a backend call. A raised error fails the
// snippet; otherwise the snippet succeeds only when its error stream is
// empty, whatever its exit code.
func Classify(result runtime.ExecuteResult, err error) Outcome {
	if err != nil {
		return Outcome{Status: StatusFailed, Reason: err.Error()}
	}
	if result.Stderr != "" {
		return Outcome{Status: StatusFailed, Reason: "stderr: " + firstLine(result.Stderr)}
	}
	return Outcome{Status: StatusSucceeded}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Tally counts snippet outcomes for one run.
type Tally struct {
	Skipped   int `json:"skipped"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Total returns the number of snippets counted.
func (t Tally) Total() int {
	return t.Skipped + t.Succeeded + t.Failed
}

// add returns t with o counted.
func (t Tally) add(o Outcome) Tally {
	switch o.Status {
	case StatusSucceeded:
		t.Succeeded++
	default:
		t.Failed++
	}
	return t
}

// String formats the tally the way it is printed after each snippet.
func (t Tally) String() string {
	return fmt.Sprintf("%d snippets skipped\n%d snippets succeeded\n%d snippets failed",
		t.Skipped, t.Succeeded, t.Failed)
}
