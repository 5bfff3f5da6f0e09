package run

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonwraymond/snippetexec/runtime"
)

var errTransport = errors.New("transport failure")

// step is one scripted backend reply.
type step struct {
	result runtime.ExecuteResult
	err    error
}

// scriptedBackend replays steps in order and records requests.
type scriptedBackend struct {
	mu       sync.Mutex
	steps    []step
	requests []runtime.ExecuteRequest
	inFlight int
	maxFlt   int
}

func (b *scriptedBackend) Kind() runtime.BackendKind { return "scripted" }

func (b *scriptedBackend) Execute(_ context.Context, req runtime.ExecuteRequest) (runtime.ExecuteResult, error) {
	b.mu.Lock()
	b.inFlight++
	if b.inFlight > b.maxFlt {
		b.maxFlt = b.inFlight
	}
	i := len(b.requests)
	b.requests = append(b.requests, req)
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.inFlight--
		b.mu.Unlock()
	}()

	if i >= len(b.steps) {
		return runtime.ExecuteResult{}, nil
	}
	return b.steps[i].result, b.steps[i].err
}

// recordingReporter captures reporter calls as strings.
type recordingReporter struct {
	events  []string
	tallies []Tally
}

func (r *recordingReporter) Snippet(i int, code string) {
	r.events = append(r.events, fmt.Sprintf("snippet %d: %s", i, code))
}

func (r *recordingReporter) Output(i int, stdout, stderr string) {
	r.events = append(r.events, fmt.Sprintf("output %d: %q %q", i, stdout, stderr))
}

func (r *recordingReporter) Error(i int, err error) {
	r.events = append(r.events, fmt.Sprintf("error %d: %v", i, err))
}

func (r *recordingReporter) Tally(t Tally) {
	r.events = append(r.events, fmt.Sprintf("tally %d/%d/%d", t.Skipped, t.Succeeded, t.Failed))
	r.tallies = append(r.tallies, t)
}

// recordingSleeper records requested delays without waiting.
type recordingSleeper struct {
	delays []time.Duration
}

func (s *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return ctx.Err()
}

var (
	_ runtime.Backend = (*scriptedBackend)(nil)
	_ Reporter        = (*recordingReporter)(nil)
)
