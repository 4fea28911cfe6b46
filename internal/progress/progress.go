// Package progress renders a single spinner line while the pipeline works.
// The pipeline is the only writer of the label and the render goroutine the
// only reader, so the handoff is one atomic value and nothing more.
package progress

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter owns the spinner goroutine. The zero value is not usable; call
// New.
type Reporter struct {
	out      io.Writer
	interval time.Duration
	label    atomic.Value

	mu      sync.Mutex
	running bool
	done    chan struct{}
	wg      sync.WaitGroup
	bar     *progressbar.ProgressBar
}

// New returns a Reporter writing to out, os.Stderr when nil.
func New(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stderr
	}
	return &Reporter{out: out, interval: 100 * time.Millisecond}
}

// Start begins rendering with the given label. Starting an already running
// reporter only replaces the label.
func (r *Reporter) Start(label string) {
	r.label.Store(label)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}

	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
	r.done = make(chan struct{})
	r.running = true

	r.wg.Add(1)
	go r.loop(r.bar, r.done)
}

func (r *Reporter) loop(bar *progressbar.ProgressBar, done chan struct{}) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if label, ok := r.label.Load().(string); ok {
				bar.Describe(label)
			}
			bar.Add(1)
		}
	}
}

// SetLabel replaces the text shown next to the spinner. Safe to call at any
// time, including before Start and after Stop.
func (r *Reporter) SetLabel(label string) {
	r.label.Store(label)
}

// Stop halts the spinner and clears its line. Safe to call more than once
// and on a reporter that never started; every exit path may stop without
// bookkeeping.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	done := r.done
	bar := r.bar
	r.mu.Unlock()

	close(done)
	r.wg.Wait()
	bar.Clear()
}
