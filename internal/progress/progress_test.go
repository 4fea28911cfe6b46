package progress

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer keeps the render goroutine's writes race-free with the test's
// reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestReporterRendersLabel(t *testing.T) {
	out := &syncBuffer{}
	r := New(out)
	r.interval = 5 * time.Millisecond

	r.Start("checking for updates")
	time.Sleep(50 * time.Millisecond)
	r.Stop()

	if !strings.Contains(out.String(), "checking for updates") {
		t.Errorf("output does not contain the label: %q", out.String())
	}
}

func TestReporterLabelSwap(t *testing.T) {
	out := &syncBuffer{}
	r := New(out)
	r.interval = 5 * time.Millisecond

	r.Start("first stage")
	time.Sleep(30 * time.Millisecond)
	r.SetLabel("second stage")
	time.Sleep(30 * time.Millisecond)
	r.Stop()

	got := out.String()
	if !strings.Contains(got, "first stage") {
		t.Errorf("output missing initial label: %q", got)
	}
	if !strings.Contains(got, "second stage") {
		t.Errorf("output missing swapped label: %q", got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	r := New(&syncBuffer{})
	r.interval = 5 * time.Millisecond

	r.Start("working")
	r.Stop()
	r.Stop()
	r.Stop()
}

func TestStopWithoutStart(t *testing.T) {
	r := New(&syncBuffer{})
	r.Stop()
}

func TestSetLabelAfterStop(t *testing.T) {
	r := New(&syncBuffer{})
	r.interval = 5 * time.Millisecond

	r.Start("working")
	r.Stop()
	r.SetLabel("too late")
}

func TestSetLabelBeforeStart(t *testing.T) {
	r := New(&syncBuffer{})
	r.SetLabel("early")
}

func TestConcurrentSetLabel(t *testing.T) {
	r := New(&syncBuffer{})
	r.interval = time.Millisecond

	r.Start("start")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r.SetLabel(fmt.Sprintf("writer %d round %d", n, j))
			}
		}(i)
	}
	wg.Wait()

	r.Stop()
}

func TestStopHaltsRendering(t *testing.T) {
	out := &syncBuffer{}
	r := New(out)
	r.interval = 5 * time.Millisecond

	r.Start("working")
	time.Sleep(20 * time.Millisecond)
	r.Stop()

	settled := out.String()
	time.Sleep(30 * time.Millisecond)
	if got := out.String(); got != settled {
		t.Error("output kept growing after Stop")
	}
}
