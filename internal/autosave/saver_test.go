package autosave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePersister struct {
	mu        sync.Mutex
	available bool
	result    bool
	calls     int
	forced    []bool
}

func (f *fakePersister) Available() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.available
}

func (f *fakePersister) Save(_ context.Context, force bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.forced = append(f.forced, force)
	return f.result
}

func (f *fakePersister) saveCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitForCalls(t *testing.T, p *fakePersister, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if p.saveCalls() >= want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected %d save calls, got %d", want, p.saveCalls())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSaverDebouncesBurstsIntoOneSave(t *testing.T) {
	p := &fakePersister{available: true, result: true}
	s := New(p, Config{Interval: time.Hour, Debounce: 20 * time.Millisecond, Logger: zap.NewNop()})

	s.Start(context.Background())
	defer s.Stop()

	s.Notify()
	s.Notify()
	s.Notify()

	waitForCalls(t, p, 1)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, p.saveCalls())

	p.mu.Lock()
	assert.False(t, p.forced[0])
	p.mu.Unlock()
}

func TestSaverTickerSavesOnInterval(t *testing.T) {
	p := &fakePersister{available: true, result: true}
	s := New(p, Config{Interval: 20 * time.Millisecond, Debounce: time.Hour, Logger: zap.NewNop()})

	s.Start(context.Background())
	defer s.Stop()

	waitForCalls(t, p, 2)
}

func TestSaverSkipsWhenUnavailable(t *testing.T) {
	p := &fakePersister{available: false}
	s := New(p, Config{Interval: 10 * time.Millisecond, Debounce: 5 * time.Millisecond, Logger: zap.NewNop()})

	s.Start(context.Background())
	s.Notify()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	assert.Zero(t, p.saveCalls())
}

func TestSaverFlushForcesSave(t *testing.T) {
	p := &fakePersister{available: true, result: true}
	s := New(p, Config{Logger: zap.NewNop()})

	require.True(t, s.Flush(context.Background()))
	require.Equal(t, 1, p.saveCalls())
	assert.True(t, p.forced[0])
}

func TestSaverStartIsIdempotent(t *testing.T) {
	p := &fakePersister{available: true, result: true}
	s := New(p, Config{Interval: time.Hour, Debounce: time.Hour, Logger: zap.NewNop()})

	s.Start(context.Background())
	s.Start(context.Background())
	s.Stop()
	s.Stop()
}
