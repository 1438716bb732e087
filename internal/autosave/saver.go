package autosave

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Persister is the slice of the repository the saver needs.
type Persister interface {
	Available() bool
	Save(ctx context.Context, force bool) bool
}

// Config configures saver cadence.
type Config struct {
	Interval time.Duration
	Debounce time.Duration
	Logger   *zap.Logger
}

// Saver runs the periodic persistence loop. A fixed ticker writes the dataset
// on an interval, and Notify schedules a debounced write shortly after a
// mutation so quick bursts of edits collapse into one save.
type Saver struct {
	persister Persister

	interval time.Duration
	debounce time.Duration
	logger   *zap.Logger

	notify  chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// New builds a Saver with the provided persister.
func New(persister Persister, cfg Config) *Saver {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 2 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Saver{
		persister: persister,
		interval:  cfg.Interval,
		debounce:  cfg.Debounce,
		logger:    cfg.Logger,
		notify:    make(chan struct{}, 1),
	}
}

// Start begins the background loop. Safe to call once.
func (s *Saver) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.loop()
	s.started = true
	s.logger.Sugar().Infow("autosave started", "interval", s.interval, "debounce", s.debounce)
}

// Stop cancels the loop and waits for it to exit. It does not flush; call
// Flush first during shutdown.
func (s *Saver) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
	s.logger.Sugar().Infow("autosave stopped")
}

// Notify schedules a debounced save. Non-blocking; a pending notification
// already covers this change.
func (s *Saver) Notify() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Flush forces an immediate save, used on shutdown and explicit save requests.
func (s *Saver) Flush(ctx context.Context) bool {
	if !s.persister.Available() {
		return false
	}
	return s.persister.Save(ctx, true)
}

func (s *Saver) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var debounce *time.Timer
	var fire <-chan time.Time
	stopDebounce := func() {
		if debounce != nil {
			debounce.Stop()
			debounce = nil
			fire = nil
		}
	}
	defer stopDebounce()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.notify:
			if debounce == nil {
				debounce = time.NewTimer(s.debounce)
				fire = debounce.C
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(s.debounce)
			}
		case <-fire:
			stopDebounce()
			s.save("debounce")
		case <-ticker.C:
			s.save("interval")
		}
	}
}

func (s *Saver) save(trigger string) {
	if !s.persister.Available() {
		return
	}
	if !s.persister.Save(s.ctx, false) {
		s.logger.Sugar().Warnw("autosave write failed", "trigger", trigger)
	}
}
