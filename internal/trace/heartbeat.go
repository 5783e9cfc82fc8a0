package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat periodically emits heartbeat events so a stuck directory check
// can be told apart from a slow one.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// StartHeartbeat starts the heartbeat goroutine. Returns nil when tracing is
// disabled or interval is not positive; Stop on nil is a no-op.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
	h.wg.Add(1)
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer h.wg.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var n uint64
	for {
		select {
		case <-ticker.C:
			n++
			h.tracer.Emit(&Event{
				Time:   time.Now(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d", n),
			})
		case <-h.stopCh:
			return
		}
	}
}

// Stop stops the goroutine and waits for it to finish.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stopCh) })
	h.wg.Wait()
}
