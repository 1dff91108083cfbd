package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat emits periodic events so a stuck ParseDir can be told apart
// from a slow one: heartbeats keep coming while span ends stop.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// StartHeartbeat starts the heartbeat goroutine; nil when tracing is off.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if !enabled(tracer) || interval <= 0 {
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

	beat := 0
	for {
		select {
		case <-ticker.C:
			beat++
			ev := newEvent(KindHeartbeat, ScopeDriver, "heartbeat", 0)
			ev.Detail = fmt.Sprintf("#%d", beat)
			h.tracer.Emit(ev)
		case <-h.stopCh:
			return
		}
	}
}

// Stop stops the goroutine and waits for it. Safe on nil and when called twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		close(h.stopCh)
		h.wg.Wait()
	})
}
