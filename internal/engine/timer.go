package engine

import (
	"sync"
	"time"
)

// repeater — отменяемый периодический таймер. cancel идемпотентен.
// Тик может гонять с cancel, поэтому колбэки обязаны перепроверять
// актуальность состояния под блокировкой движка.
type repeater struct {
	stopOnce sync.Once
	stop     chan struct{}
}

func startRepeater(every time.Duration, fn func()) *repeater {
	r := &repeater{stop: make(chan struct{})}
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-t.C:
				fn()
			}
		}
	}()
	return r
}

func (r *repeater) cancel() {
	r.stopOnce.Do(func() { close(r.stop) })
}
