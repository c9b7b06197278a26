package application

import (
	"sync"
	"time"

	"github.com/bnema/artemis-companion-cli/internal/ports"
)

// Debouncer runs the last triggered action once no trigger arrived for delay.
type Debouncer struct {
	scheduler ports.Scheduler
	delay     time.Duration

	mu         sync.Mutex
	timer      ports.Timer
	generation uint64
}

func NewDebouncer(scheduler ports.Scheduler, delay time.Duration) *Debouncer {
	if scheduler == nil {
		scheduler = ports.SystemScheduler{}
	}

	return &Debouncer{scheduler: scheduler, delay: delay}
}

// Trigger replaces any pending action with action.
func (d *Debouncer) Trigger(action func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	generation := d.generation

	d.timer = d.scheduler.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := d.generation == generation
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			action()
		}
	})
}

// Stop cancels the pending action, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++
}
