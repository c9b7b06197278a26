package application

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func mockAnyContext() interface{} {
	return mock.Anything
}

// fakeScheduler advances virtual time only when told to.
type fakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	scheduler *fakeScheduler
	at        time.Duration
	fn        func()
	stopped   bool
	fired     bool
}

func (t *fakeTimer) Stop() bool {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()

	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) ports.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := &fakeTimer{scheduler: s, at: s.now + d, fn: f}
	s.timers = append(s.timers, timer)
	return timer
}

// Advance moves virtual time forward and runs due timers in order.
func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	now := s.now
	var due []*fakeTimer
	for _, timer := range s.timers {
		if !timer.stopped && !timer.fired && timer.at <= now {
			timer.fired = true
			due = append(due, timer)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, timer := range due {
		timer.fn()
	}
}

func (s *fakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := 0
	for _, timer := range s.timers {
		if !timer.stopped && !timer.fired {
			pending++
		}
	}
	return pending
}

type memoryState struct {
	mu       sync.Mutex
	tracker  domain.TrackerState
	registry []domain.ExerciseIdentity
	saves    int
}

func (m *memoryState) LoadTracker(context.Context) (domain.TrackerState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker, nil
}

func (m *memoryState) SaveTracker(_ context.Context, state domain.TrackerState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracker = state
	m.saves++
	return nil
}

func (m *memoryState) LoadRegistry(context.Context) ([]domain.ExerciseIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry, nil
}

func (m *memoryState) SaveRegistry(_ context.Context, identities []domain.ExerciseIdentity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registry = identities
	return nil
}

type emitted struct {
	Command string
	Payload json.RawMessage
}

type recordingEmitter struct {
	mu       sync.Mutex
	messages []emitted
}

func (e *recordingEmitter) Emit(command string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.messages = append(e.messages, emitted{Command: command, Payload: raw})
	return nil
}

func (e *recordingEmitter) Find(command string) []json.RawMessage {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []json.RawMessage
	for _, msg := range e.messages {
		if msg.Command == command {
			out = append(out, msg.Payload)
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
