package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidDueTime = errors.New("scheduler: invalid due time")
	ErrEngineStopped  = errors.New("scheduler: engine stopped")
)

// DueEvent fires once when a monthly task reaches its due date.
type DueEvent struct {
	TaskID string
	Text   string
	DueAt  time.Time
}

type dueQueue []DueEvent

func (q dueQueue) Len() int           { return len(q) }
func (q dueQueue) Less(i, j int) bool { return q[i].DueAt.Before(q[j].DueAt) }
func (q dueQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *dueQueue) Push(x any)        { *q = append(*q, x.(DueEvent)) }

func (q *dueQueue) Pop() any {
	old := *q
	ev := old[len(old)-1]
	*q = old[:len(old)-1]
	return ev
}

// Engine holds at most one pending notice per task and delivers each on C when
// it falls due. Delivery never blocks: a full channel counts as a drop.
type Engine struct {
	mu      sync.Mutex
	queue   dueQueue
	queued  map[string]struct{}
	out     chan DueEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queued: make(map[string]struct{}),
		out:    make(chan DueEvent, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan DueEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

// Stop ends delivery and closes C.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule queues ev unless its task already has a pending notice.
func (e *Engine) Schedule(ev DueEvent) error {
	if ev.DueAt.IsZero() {
		return ErrInvalidDueTime
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}
	if e.push(ev) {
		e.signalWakeup()
	}
	return nil
}

// Sync makes the pending set match events. Pending notices whose task is
// missing from events, or whose due time moved, are cancelled. It returns the
// number of notices newly queued.
func (e *Engine) Sync(events []DueEvent) (int, error) {
	want := make(map[string]DueEvent, len(events))
	for _, ev := range events {
		if ev.DueAt.IsZero() {
			return 0, ErrInvalidDueTime
		}
		want[ev.TaskID] = ev
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return 0, ErrEngineStopped
	}

	kept := e.queue[:0]
	for _, ev := range e.queue {
		if w, ok := want[ev.TaskID]; ok && w.DueAt.Equal(ev.DueAt) {
			kept = append(kept, w)
			continue
		}
		delete(e.queued, ev.TaskID)
	}
	e.queue = kept
	heap.Init(&e.queue)

	added := 0
	for _, ev := range events {
		if e.push(ev) {
			added++
		}
	}
	e.signalWakeup()
	return added, nil
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

// push must be called with mu held.
func (e *Engine) push(ev DueEvent) bool {
	if _, ok := e.queued[ev.TaskID]; ok {
		return false
	}
	e.queued[ev.TaskID] = struct{}{}
	heap.Push(&e.queue, ev)
	return true
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	stopTimer(timer)
	defer timer.Stop()

	for {
		var fire <-chan time.Time
		if wait, ok := e.nextWait(); ok {
			stopTimer(timer)
			timer.Reset(wait)
			fire = timer.C
		}

		select {
		case <-fire:
			for _, ev := range e.popDue(time.Now()) {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
		case <-e.stopCh:
			return
		}
	}
}

func (e *Engine) nextWait() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return 0, false
	}
	return max(time.Until(e.queue[0].DueAt), 0), true
}

// popDue removes every notice due at or before now. Popped tasks leave the
// queued set whether or not delivery succeeds, so they can be scheduled again.
func (e *Engine) popDue(now time.Time) []DueEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []DueEvent
	for len(e.queue) > 0 && !e.queue[0].DueAt.After(now) {
		ev := heap.Pop(&e.queue).(DueEvent)
		delete(e.queued, ev.TaskID)
		out = append(out, ev)
	}
	return out
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func stopTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
