package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const sendTimeout = 10 * time.Second

// Dispatcher hands registrations to a Notifier on background workers.
// NotifyRegistered never blocks; when the queue is full the event is dropped
// and logged. Delivery errors are logged and otherwise ignored.
type Dispatcher struct {
	notifier Notifier
	queue    chan Registration
	wg       sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(notifier Notifier, workers, queueSize int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan Registration, queueSize),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	return d
}

func (d *Dispatcher) NotifyRegistered(reg Registration) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		slog.Warn("notification dropped, dispatcher stopped", "user_id", reg.UserID)
		return
	}

	select {
	case d.queue <- reg:
	default:
		slog.Warn("notification dropped, queue full", "user_id", reg.UserID)
	}
}

// Stop rejects new events and waits for queued ones to be delivered.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for reg := range d.queue {
		d.send(reg)
	}
}

func (d *Dispatcher) send(reg Registration) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("registration notifier panicked", "user_id", reg.UserID, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.notifier.SendRegistration(ctx, reg); err != nil {
		slog.Error("registration notification failed", "user_id", reg.UserID, "action", "notify_registration", "error", err)
	}
}
