package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu    sync.Mutex
	got   []Registration
	err   error
	block chan struct{}
}

func (r *recordingNotifier) SendRegistration(_ context.Context, reg Registration) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, reg)
	return r.err
}

func (r *recordingNotifier) emails() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.got))
	for _, reg := range r.got {
		out = append(out, reg.Email)
	}
	return out
}

func TestDispatcher_DeliversQueuedEventsOnStop(t *testing.T) {
	n := &recordingNotifier{}
	d := NewDispatcher(n, 2, 10)

	d.NotifyRegistered(Registration{Email: "a@x.com"})
	d.NotifyRegistered(Registration{Email: "b@x.com"})
	d.Stop()

	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, n.emails())
}

func TestDispatcher_ErrorsDoNotStopWorkers(t *testing.T) {
	n := &recordingNotifier{err: errors.New("smtp down")}
	d := NewDispatcher(n, 1, 10)

	d.NotifyRegistered(Registration{Email: "a@x.com"})
	d.NotifyRegistered(Registration{Email: "b@x.com"})
	d.Stop()

	assert.Len(t, n.emails(), 2)
}

func TestDispatcher_NeverBlocksWhenFull(t *testing.T) {
	n := &recordingNotifier{block: make(chan struct{})}
	d := NewDispatcher(n, 1, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			d.NotifyRegistered(Registration{Email: "a@x.com"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("NotifyRegistered blocked on a full queue")
	}

	close(n.block)
	d.Stop()

	// one in flight on the worker, one buffered; the rest were dropped
	assert.LessOrEqual(t, len(n.emails()), 2)
	assert.GreaterOrEqual(t, len(n.emails()), 1)
}

func TestDispatcher_AfterStop(t *testing.T) {
	n := &recordingNotifier{}
	d := NewDispatcher(n, 1, 1)
	d.Stop()

	require.NotPanics(t, func() {
		d.NotifyRegistered(Registration{Email: "late@x.com"})
		d.Stop()
	})
	assert.Empty(t, n.emails())
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier().SendRegistration(context.Background(), Registration{Email: "a@x.com"}))
}
