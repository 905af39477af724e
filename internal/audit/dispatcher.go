package audit

import (
	"context"
	"log/slog"
	"sync"
)

type Event struct {
	ActorRole string
	ActorID   *uint
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

// Dispatcher writes audit rows off the request path. A full queue drops
// events rather than blocking the caller.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
	done   chan struct{}
	once   sync.Once
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(context.Background(), ev); err != nil {
			slog.Error("audit write failed", "action", ev.Action, "error", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		slog.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() { close(d.queue) })
	<-d.done
}

func ID(v uint) *uint {
	return &v
}
