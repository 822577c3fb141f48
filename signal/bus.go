package signal

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Handler reacts to an event on the dispatch goroutine. Returned follow-up
// events are enqueued after the triggering event has reached the sink, so a
// subscriber can re-broadcast without racing its own reaction.
type Handler func(event Event) []Event

// Config holds bus tuning parameters.
type Config struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// Bus is the in-process pub/sub channel. Events are dispatched from a single
// goroutine: subscribed handlers run first, then the external sink receives
// the event, then handler follow-ups are dispatched the same way.
type Bus struct {
	cfg  Config
	sink Sink

	mu       sync.RWMutex
	handlers map[Type][]Handler

	ch        chan Event
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewBus creates and starts a bus. When cfg.Enabled is false it returns nil;
// all Bus methods are nil-safe so callers never branch on the config.
func NewBus(cfg Config, sink Sink) *Bus {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	b := &Bus{
		cfg:      cfg,
		sink:     sink,
		handlers: make(map[Type][]Handler),
		ch:       make(chan Event, cfg.BufferSize),
		done:     make(chan struct{}),
	}

	b.wg.Add(1)
	go b.run()

	return b
}

// Subscribe registers a handler for one event type. Registration happens at
// wiring time, before the first Emit; the session store is the only built-in
// subscriber.
func (b *Bus) Subscribe(t Type, h Handler) {
	if b == nil || h == nil {
		return
	}
	b.mu.Lock()
	b.handlers[t] = append(b.handlers[t], h)
	b.mu.Unlock()
}

// Emit enqueues an event for dispatch. A zero Timestamp is stamped with the
// current time. With DropIfFull set, a full buffer increments the dropped
// counter instead of blocking.
func (b *Bus) Emit(ctx context.Context, event Event) {
	if b == nil || b.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if b.cfg.DropIfFull {
		select {
		case b.ch <- event:
		case <-b.done:
		default:
			b.dropped.Add(1)
		}
		return
	}

	select {
	case b.ch <- event:
	case <-ctx.Done():
	case <-b.done:
	}
}

// Dropped reports how many events were discarded due to backpressure.
func (b *Bus) Dropped() uint64 {
	if b == nil {
		return 0
	}
	return b.dropped.Load()
}

// Close stops the dispatch goroutine after draining queued events. It is
// idempotent.
func (b *Bus) Close() {
	if b == nil {
		return
	}
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		close(b.done)
		b.wg.Wait()
	})
}

func (b *Bus) run() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.ch:
			b.dispatch(event)
		case <-b.done:
			for {
				select {
				case event := <-b.ch:
					b.dispatch(event)
				default:
					return
				}
			}
		}
	}
}

// dispatch delivers one event and any handler follow-ups, breadth-first.
// Follow-ups stay inside the dispatch goroutine; they never touch the
// channel, so a subscriber re-broadcast cannot deadlock on a full buffer.
func (b *Bus) dispatch(event Event) {
	queue := []Event{event}
	for len(queue) > 0 {
		ev := queue[0]
		queue = queue[1:]

		b.mu.RLock()
		handlers := b.handlers[ev.Type]
		b.mu.RUnlock()

		var followups []Event
		for _, h := range handlers {
			followups = append(followups, h(ev)...)
		}

		b.sink.Emit(context.Background(), ev)

		for _, fu := range followups {
			if fu.Timestamp.IsZero() {
				fu.Timestamp = ev.Timestamp
			}
			queue = append(queue, fu)
		}
	}
}
