package signal

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Type names one of the cross-cutting events carried by the [Bus].
type Type string

const (
	// TypeSessionExpired is emitted by the gateway when the 401 side effect
	// fires (once per cooldown window).
	TypeSessionExpired Type = "session-expired"
	// TypeNavigateHome is re-broadcast by the session store after it has
	// logged out in reaction to [TypeSessionExpired].
	TypeNavigateHome Type = "navigate-home"
)

// Event is a single bus occurrence delivered to subscribers and the sink.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	Type      Type              `json:"type"`
	Message   string            `json:"message,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Sink receives [Event] values from the bus dispatch goroutine.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink is a [Sink] that silently discards all events.
type NoOpSink struct{}

// Emit discards the event.
func (NoOpSink) Emit(context.Context, Event) {}

// ChannelSink is a buffered channel-based [Sink]. The shell typically drains
// Events from its own goroutine and reacts to [TypeNavigateHome]. When the
// buffer is full the event is discarded rather than blocking the bus, so an
// undrained sink never wedges dispatch or [Bus.Close].
type ChannelSink struct {
	events chan Event
}

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan Event, buffer),
	}
}

// Emit delivers the event to the channel, discarding it when the buffer is
// full or ctx is done.
func (s *ChannelSink) Emit(ctx context.Context, event Event) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	default:
	}
}

// Events returns the receive side of the sink.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// FuncSink adapts a plain function into a [Sink].
type FuncSink func(event Event)

// Emit invokes the wrapped function.
func (f FuncSink) Emit(_ context.Context, event Event) {
	if f != nil {
		f(event)
	}
}

// JSONWriterSink is a [Sink] that writes JSON-encoded events to an
// [io.Writer], one object per line.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit marshals and writes the event. Marshal or write failures are dropped;
// the sink must never fail the emitting path.
func (s *JSONWriterSink) Emit(_ context.Context, event Event) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
