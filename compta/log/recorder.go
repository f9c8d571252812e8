package log

import (
	"context"
	"sync"
)

// Event is one log call captured by a Recorder.
type Event struct {
	Level   Level
	Message string
	Fields  []Field
}

// Field returns the value of the first field named key, if present.
func (e Event) Field(key string) (any, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}

// Recorder is an in-memory Logger that keeps every event at or above its level.
// Child loggers created with With share the parent's event store.
type Recorder struct {
	level  Level
	fields []Field
	store  *eventStore
}

type eventStore struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates a Recorder emitting events up to level.
func NewRecorder(level Level) *Recorder {
	return &Recorder{level: level, store: &eventStore{}}
}

// Log records the event when level is enabled.
func (r *Recorder) Log(_ context.Context, level Level, msg string, fields ...Field) {
	if !r.Enabled(level) {
		return
	}

	all := make([]Field, 0, len(r.fields)+len(fields))
	all = append(all, r.fields...)
	all = append(all, fields...)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.events = append(r.store.events, Event{Level: level, Message: msg, Fields: all})
}

// With returns a child recorder carrying extra fields.
//
//nolint:ireturn
func (r *Recorder) With(fields ...Field) Logger {
	child := make([]Field, 0, len(r.fields)+len(fields))
	child = append(child, r.fields...)
	child = append(child, fields...)

	return &Recorder{level: r.level, fields: child, store: r.store}
}

// WithGroup records the group name as a `group` field.
//
//nolint:ireturn
func (r *Recorder) WithGroup(name string) Logger {
	return r.With(String("group", name))
}

// Enabled reports whether level would be recorded.
func (r *Recorder) Enabled(level Level) bool {
	if r == nil {
		return false
	}

	return r.level >= level
}

// Sync is a no-op.
func (r *Recorder) Sync(_ context.Context) error { return nil }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]Event, len(r.store.events))
	copy(out, r.store.events)

	return out
}

// EventsAt returns the recorded events with the given level.
func (r *Recorder) EventsAt(level Level) []Event {
	var out []Event

	for _, e := range r.Events() {
		if e.Level == level {
			out = append(out, e)
		}
	}

	return out
}
