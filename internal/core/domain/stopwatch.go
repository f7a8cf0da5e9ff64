package domain

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// StopwatchEventType is either a start or a stop.
type StopwatchEventType string

const (
	// EventStart opens a timing interval.
	EventStart StopwatchEventType = "start"
	// EventStop closes a timing interval.
	EventStop StopwatchEventType = "stop"
)

// StopwatchEvent is one entry of the stopwatch ledger.
// Time is in milliseconds; EpochTime is only set on the first start of a key.
type StopwatchEvent struct {
	Name      string             `json:"name"`
	Type      StopwatchEventType `json:"type"`
	Time      float64            `json:"time"`
	Module    string             `json:"module,omitempty"`
	Async     bool               `json:"async"`
	Debug     bool               `json:"debug,omitempty"`
	EpochTime float64            `json:"epochTime,omitempty"`
}

// StopwatchDescriptor identifies a timed interval. ID and Name form the key.
type StopwatchDescriptor struct {
	ID     string
	Name   string
	Module string
	Async  bool
	Debug  bool
}

func (d StopwatchDescriptor) key() string {
	if d.ID != "" {
		return d.ID + "/" + d.Name
	}
	return d.Name
}

// Stopwatch is a keyed ledger of start/stop events that produces a perf profile.
// It is safe for concurrent use.
type Stopwatch struct {
	mu     sync.Mutex
	origin time.Time
	keys   []string
	events map[string][]StopwatchEvent

	times      []StopwatchEvent
	timesValid bool

	warn func(msg string)
}

// NewStopwatch creates an empty Stopwatch. warn receives misuse warnings and may be nil.
func NewStopwatch(warn func(msg string)) *Stopwatch {
	return &Stopwatch{
		origin: time.Now(),
		events: make(map[string][]StopwatchEvent),
		warn:   warn,
	}
}

// elapsed returns monotonic milliseconds since the stopwatch was created.
func (w *Stopwatch) elapsed() float64 {
	return float64(time.Since(w.origin)) / float64(time.Millisecond)
}

// Start opens an interval for d. It is a no-op with a warning if the key is already started.
func (w *Stopwatch) Start(d StopwatchDescriptor) {
	w.mu.Lock()
	key := d.key()
	values, ok := w.events[key]
	if !ok {
		w.keys = append(w.keys, key)
		w.events[key] = []StopwatchEvent{{
			Name:      d.Name,
			Type:      EventStart,
			Time:      w.elapsed(),
			Module:    d.Module,
			Async:     d.Async,
			Debug:     d.Debug,
			EpochTime: float64(time.Now().UnixMilli()),
		}}
		w.timesValid = false
		w.mu.Unlock()
		return
	}

	if values[len(values)-1].Type == EventStart {
		w.mu.Unlock()
		w.warnf("Can't start stopwatch %q because it's already started.", d.Name)
		return
	}

	w.events[key] = append(values, StopwatchEvent{
		Name:   d.Name,
		Type:   EventStart,
		Time:   w.elapsed(),
		Module: d.Module,
		Async:  d.Async,
	})
	w.timesValid = false
	w.mu.Unlock()
}

// Stop closes the open interval for d. It is a no-op with a warning if the
// key was never started or is already stopped.
func (w *Stopwatch) Stop(d StopwatchDescriptor) {
	w.mu.Lock()
	key := d.key()
	values, ok := w.events[key]
	if !ok {
		w.mu.Unlock()
		w.warnf("Can't stop stopwatch %q because it wasn't started.", d.Name)
		return
	}

	if values[len(values)-1].Type == EventStop {
		w.mu.Unlock()
		w.warnf("Can't stop stopwatch %q because it's already stopped.", d.Name)
		return
	}

	w.events[key] = append(values, StopwatchEvent{
		Name:   d.Name,
		Type:   EventStop,
		Time:   w.elapsed(),
		Module: d.Module,
		Async:  d.Async,
	})
	w.timesValid = false
	w.mu.Unlock()
}

// Adhoc records an interval measured elsewhere, replacing any events of the key.
// Both times are epoch milliseconds.
func (w *Stopwatch) Adhoc(d StopwatchDescriptor, startEpoch, stopEpoch float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := d.key()
	if _, ok := w.events[key]; !ok {
		w.keys = append(w.keys, key)
	}
	w.events[key] = []StopwatchEvent{
		{
			Name:      d.Name,
			Type:      EventStart,
			Time:      startEpoch,
			Module:    d.Module,
			Async:     d.Async,
			EpochTime: startEpoch,
		},
		{
			Name:   d.Name,
			Type:   EventStop,
			Time:   stopEpoch,
			Module: d.Module,
			Async:  d.Async,
		},
	}
	w.timesValid = false
}

// Events returns a copy of the raw ledger entries for a key.
func (w *Stopwatch) Events(id, name string) []StopwatchEvent {
	w.mu.Lock()
	defer w.mu.Unlock()
	values := w.events[StopwatchDescriptor{ID: id, Name: name}.key()]
	out := make([]StopwatchEvent, len(values))
	copy(out, values)
	return out
}

// Times returns the collapsed perf profile: per key the first start, moved to
// epoch time, and one stop adjusted by the summed durations. The result is
// memoized until the next mutation and must not be modified by callers.
func (w *Stopwatch) Times() []StopwatchEvent {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timesValid {
		return w.times
	}

	times := make([]StopwatchEvent, 0, len(w.keys)*2)
	for _, key := range w.keys {
		times = append(times, collapse(w.events[key])...)
	}
	w.times = times
	w.timesValid = true
	return w.times
}

func collapse(values []StopwatchEvent) []StopwatchEvent {
	first := values[0]
	epoch := first.EpochTime

	firstAdjusted := first
	firstAdjusted.Time = epoch
	firstAdjusted.EpochTime = 0

	if len(values) == 1 {
		return []StopwatchEvent{firstAdjusted}
	}

	// A trailing start was never stopped and does not count.
	if values[len(values)-1].Type == EventStart {
		values = values[:len(values)-1]
	}

	var delta float64
	for i := 0; i+1 < len(values); i += 2 {
		delta += values[i+1].Time - values[i].Time
	}

	lastAdjusted := values[len(values)-1]
	lastAdjusted.Time = math.Floor(epoch + delta)

	return []StopwatchEvent{firstAdjusted, lastAdjusted}
}

func (w *Stopwatch) warnf(format string, args ...any) {
	if w.warn != nil {
		w.warn(fmt.Sprintf(format, args...))
	}
}

// BatchEventName is the event name of a whole batch.
func BatchEventName() string { return "batch" }

// JobEventName is the event name of processing one job.
func JobEventName(name string) string { return "processing job for " + quote(name) }

// LoadEventName is the event name of loading the modules of one job.
func LoadEventName(name string) string { return "loading modules for " + quote(name) }

// LazyLoadEventName is the event name of lazily loaded modules of one job.
func LazyLoadEventName(name string) string { return "lazy loading modules for " + quote(name) }

// RenderEventName is the event name of rendering one job.
func RenderEventName(name string) string { return "rendering " + quote(name) }

// InitialPropsEventName is the event name of fetching initial props of one job.
func InitialPropsEventName(name string) string { return "getting initial props for " + quote(name) }

// quote wraps name in double quotes without escaping it.
func quote(name string) string { return `"` + name + `"` }
