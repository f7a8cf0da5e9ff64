package domain

import (
	"encoding/json"
	"maps"
	"sync"
)

// Metadata is a mutable key/value bag shared by reference between pipeline
// stages and plugins. It is safe for concurrent use; a nil *Metadata reads as empty.
type Metadata struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMetadata creates a Metadata holding a copy of values.
func NewMetadata(values map[string]any) *Metadata {
	m := &Metadata{values: make(map[string]any, len(values))}
	maps.Copy(m.values, values)
	return m
}

// Get returns the value stored under key.
func (m *Metadata) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// GetString returns the value stored under key if it is a string.
func (m *Metadata) GetString(key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

// Set stores value under key.
func (m *Metadata) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.values[key] = value
}

// Merge copies every entry of values into m, overwriting existing keys.
func (m *Metadata) Merge(values map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]any, len(values))
	}
	maps.Copy(m.values, values)
}

// Len returns the number of entries.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Snapshot returns a copy of the current entries.
func (m *Metadata) Snapshot() map[string]any {
	out := make(map[string]any)
	if m == nil {
		return out
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	maps.Copy(out, m.values)
	return out
}

// MarshalJSON encodes the current entries as a JSON object.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Snapshot())
}

// UnmarshalJSON replaces the entries with the decoded JSON object.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = values
	if m.values == nil {
		m.values = make(map[string]any)
	}
	return nil
}
