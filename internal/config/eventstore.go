package config

import (
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// eventState is the durable, point-writable event configuration. Unlike the
// env config it is mutated at runtime (the start trigger flips IsStarted),
// so every write is persisted back to the file immediately.
type eventState struct {
	Server    string   `yaml:"server"`
	Admins    []string `yaml:"admins"`
	StartTime int64    `yaml:"start_time"`
	IsStarted bool     `yaml:"is_started"`
	StartedBy string   `yaml:"started_by"`
}

// EventStore owns the YAML event file. All reads and writes go through the
// store; nothing else touches the file while the process is running.
type EventStore struct {
	path string

	mu    sync.RWMutex
	state eventState
}

// LoadEventStore reads the event file at path. A missing file is an error:
// the server id and admin list have no sensible defaults.
func LoadEventStore(path string) (*EventStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event file: %w", err)
	}

	var state eventState
	if err := yaml.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("parsing event file: %w", err)
	}

	return &EventStore{path: path, state: state}, nil
}

// ServerID returns the Discord guild id participants must be a member of.
func (s *EventStore) ServerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Server
}

// IsAdmin reports whether the snowflake is on the admin allow-list.
func (s *EventStore) IsAdmin(snowflake string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.state.Admins, snowflake)
}

// StartTime returns the configured event start time.
func (s *EventStore) StartTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Unix(s.state.StartTime, 0)
}

// Started reports whether the event has been started and, if so, by whom.
func (s *EventStore) Started() (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsStarted, s.state.StartedBy
}

// MarkStarted flips the one-shot started flag and records who pulled the
// trigger, persisting immediately.
func (s *EventStore) MarkStarted(snowflake string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsStarted = true
	s.state.StartedBy = snowflake
	return s.save()
}

func (s *EventStore) save() error {
	raw, err := yaml.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encoding event file: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing event file: %w", err)
	}
	return nil
}
