package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phillipDoubleU/showdex/internal/battle"
	"github.com/phillipDoubleU/showdex/internal/calc"
	"github.com/phillipDoubleU/showdex/internal/dex"
	"github.com/phillipDoubleU/showdex/internal/engine"
	"github.com/phillipDoubleU/showdex/internal/logging"
)

// ErrSessionNotFound is returned for unknown battle identifiers.
var ErrSessionNotFound = errors.New("session not found")

// SummarySink receives the durable summary of a finished session. The
// storage layer implements it; a nil sink means summaries are dropped.
type SummarySink interface {
	SaveSummary(s battle.SimulationSummary) error
}

// Manager owns every live session, keyed by an opaque battle identifier.
// Session state is explicitly non-persistent: removing a session discards
// it, and only the closing summary reaches the sink.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	moves  dex.MoveSource
	stats  calc.StatCalculator
	damage calc.DamageCalculator
	rng    engine.Rand
	format string
	sink   SummarySink
}

// NewManager wires a manager from the engine's collaborators. The random
// source seeds every session's tie-breaks; supply a fixed seed for
// reproducible simulations.
func NewManager(moves dex.MoveSource, stats calc.StatCalculator, damage calc.DamageCalculator, rng engine.Rand, format string, sink SummarySink) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		moves:    moves,
		stats:    stats,
		damage:   damage,
		rng:      rng,
		format:   format,
		sink:     sink,
	}
}

// Start creates a session around a deep copy of the live snapshot and
// returns its battle identifier.
func (m *Manager) Start(live *battle.Snapshot) (*Session, error) {
	id := uuid.NewString()
	s := newSession(id, m.format, engine.NewOrchestrator(m.moves, m.stats, m.damage, m.rng, m.format))
	if err := s.Start(live); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	logging.Info("simulation session started", logging.Fields{"battle_id": id, "format": m.format})
	return s, nil
}

// Get returns the session for the given battle identifier.
func (m *Manager) Get(battleID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[battleID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove resets the session, forwards its summary to the sink and drops
// it from the registry.
func (m *Manager) Remove(battleID string) error {
	m.mu.Lock()
	s, ok := m.sessions[battleID]
	if ok {
		delete(m.sessions, battleID)
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	summary := s.Reset()
	if m.sink != nil {
		if err := m.sink.SaveSummary(summary); err != nil {
			logging.Error("failed to persist simulation summary", err, logging.Fields{"battle_id": battleID})
		}
	}
	logging.Info("simulation session discarded", logging.Fields{"battle_id": battleID, "turns": summary.TurnsAdvanced})
	return nil
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes sessions idle for longer than ttl and returns how many
// were expired.
func (m *Manager) Sweep(now time.Time, ttl time.Duration) int {
	m.mu.Lock()
	var stale []string
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) > ttl {
			stale = append(stale, id)
		}
	}
	m.mu.Unlock()

	for _, id := range stale {
		if err := m.Remove(id); err == nil {
			logging.Info("expired idle simulation session", logging.Fields{"battle_id": id})
		}
	}
	return len(stale)
}

// StartSweeper runs Sweep on a ticker until stop is closed.
func (m *Manager) StartSweeper(interval, ttl time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				m.Sweep(now, ttl)
			}
		}
	}()
}
