package dex

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type seedFile struct {
	Format string `json:"format"`
	Moves  []Move `json:"moves"`
}

// LoadSeed reads the dex seed file at path and returns the moves it
// declares. The file provides a default format tag applied to entries
// that omit one. Cross-entry validation rejects duplicate canonical
// names within a format and malformed fractions or ranges.
func LoadSeed(path string) ([]Move, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dex seed file %s: %w", path, err)
	}
	var sf seedFile
	if err := json.Unmarshal(b, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse dex seed file %s: %w", path, err)
	}
	if len(sf.Moves) == 0 {
		return nil, fmt.Errorf("dex seed file %s: 'moves' is empty (provide a 'moves' array)", path)
	}

	seen := make(map[string]struct{}, len(sf.Moves))
	out := make([]Move, 0, len(sf.Moves))
	for _, m := range sf.Moves {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("dex seed file %s: move entry missing 'name'", path)
		}
		if m.Format == "" {
			m.Format = sf.Format
		}
		key := m.Format + "/" + CanonicalName(m.Name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("dex seed file %s: duplicate move '%s' in format '%s'", path, m.Name, m.Format)
		}
		seen[key] = struct{}{}
		if err := validateMove(&m); err != nil {
			return nil, fmt.Errorf("dex seed file %s: move '%s': %w", path, m.Name, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func validateMove(m *Move) error {
	switch m.Category {
	case CategoryPhysical, CategorySpecial, CategoryStatus, "":
	default:
		return fmt.Errorf("unknown category '%s'", m.Category)
	}
	if m.Recoil != nil && (m.Recoil.Numerator <= 0 || m.Recoil.Denominator <= 0) {
		return fmt.Errorf("recoil fraction must have positive numerator and denominator")
	}
	if m.Drain != nil && (m.Drain.Numerator <= 0 || m.Drain.Denominator <= 0) {
		return fmt.Errorf("drain fraction must have positive numerator and denominator")
	}
	if m.Status != "" {
		tag, ok := CanonicalStatus(m.Status)
		if !ok {
			return fmt.Errorf("unknown status '%s'", m.Status)
		}
		m.Status = tag
	}
	if m.Secondary != nil {
		if m.Secondary.Chance <= 0 || m.Secondary.Chance > 100 {
			return fmt.Errorf("secondary chance must be in 1..100")
		}
		tag, ok := CanonicalStatus(m.Secondary.Effect)
		if !ok {
			return fmt.Errorf("unknown secondary effect '%s'", m.Secondary.Effect)
		}
		m.Secondary.Effect = tag
	}
	if m.MultiHit != nil && (m.MultiHit.Min < 1 || m.MultiHit.Max < m.MultiHit.Min) {
		return fmt.Errorf("multi-hit range must satisfy 1 <= min <= max")
	}
	return nil
}

// StaticSource is an in-memory MoveSource keyed by format and canonical
// name. It backs tests and serves as a fallback when no database is
// configured.
type StaticSource struct {
	moves map[string]*Move
}

// NewStaticSource builds a StaticSource from a move list.
func NewStaticSource(moves []Move) *StaticSource {
	s := &StaticSource{moves: make(map[string]*Move, len(moves))}
	for i := range moves {
		m := moves[i]
		s.moves[m.Format+"/"+CanonicalName(m.Name)] = &m
	}
	return s
}

// Move implements MoveSource.
func (s *StaticSource) Move(name, format string) (*Move, error) {
	if m, ok := s.moves[format+"/"+CanonicalName(name)]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, fmt.Errorf("%w: %s (%s)", ErrUnknownMove, name, format)
}
