package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/phillipDoubleU/showdex/internal/battle"
	"github.com/phillipDoubleU/showdex/internal/dex"
)

type sqliteRepository struct {
	db *gorm.DB
	// seedByKey maps format + canonical name -> seed definition. The seed
	// file is the source of truth for move mechanics; DB rows only carry
	// what was seeded, so the cache also spares a query per lookup.
	seedByKey map[string]dex.Move
}

// NewSQLiteRepository wraps the database in the Repository interface. The
// seed list primes the in-memory lookup cache.
func NewSQLiteRepository(db *gorm.DB, seed []dex.Move) Repository {
	m := make(map[string]dex.Move, len(seed))
	for _, mv := range seed {
		m[mv.Format+"/"+dex.CanonicalName(mv.Name)] = mv
	}
	return &sqliteRepository{db: db, seedByKey: m}
}

func (r *sqliteRepository) Move(name, format string) (*dex.Move, error) {
	if mv, ok := r.seedByKey[format+"/"+dex.CanonicalName(name)]; ok {
		cp := mv
		return &cp, nil
	}
	var rec MoveRecord
	err := r.db.Where("canonical = ? AND format = ?", dex.CanonicalName(name), format).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s (%s)", dex.ErrUnknownMove, name, format)
		}
		return nil, err
	}
	mv := rec.toMove()
	return &mv, nil
}

func (r *sqliteRepository) ListMoves(format string) ([]dex.Move, error) {
	q := r.db.Order("name asc")
	if format != "" {
		q = q.Where("format = ?", format)
	}
	var recs []MoveRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]dex.Move, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toMove())
	}
	return out, nil
}

func (r *sqliteRepository) SaveSummary(s battle.SimulationSummary) error {
	rec := SimulationRecord{
		BattleID:      s.BattleID,
		Format:        s.Format,
		TurnsAdvanced: s.TurnsAdvanced,
		StartedAt:     s.StartedAt,
		FinishedAt:    s.FinishedAt,
	}
	return r.db.Create(&rec).Error
}

func (r *sqliteRepository) ListSummaries(limit int) ([]battle.SimulationSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	var recs []SimulationRecord
	if err := r.db.Order("finished_at desc").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]battle.SimulationSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, battle.SimulationSummary{
			BattleID:      rec.BattleID,
			Format:        rec.Format,
			TurnsAdvanced: rec.TurnsAdvanced,
			StartedAt:     rec.StartedAt,
			FinishedAt:    rec.FinishedAt,
		})
	}
	return out, nil
}
