package storage

import (
	"time"

	"gorm.io/gorm"

	"github.com/phillipDoubleU/showdex/internal/dex"
)

// MoveRecord is the persisted shape of one dex entry. The nested optional
// payloads are flattened into nullable-ish columns (zero means absent) so
// the schema stays plain and queryable.
type MoveRecord struct {
	gorm.Model
	Name      string `gorm:"uniqueIndex:idx_move_dex_name_format"`
	Canonical string `gorm:"index"`
	Format    string `gorm:"uniqueIndex:idx_move_dex_name_format"`
	Type      string
	Category  string
	BasePower int
	Priority  int

	RecoilNum int
	RecoilDen int
	DrainNum  int
	DrainDen  int

	StatSelfTarget bool
	StatAtk        int
	StatDef        int
	StatSpA        int
	StatSpD        int
	StatSpe        int

	Status          string
	FieldWeather    string
	FieldTerrain    string
	FieldTrickRoom  bool
	SelfSwitch      bool
	SecondaryChance int
	SecondaryEffect string
	HitsMin         int
	HitsMax         int
}

// TableName overrides the default GORM table name so the persisted table
// is `move_dex`.
func (MoveRecord) TableName() string { return "move_dex" }

func recordFromMove(m *dex.Move) MoveRecord {
	r := MoveRecord{
		Name:      m.Name,
		Canonical: dex.CanonicalName(m.Name),
		Format:    m.Format,
		Type:      m.Type,
		Category:  string(m.Category),
		BasePower: m.BasePower,
		Priority:  m.Priority,
		Status:    m.Status,
	}
	if m.Recoil != nil {
		r.RecoilNum, r.RecoilDen = m.Recoil.Numerator, m.Recoil.Denominator
	}
	if m.Drain != nil {
		r.DrainNum, r.DrainDen = m.Drain.Numerator, m.Drain.Denominator
	}
	if m.StatChange != nil {
		r.StatSelfTarget = m.StatChange.SelfTarget
		r.StatAtk, r.StatDef = m.StatChange.Atk, m.StatChange.Def
		r.StatSpA, r.StatSpD = m.StatChange.SpA, m.StatChange.SpD
		r.StatSpe = m.StatChange.Spe
	}
	if m.Field != nil {
		r.FieldWeather, r.FieldTerrain = m.Field.Weather, m.Field.Terrain
		r.FieldTrickRoom = m.Field.TrickRoom
	}
	r.SelfSwitch = m.SelfSwitch
	if m.Secondary != nil {
		r.SecondaryChance, r.SecondaryEffect = m.Secondary.Chance, m.Secondary.Effect
	}
	if m.MultiHit != nil {
		r.HitsMin, r.HitsMax = m.MultiHit.Min, m.MultiHit.Max
	}
	return r
}

func (r *MoveRecord) toMove() dex.Move {
	m := dex.Move{
		Name:       r.Name,
		Format:     r.Format,
		Type:       r.Type,
		Category:   dex.Category(r.Category),
		BasePower:  r.BasePower,
		Priority:   r.Priority,
		Status:     r.Status,
		SelfSwitch: r.SelfSwitch,
	}
	if r.RecoilDen > 0 {
		m.Recoil = &dex.Fraction{Numerator: r.RecoilNum, Denominator: r.RecoilDen}
	}
	if r.DrainDen > 0 {
		m.Drain = &dex.Fraction{Numerator: r.DrainNum, Denominator: r.DrainDen}
	}
	if r.StatAtk != 0 || r.StatDef != 0 || r.StatSpA != 0 || r.StatSpD != 0 || r.StatSpe != 0 {
		m.StatChange = &dex.StatDeltas{
			SelfTarget: r.StatSelfTarget,
			Atk:        r.StatAtk, Def: r.StatDef,
			SpA: r.StatSpA, SpD: r.StatSpD, Spe: r.StatSpe,
		}
	}
	if r.FieldWeather != "" || r.FieldTerrain != "" || r.FieldTrickRoom {
		m.Field = &dex.FieldPayload{Weather: r.FieldWeather, Terrain: r.FieldTerrain, TrickRoom: r.FieldTrickRoom}
	}
	if r.SecondaryChance > 0 {
		m.Secondary = &dex.Secondary{Chance: r.SecondaryChance, Effect: r.SecondaryEffect}
	}
	if r.HitsMax > 0 {
		m.MultiHit = &dex.HitRange{Min: r.HitsMin, Max: r.HitsMax}
	}
	return m
}

// SimulationRecord is the durable trace of one finished simulation
// session.
type SimulationRecord struct {
	gorm.Model
	BattleID      string `gorm:"uniqueIndex"`
	Format        string
	TurnsAdvanced int
	StartedAt     time.Time
	FinishedAt    time.Time
}

// TableName keeps the history under `simulation_history`.
func (SimulationRecord) TableName() string { return "simulation_history" }
