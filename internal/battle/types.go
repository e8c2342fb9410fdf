package battle

// SideKey identifies one of the two participants in a simulated battle.
// Using a dedicated type instead of plain string makes code safer and
// self-documenting.
type SideKey string

const (
	SidePlayer   SideKey = "p1"
	SideOpponent SideKey = "p2"
)

// ValidSideKey reports whether key names one of the two battle sides.
func ValidSideKey(key SideKey) bool {
	return key == SidePlayer || key == SideOpponent
}

// Opposing returns the other side's key.
func Opposing(key SideKey) SideKey {
	if key == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

// StatusCondition is a non-volatile status tag ("brn", "par", "psn",
// "tox", "slp", "frz"). Empty means healthy.
type StatusCondition string

const (
	StatusNone      StatusCondition = ""
	StatusBurn      StatusCondition = "brn"
	StatusParalysis StatusCondition = "par"
	StatusPoison    StatusCondition = "psn"
	StatusToxic     StatusCondition = "tox"
	StatusSleep     StatusCondition = "slp"
	StatusFreeze    StatusCondition = "frz"
)

// BaseStats are a combatant's fully trained stat values.
type BaseStats struct {
	HP  int `json:"hp"`
	Atk int `json:"atk"`
	Def int `json:"def"`
	SpA int `json:"spa"`
	SpD int `json:"spd"`
	Spe int `json:"spe"`
}

// StatStages are in-battle stage modifiers in the conventional -6..+6
// range.
type StatStages struct {
	Atk int `json:"atk"`
	Def int `json:"def"`
	SpA int `json:"spa"`
	SpD int `json:"spd"`
	Spe int `json:"spe"`
}

// Combatant is one battler. Only the effect pipeline mutates combatants,
// and always on a cloned snapshot.
type Combatant struct {
	Name      string          `json:"name"`
	Level     int             `json:"level"`
	CurrentHP int             `json:"current_hp"`
	MaxHP     int             `json:"max_hp"`
	Stats     BaseStats       `json:"stats"`
	Stages    StatStages      `json:"stages"`
	Status    StatusCondition `json:"status"`
	Moves     []string        `json:"moves"`
	Fainted   bool            `json:"fainted"`
}

// Clone returns an independent copy of the combatant.
func (c *Combatant) Clone() *Combatant {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Moves = append([]string(nil), c.Moves...)
	return &cp
}

// SideConditions holds side-scoped field state (screens, hazards). The
// baseline pipeline does not mutate these yet; the shape exists so later
// stages can.
type SideConditions struct {
	Reflect      bool `json:"reflect"`
	LightScreen  bool `json:"light_screen"`
	SpikesLayers int  `json:"spikes_layers"`
	StealthRock  bool `json:"stealth_rock"`
}

// Side is one player's half of the battle: their combatants, which one is
// currently active, and side-scoped conditions.
type Side struct {
	Key         SideKey        `json:"key"`
	Name        string         `json:"name"`
	Combatants  []Combatant    `json:"combatants"`
	ActiveIndex int            `json:"active_index"`
	Conditions  SideConditions `json:"conditions"`
}

// Active returns the side's active combatant, or nil when the active slot
// is empty or the active combatant has fainted.
func (s *Side) Active() *Combatant {
	if s == nil || s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Combatants) {
		return nil
	}
	c := &s.Combatants[s.ActiveIndex]
	if c.Fainted {
		return nil
	}
	return c
}

// ReserveIndexes lists the indexes of combatants eligible to replace the
// active one (not fainted, not currently active).
func (s *Side) ReserveIndexes() []int {
	if s == nil {
		return nil
	}
	var out []int
	for i := range s.Combatants {
		if i == s.ActiveIndex || s.Combatants[i].Fainted {
			continue
		}
		out = append(out, i)
	}
	return out
}

// Clone returns an independent copy of the side.
func (s *Side) Clone() *Side {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Combatants = make([]Combatant, len(s.Combatants))
	for i := range s.Combatants {
		cp.Combatants[i] = *s.Combatants[i].Clone()
	}
	return &cp
}

// FieldConditions are global battle modifiers. TrickRoom reverses the
// speed order when priorities tie.
type FieldConditions struct {
	Weather   string `json:"weather"`
	Terrain   string `json:"terrain"`
	TrickRoom bool   `json:"trick_room"`
	TurnCount int    `json:"turn_count"`
}

// Snapshot is the full battle state at a point in speculative time. A
// snapshot is never mutated after being produced: every pipeline call
// works on a fresh clone of its input.
type Snapshot struct {
	Sides map[SideKey]*Side `json:"sides"`
	Field FieldConditions   `json:"field"`
}

// Side returns the side for key, or nil for an unknown key.
func (sn *Snapshot) Side(key SideKey) *Side {
	if sn == nil || sn.Sides == nil {
		return nil
	}
	return sn.Sides[key]
}

// Clone returns a deep, fully independent copy of the snapshot.
func (sn *Snapshot) Clone() *Snapshot {
	if sn == nil {
		return nil
	}
	cp := &Snapshot{
		Sides: make(map[SideKey]*Side, len(sn.Sides)),
		Field: sn.Field,
	}
	for k, s := range sn.Sides {
		cp.Sides[k] = s.Clone()
	}
	return cp
}

// ActionSpec is a (side, move) selection for one upcoming turn. It is
// transient: it exists only between selection and orchestration.
type ActionSpec struct {
	Side SideKey `json:"side"`
	Move string  `json:"move"`
}
