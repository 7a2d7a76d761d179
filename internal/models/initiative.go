package models

// CombatantType classifies a combatant in the initiative order
type CombatantType string

const (
	CombatantTypePC      CombatantType = "pc"
	CombatantTypeNPC     CombatantType = "npc"
	CombatantTypeMonster CombatantType = "monster"
)

// IsValid reports whether the type is known
func (t CombatantType) IsValid() bool {
	switch t {
	case CombatantTypePC, CombatantTypeNPC, CombatantTypeMonster:
		return true
	}
	return false
}

// Combatant is a single entry in the turn order
type Combatant struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Initiative int           `json:"initiative"`
	HP         *int          `json:"hp,omitempty"`
	MaxHP      *int          `json:"maxHp,omitempty"`
	Type       CombatantType `json:"type"`
	Conditions []string      `json:"conditions"`
}

// HasCondition reports whether the combatant carries the named condition
func (c *Combatant) HasCondition(name string) bool {
	for _, existing := range c.Conditions {
		if existing == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy
func (c *Combatant) Clone() *Combatant {
	if c == nil {
		return nil
	}
	out := *c
	if c.HP != nil {
		hp := *c.HP
		out.HP = &hp
	}
	if c.MaxHP != nil {
		maxHP := *c.MaxHP
		out.MaxHP = &maxHP
	}
	out.Conditions = append([]string{}, c.Conditions...)
	return &out
}

// InitiativeState is the GM-owned turn order, always sent as a full snapshot
type InitiativeState struct {
	Combatants  []*Combatant `json:"combatants"`
	CurrentTurn int          `json:"currentTurn"`
	IsActive    bool         `json:"isActive"`
}

// Clone returns a deep copy so a receiver never aliases the sender's state
func (s *InitiativeState) Clone() *InitiativeState {
	if s == nil {
		return &InitiativeState{Combatants: []*Combatant{}}
	}
	out := &InitiativeState{
		Combatants:  make([]*Combatant, 0, len(s.Combatants)),
		CurrentTurn: s.CurrentTurn,
		IsActive:    s.IsActive,
	}
	for _, c := range s.Combatants {
		out.Combatants = append(out.Combatants, c.Clone())
	}
	return out
}

// Valid reports whether every combatant is present and the turn index
// invariant holds
func (s *InitiativeState) Valid() bool {
	for _, c := range s.Combatants {
		if c == nil {
			return false
		}
	}
	if len(s.Combatants) == 0 {
		return !s.IsActive && s.CurrentTurn == 0
	}
	if !s.IsActive {
		return true
	}
	return s.CurrentTurn >= 0 && s.CurrentTurn < len(s.Combatants)
}

// Normalize drops nil combatants and forces the turn index invariant: an
// empty order is never active and an active turn index is clamped into range
func (s *InitiativeState) Normalize() {
	kept := make([]*Combatant, 0, len(s.Combatants))
	for _, c := range s.Combatants {
		if c != nil {
			kept = append(kept, c)
		}
	}
	s.Combatants = kept

	if len(s.Combatants) == 0 {
		s.IsActive = false
		s.CurrentTurn = 0
		return
	}
	if s.CurrentTurn < 0 {
		s.CurrentTurn = 0
	}
	if s.CurrentTurn >= len(s.Combatants) {
		s.CurrentTurn = len(s.Combatants) - 1
	}
}

// Current returns the combatant whose turn it is, or nil when combat is not active
func (s *InitiativeState) Current() *Combatant {
	if !s.IsActive || len(s.Combatants) == 0 || !s.Valid() {
		return nil
	}
	return s.Combatants[s.CurrentTurn]
}
