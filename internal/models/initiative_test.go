package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestInitiativeStateValid(t *testing.T) {
	two := []*Combatant{{ID: "a"}, {ID: "b"}}

	tests := []struct {
		name  string
		state *InitiativeState
		want  bool
	}{
		{"empty inactive", &InitiativeState{}, true},
		{"empty active", &InitiativeState{IsActive: true}, false},
		{"empty with turn", &InitiativeState{CurrentTurn: 1}, false},
		{"inactive ignores turn", &InitiativeState{Combatants: two, CurrentTurn: 5}, true},
		{"active in range", &InitiativeState{Combatants: two, CurrentTurn: 1, IsActive: true}, true},
		{"active past end", &InitiativeState{Combatants: two, CurrentTurn: 2, IsActive: true}, false},
		{"active negative", &InitiativeState{Combatants: two, CurrentTurn: -1, IsActive: true}, false},
		{"null combatant", &InitiativeState{Combatants: []*Combatant{nil}}, false},
		{"null among others", &InitiativeState{Combatants: []*Combatant{{ID: "a"}, nil}, IsActive: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Valid())
		})
	}
}

func TestInitiativeStateNormalize(t *testing.T) {
	empty := &InitiativeState{CurrentTurn: 3, IsActive: true}
	empty.Normalize()
	assert.NotNil(t, empty.Combatants)
	assert.False(t, empty.IsActive)
	assert.Equal(t, 0, empty.CurrentTurn)
	assert.True(t, empty.Valid())

	past := &InitiativeState{
		Combatants:  []*Combatant{{ID: "a"}, {ID: "b"}},
		CurrentTurn: 7,
		IsActive:    true,
	}
	past.Normalize()
	assert.Equal(t, 1, past.CurrentTurn)
	assert.True(t, past.Valid())

	negative := &InitiativeState{
		Combatants:  []*Combatant{{ID: "a"}},
		CurrentTurn: -2,
		IsActive:    true,
	}
	negative.Normalize()
	assert.Equal(t, 0, negative.CurrentTurn)

	withNulls := &InitiativeState{
		Combatants:  []*Combatant{nil, {ID: "a"}, nil, {ID: "b"}},
		CurrentTurn: 3,
		IsActive:    true,
	}
	withNulls.Normalize()
	require.Len(t, withNulls.Combatants, 2)
	assert.Equal(t, "a", withNulls.Combatants[0].ID)
	assert.Equal(t, 1, withNulls.CurrentTurn)
	assert.True(t, withNulls.Valid())

	allNull := &InitiativeState{Combatants: []*Combatant{nil}, IsActive: true}
	allNull.Normalize()
	assert.Empty(t, allNull.Combatants)
	assert.False(t, allNull.IsActive)
}

func TestInitiativeStateCurrent(t *testing.T) {
	state := &InitiativeState{
		Combatants: []*Combatant{{ID: "a"}, {ID: "b"}},
	}
	assert.Nil(t, state.Current())

	state.IsActive = true
	state.CurrentTurn = 1
	require.NotNil(t, state.Current())
	assert.Equal(t, "b", state.Current().ID)

	state.CurrentTurn = 4
	assert.Nil(t, state.Current())
}

func TestInitiativeStateCloneIsDeep(t *testing.T) {
	original := &InitiativeState{
		Combatants: []*Combatant{{
			ID:         "g1",
			Name:       "Goblin",
			HP:         intPtr(7),
			MaxHP:      intPtr(7),
			Type:       CombatantTypeMonster,
			Conditions: []string{"prone"},
		}},
		IsActive: true,
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	*clone.Combatants[0].HP = 2
	clone.Combatants[0].Conditions[0] = "stunned"
	clone.Combatants[0].Name = "Hobgoblin"

	assert.Equal(t, 7, *original.Combatants[0].HP)
	assert.Equal(t, []string{"prone"}, original.Combatants[0].Conditions)
	assert.Equal(t, "Goblin", original.Combatants[0].Name)

	var missing *InitiativeState
	assert.Equal(t, &InitiativeState{Combatants: []*Combatant{}}, missing.Clone())
}

func TestCombatantHasCondition(t *testing.T) {
	c := &Combatant{Conditions: []string{"prone", "blinded"}}
	assert.True(t, c.HasCondition("blinded"))
	assert.False(t, c.HasCondition("Blinded"))
	assert.False(t, (&Combatant{}).HasCondition("prone"))
}

func TestEnumValidity(t *testing.T) {
	for _, m := range []AdvantageMode{AdvantageModeNormal, AdvantageModeAdvantage, AdvantageModeDisadvantage} {
		assert.True(t, m.IsValid(), m)
	}
	assert.False(t, AdvantageMode("").IsValid())
	assert.False(t, AdvantageMode("lucky").IsValid())

	for _, ct := range []CombatantType{CombatantTypePC, CombatantTypeNPC, CombatantTypeMonster} {
		assert.True(t, ct.IsValid(), ct)
	}
	assert.False(t, CombatantType("dragon").IsValid())
}
