package protocol

import (
	"encoding/json"
	"testing"

	"github.com/KirkDiggler/midnight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFramesMatchWireNames(t *testing.T) {
	raw := `{"event":"update-initiative","data":{"campaignId":"camp-1","combatants":[{"id":"x","name":"Xan","initiative":15,"type":"pc","conditions":["prone"]}],"currentTurn":0,"isActive":true}}`

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	assert.Equal(t, EventUpdateInitiative, env.Event)

	var payload UpdateInitiativePayload
	require.NoError(t, env.Decode(&payload))
	assert.Equal(t, "camp-1", payload.CampaignID)

	state := payload.State()
	require.Len(t, state.Combatants, 1)
	assert.Equal(t, "Xan", state.Combatants[0].Name)
	assert.Equal(t, models.CombatantTypePC, state.Combatants[0].Type)
	assert.True(t, state.IsActive)
}

func TestDecodeCampaignID(t *testing.T) {
	env, err := NewEnvelope(EventJoinCampaign, "", "camp-1")
	require.NoError(t, err)

	campaignID, err := env.DecodeCampaignID()
	require.NoError(t, err)
	assert.Equal(t, "camp-1", campaignID)

	empty, err := NewEnvelope(EventJoinCampaign, "", "")
	require.NoError(t, err)
	_, err = empty.DecodeCampaignID()
	assert.Error(t, err)

	_, err = (&Envelope{Event: EventLeaveCampaign}).DecodeCampaignID()
	assert.Error(t, err)
}

func TestServerInitiativeFrameOmitsCampaignFromPayload(t *testing.T) {
	state := &models.InitiativeState{Combatants: []*models.Combatant{}, CurrentTurn: 0}
	env, err := NewEnvelope(EventInitiativeUpdate, "camp-1", state)
	require.NoError(t, err)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"initiative-update","campaignId":"camp-1","data":{"combatants":[],"currentTurn":0,"isActive":false}}`, string(raw))
}
