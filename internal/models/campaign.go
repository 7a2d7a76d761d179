package models

import (
	"time"
)

// Campaign is a game run by a single GM
type Campaign struct {
	// ID is the unique identifier for the campaign, also the room key
	ID string `json:"id"`

	Name string `json:"name"`

	// GMID is the user id of the game master
	GMID string `json:"gmId"`

	// PlayerIDs contains the user ids of the players
	PlayerIDs []string `json:"playerIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsGM reports whether userID runs the campaign
func (c *Campaign) IsGM(userID string) bool {
	return userID != "" && c.GMID == userID
}
