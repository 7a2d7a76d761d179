package models

import (
	"time"
)

// Attributes are the three core Midnight Nation stats
type Attributes struct {
	Mind int `json:"Mind"`
	Body int `json:"Body"`
	Soul int `json:"Soul"`
}

// Character is a player character sheet
type Character struct {
	ID         string     `json:"id"`
	CampaignID string     `json:"campaignId"`
	OwnerID    string     `json:"ownerId"`
	Name       string     `json:"name"`
	Level      int        `json:"level"`
	Class      string     `json:"class"`
	Attributes Attributes `json:"attributes"`
	HP         int        `json:"hp"`
	MaxHP      int        `json:"maxHp"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
