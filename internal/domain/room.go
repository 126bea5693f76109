package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Room is a live-broadcast stream and the unit of membership.
type Room struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Creator     string `json:"creator"`
	CreatedAt   string `json:"createdAt"`
	MarketCap   string `json:"marketCap"`
	Viewers     int    `json:"viewers"`
	Thumbnail   string `json:"thumbnail"`
	Ticker      string `json:"ticker"`
	CoinAddress string `json:"coinAddress"`
	Description string `json:"description,omitempty"`
	IsLive      bool   `json:"isLive"`
}

// Defaults applied to rooms announced without them.
const (
	DefaultMarketCap = "0"
	DefaultThumbnail = "/api/placeholder/400/300"
)

// Role is a participant's role in one room.
type Role string

const (
	RoleHost     Role = "host"
	RoleAudience Role = "audience"
	// RoleNone means the participant holds no role; encoded as JSON null.
	RoleNone Role = ""
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleHost, RoleAudience, RoleNone:
		return true
	}
	return false
}

// MarshalJSON encodes RoleNone as null.
func (r Role) MarshalJSON() ([]byte, error) {
	if r == RoleNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

// UnmarshalJSON decodes null as RoleNone and rejects unknown roles.
func (r *Role) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*r = RoleNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role := Role(s)
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", s)
	}
	*r = role
	return nil
}

// StreamMetadata is the role map of one room.
type StreamMetadata struct {
	LastUpdated int64           `json:"lastUpdated"`
	RoleMap     map[string]Role `json:"roleMap"`
}

// NewStreamMetadata returns metadata with an empty role map.
func NewStreamMetadata() *StreamMetadata {
	return &StreamMetadata{RoleMap: make(map[string]Role)}
}

// ChatMessage is one immutable chat line.
type ChatMessage struct {
	Username  string `json:"username"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // epoch ms
}
