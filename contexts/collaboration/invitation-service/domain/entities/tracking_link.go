package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// TrackingLink is the attribution link generated for a creator the moment an
// invitation is accepted. It is created in the same transaction as the
// accept transition.
type TrackingLink struct {
	LinkID       string
	CampaignID   string
	CreatorID    string
	InvitationID string
	Code         string
	URL          string
	CreatedAt    time.Time
}

// TrackingCode derives a short stable code from the link id.
func TrackingCode(linkID string) string {
	sum := sha256.Sum256([]byte(linkID))
	return hex.EncodeToString(sum[:])[:12]
}

func TrackingURL(baseURL, code string) string {
	return strings.TrimRight(baseURL, "/") + "/t/" + code
}
