package entities

import (
	"strings"
	"time"
)

type InvitationStatus string

const (
	InvitationStatusPending     InvitationStatus = "pending"
	InvitationStatusNegotiating InvitationStatus = "negotiating"
	InvitationStatusAccepted    InvitationStatus = "accepted"
	InvitationStatusDeclined    InvitationStatus = "declined"
	InvitationStatusWithdrawn   InvitationStatus = "withdrawn"
	InvitationStatusExpired     InvitationStatus = "expired"
)

// DeliverableSpec is the per-invitation copy of what the creator is being
// asked to produce. The authoritative checklist lives with the campaign.
type DeliverableSpec struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type Invitation struct {
	InvitationID        string
	CampaignID          string
	BrandID             string
	CreatorID           string
	Status              InvitationStatus
	BasePayout          float64
	OfferedPayout       float64
	NegotiatedDelta     *float64
	Deliverables        []DeliverableSpec
	TimelineStart       *time.Time
	TimelineEnd         *time.Time
	SpecialRequirements string
	ExpiresAt           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	RespondedAt         *time.Time

	// Version increments on every write. The concurrency guard keys on it
	// rather than on status, so same-state transitions (counter-offer over
	// counter-offer) still detect a racing writer.
	Version int64
}

func (i Invitation) ValidateCreate() bool {
	return strings.TrimSpace(i.CampaignID) != "" &&
		strings.TrimSpace(i.BrandID) != "" &&
		strings.TrimSpace(i.CreatorID) != "" &&
		i.OfferedPayout > 0
}

func (i Invitation) IsTerminal() bool {
	switch i.Status {
	case InvitationStatusAccepted, InvitationStatusDeclined, InvitationStatusWithdrawn, InvitationStatusExpired:
		return true
	default:
		return false
	}
}

// IsLive reports whether the invitation still binds the creator to the
// campaign: an open offer or an accepted collaboration.
func (i Invitation) IsLive() bool {
	switch i.Status {
	case InvitationStatusPending, InvitationStatusNegotiating, InvitationStatusAccepted:
		return true
	default:
		return false
	}
}

// CanTransitionTo encodes the invitation state machine. Terminal states
// absorb; expiry only applies to offers the creator never responded to.
func (i Invitation) CanTransitionTo(next InvitationStatus) bool {
	switch i.Status {
	case InvitationStatusPending:
		switch next {
		case InvitationStatusNegotiating,
			InvitationStatusAccepted,
			InvitationStatusDeclined,
			InvitationStatusWithdrawn,
			InvitationStatusExpired:
			return true
		}
	case InvitationStatusNegotiating:
		switch next {
		case InvitationStatusNegotiating,
			InvitationStatusAccepted,
			InvitationStatusDeclined,
			InvitationStatusWithdrawn:
			return true
		}
	}
	return false
}

func IsSupportedStatus(value InvitationStatus) bool {
	switch value {
	case InvitationStatusPending,
		InvitationStatusNegotiating,
		InvitationStatusAccepted,
		InvitationStatusDeclined,
		InvitationStatusWithdrawn,
		InvitationStatusExpired:
		return true
	default:
		return false
	}
}
