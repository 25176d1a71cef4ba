package entities

import (
	"strings"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusDiscovery CampaignStatus = "discovery"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusReviewing CampaignStatus = "reviewing"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

type Campaign struct {
	CampaignID     string
	BrandID        string
	Title          string
	Description    string
	Status         CampaignStatus
	BudgetTotal    float64
	BudgetReserved float64
	BudgetSpent    float64
	TimelineStart  *time.Time
	TimelineEnd    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LaunchedAt     *time.Time
	CompletedAt    *time.Time
}

// StateHistory is the append-only audit trail of status moves.
type StateHistory struct {
	HistoryID    string
	CampaignID   string
	FromStatus   CampaignStatus
	ToStatus     CampaignStatus
	ChangedBy    string
	ChangeReason string
	CreatedAt    time.Time
}

func (c Campaign) ValidateCreate() bool {
	return strings.TrimSpace(c.BrandID) != "" &&
		strings.TrimSpace(c.Title) != "" &&
		c.BudgetTotal >= 0
}

func (c Campaign) IsTerminal() bool {
	switch c.Status {
	case CampaignStatusCompleted, CampaignStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo encodes the campaign lifecycle: a forward chain through
// draft, discovery, active, reviewing, completed, with cancellation open
// from any non-terminal status.
func (c Campaign) CanTransitionTo(next CampaignStatus) bool {
	if next == CampaignStatusCancelled {
		return !c.IsTerminal()
	}
	switch c.Status {
	case CampaignStatusDraft:
		return next == CampaignStatusDiscovery
	case CampaignStatusDiscovery:
		return next == CampaignStatusActive
	case CampaignStatusActive:
		return next == CampaignStatusReviewing
	case CampaignStatusReviewing:
		return next == CampaignStatusCompleted
	default:
		return false
	}
}

// CanDefineDeliverables reports whether the checklist is still editable.
// Once the campaign leaves its setup phase the list is locked for good.
func (c Campaign) CanDefineDeliverables() bool {
	return c.Status == CampaignStatusDraft || c.Status == CampaignStatusDiscovery
}

// IsAcceptingDeliverables is the deliverable service's submit precondition.
func IsAcceptingDeliverables(status CampaignStatus) bool {
	return status == CampaignStatusActive || status == CampaignStatusReviewing
}

func IsSupportedCampaignStatus(value CampaignStatus) bool {
	switch value {
	case CampaignStatusDraft,
		CampaignStatusDiscovery,
		CampaignStatusActive,
		CampaignStatusReviewing,
		CampaignStatusCompleted,
		CampaignStatusCancelled:
		return true
	default:
		return false
	}
}
