package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

// InvitationView is the dashboard's denormalized slice of an invitation.
// Negotiation state rides along because it is denormalized onto the
// invitation row upstream.
type InvitationView struct {
	InvitationID    string
	CampaignID      string
	BrandID         string
	CreatorID       string
	Status          string
	OfferedPayout   float64
	NegotiatedDelta *float64
	UpdatedAt       time.Time
}

// InvitationSource is bound to the invitation service by the composition
// root.
type InvitationSource interface {
	ListByBrand(ctx context.Context, brandID string) ([]InvitationView, error)
	ListByCreator(ctx context.Context, creatorID string) ([]InvitationView, error)
}

type DeliverableProgressView struct {
	DeliverableID string
	Title         string
	State         string
}

type ProgressView struct {
	Items       []DeliverableProgressView
	AllApproved bool
}

// ProgressSource exposes the deliverable service's derived per-creator
// progress for one campaign.
type ProgressSource interface {
	GetProgress(ctx context.Context, campaignID, creatorID string) (ProgressView, error)
}

type CampaignView struct {
	CampaignID string
	Title      string
	Status     string
}

type CampaignSource interface {
	GetCampaign(ctx context.Context, campaignID string) (CampaignView, error)
}

// NegotiationQueue is the brand-side projection: live invitations that
// need brand attention, newest movement first.
type NegotiationQueue struct {
	BrandID          string
	PendingCount     int
	NegotiatingCount int
	Entries          []InvitationView
	GeneratedAt      time.Time
}

type InboxEntry struct {
	Invitation    InvitationView
	CampaignTitle string

	// Progress is populated only for accepted invitations.
	Progress *ProgressView
}

// CreatorInbox is the creator-side projection: every invitation addressed
// to the creator plus deliverable progress where a collaboration is live.
type CreatorInbox struct {
	CreatorID   string
	Entries     []InboxEntry
	GeneratedAt time.Time
}
