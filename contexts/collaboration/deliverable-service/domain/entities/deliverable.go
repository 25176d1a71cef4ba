package entities

import (
	"strings"
	"time"
)

// Deliverable is the campaign-side checklist item a creator is expected to
// produce. The list is locked once the campaign leaves its setup phase.
type Deliverable struct {
	DeliverableID    string
	CampaignID       string
	DeliverableIndex int
	Title            string
	Type             string
	CreatedAt        time.Time
}

// Submission is one upload attempt against a deliverable. Revision cycles
// append new submissions; nothing here is ever mutated.
type Submission struct {
	SubmissionID  string
	CampaignID    string
	DeliverableID string
	CreatorID     string
	SubmissionURL string
	Metadata      map[string]string
	SubmittedAt   time.Time
}

func (s Submission) ValidateCreate() bool {
	return strings.TrimSpace(s.CampaignID) != "" &&
		strings.TrimSpace(s.DeliverableID) != "" &&
		strings.TrimSpace(s.CreatorID) != "" &&
		strings.TrimSpace(s.SubmissionURL) != ""
}
