package entities

import "time"

type ReviewAction string

const (
	ReviewActionApproved          ReviewAction = "approved"
	ReviewActionRevisionRequested ReviewAction = "revision_requested"
	ReviewActionRejected          ReviewAction = "rejected"
)

// Review is an append-only verdict against a submission. Submission status
// is never stored; it is derived by folding the review log.
type Review struct {
	ReviewID     string
	SubmissionID string
	Action       ReviewAction
	Feedback     string
	ReviewerID   string
	CreatedAt    time.Time
}

func IsSupportedReviewAction(value ReviewAction) bool {
	switch value {
	case ReviewActionApproved, ReviewActionRevisionRequested, ReviewActionRejected:
		return true
	default:
		return false
	}
}
