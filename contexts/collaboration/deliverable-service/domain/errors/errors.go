package errors

import "errors"

var (
	ErrDeliverableNotFound    = errors.New("deliverable not found")
	ErrSubmissionNotFound     = errors.New("submission not found")
	ErrInvalidSubmissionInput = errors.New("invalid submission input")
	ErrInvalidReviewAction    = errors.New("invalid review action")
	ErrNoAcceptedInvitation   = errors.New("no accepted invitation for campaign")
	ErrCampaignNotAccepting   = errors.New("campaign is not accepting deliverables")
	ErrUnauthorizedActor      = errors.New("actor is not authorized for this operation")
)
