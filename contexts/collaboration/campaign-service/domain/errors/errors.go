package errors

import "errors"

var (
	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrInvalidCampaignInput   = errors.New("invalid campaign input")
	ErrInvalidStateTransition = errors.New("invalid campaign state transition")
	ErrDeliverablesLocked     = errors.New("deliverables are locked for this campaign")
	ErrUnauthorizedActor      = errors.New("actor is not authorized for this operation")
)
