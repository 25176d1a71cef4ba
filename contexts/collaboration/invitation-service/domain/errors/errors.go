package errors

import "errors"

var (
	ErrInvitationNotFound      = errors.New("invitation not found")
	ErrInvalidInvitationInput  = errors.New("invalid invitation input")
	ErrInvalidStatusTransition = errors.New("invalid invitation status transition")
	ErrTransitionConflict      = errors.New("invitation changed concurrently, re-read and retry")
	ErrDuplicateInvitation     = errors.New("creator already has a live invitation for this campaign")
	ErrUnauthorizedActor       = errors.New("actor is not authorized")
	ErrTrackingLinkNotFound    = errors.New("tracking link not found")
)
