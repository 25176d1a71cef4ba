package errors

import "errors"

var (
	ErrBrandNotFound       = errors.New("brand not found")
	ErrMembershipNotFound  = errors.New("membership not found")
	ErrAssignmentNotFound  = errors.New("manager assignment not found")
	ErrInvalidAccessInput  = errors.New("invalid access input")
	ErrUnauthorizedActor   = errors.New("actor is not authorized for this operation")
	ErrManagerRoleRequired = errors.New("user must hold the campaign_manager role")
)
