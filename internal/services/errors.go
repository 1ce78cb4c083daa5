package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")

	ErrNotHost        = errors.New("only the circle host may do this")
	ErrAlreadyMember  = errors.New("already a member of this circle")
	ErrNotInvitee     = errors.New("invitation is addressed to someone else")
	ErrInviteResolved = errors.New("invitation already accepted or declined")

	ErrOrderMismatch = errors.New("ordered ids do not match the circle's members")
)
