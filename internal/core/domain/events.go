package domain

import "time"

// IdentityRegisteredEvent is published after a new identity is persisted.
type IdentityRegisteredEvent struct {
	EventID      string
	IdentityID   int64
	NaturalID    string
	Role         Role
	RegisteredAt time.Time
}

// RecoveryRequestedEvent is published after a reset token is issued.
// MaskedEmail carries the masked destination; the raw token is never
// part of the event payload.
type RecoveryRequestedEvent struct {
	EventID     string
	IdentityID  int64
	MaskedEmail string
	RequestedAt time.Time
}

// PasswordChangedEvent is published after a recovery completes and the
// credential has been replaced.
type PasswordChangedEvent struct {
	EventID    string
	IdentityID int64
	ChangedAt  time.Time
	Reason     string
}
