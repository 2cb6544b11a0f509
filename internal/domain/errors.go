package domain

import "errors"

var (
	ErrNotFound         = errors.New("invoice not found")
	ErrLineItemNotFound = errors.New("line item not found")
	ErrDraftFailed      = errors.New("failed to generate invoice draft from AI")
	ErrEmailDisabled    = errors.New("email delivery is not configured")
)
