package dto

import "time"

// BorrowPairingCodeResponse carries the freshly borrowed code. Borrowing
// takes no request body: the user id comes from the authenticated
// client-token context.
type BorrowPairingCodeResponse struct {
	Code string `json:"code"`
}

// CreatePairingRequestByCodeRequest pairs by presenting another device's
// currently displayed pairing code. Code 0 is a legitimately issuable
// value whenever the configured range's left bound is 0 (the default), so
// this only rejects negative values — "required" would wrongly reject it,
// since go-playground/validator treats the int32 zero value as absent.
type CreatePairingRequestByCodeRequest struct {
	Code int32 `json:"code" validate:"gte=0"`
}

// CreatePairingRequestByUserRequest pairs directly by user id, used once a
// device already knows the target's id (e.g. from a prior pairing).
type CreatePairingRequestByUserRequest struct {
	TargetUserID int64 `json:"target_user_id" validate:"required"`
}

type PairingRequestResponse struct {
	ID              string     `json:"id"`
	RequesterUserID int64      `json:"requester_user_id"`
	TargetUserID    int64      `json:"target_user_id"`
	State           string     `json:"state"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}
