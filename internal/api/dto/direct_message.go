package dto

import "time"

type SendDirectMessageRequest struct {
	RecipientUserID int64  `json:"recipient_user_id" validate:"required"`
	Body            string `json:"body" validate:"required,max=4000"`
}

type DirectMessageResponse struct {
	ID              string     `json:"id"`
	SenderUserID    int64      `json:"sender_user_id"`
	RecipientUserID int64      `json:"recipient_user_id"`
	Body            string     `json:"body"`
	CreatedAt       time.Time  `json:"created_at"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
}
