package dto

import "time"

// RegisterUserRequest registers a device against a verified provider token.
type RegisterUserRequest struct {
	ProviderToken string `json:"provider_token" validate:"required"`
	Name          string `json:"name" validate:"required,max=100"`
}

type UserResponse struct {
	ID          int64     `json:"id"`
	ExternalUID string    `json:"external_uid"`
	Name        string    `json:"name"`
	ClientToken string    `json:"client_token"`
	CreatedAt   time.Time `json:"created_at"`
}
