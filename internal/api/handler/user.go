package handler

import (
	"errors"
	"net/http"

	"github.com/blazern/recipe-calculator-server-sub000/internal/api/dto"
	"github.com/blazern/recipe-calculator-server-sub000/internal/api/response"
	"github.com/blazern/recipe-calculator-server-sub000/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register handles POST /api/v1/users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := dto.ParseJSON[dto.RegisterUserRequest](r)
	if err != nil {
		response.BadRequest(w, "malformed request body")
		return
	}
	if details := dto.Validate(req); details != nil {
		response.ValidationError(w, "invalid registration request", details...)
		return
	}

	user, err := h.users.Register(r.Context(), req.ProviderToken, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrProviderTokenRejected) {
			response.Unauthorized(w, err.Error())
			return
		}
		response.InternalError(w, "failed to register user")
		return
	}

	response.Created(w, dto.UserResponse{
		ID:          user.ID,
		ExternalUID: user.ExternalUID.String(),
		Name:        user.Name,
		ClientToken: user.ClientToken,
		CreatedAt:   user.CreatedAt,
	})
}
