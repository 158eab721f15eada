package handler

import (
	"errors"
	"net/http"

	"github.com/blazern/recipe-calculator-server-sub000/internal/api/dto"
	"github.com/blazern/recipe-calculator-server-sub000/internal/api/middleware"
	"github.com/blazern/recipe-calculator-server-sub000/internal/api/response"
	"github.com/blazern/recipe-calculator-server-sub000/internal/domain"
	"github.com/blazern/recipe-calculator-server-sub000/internal/pairing"
	"github.com/blazern/recipe-calculator-server-sub000/internal/service"
)

type PairingHandler struct {
	pairing *service.PairingService
}

func NewPairingHandler(pairingSvc *service.PairingService) *PairingHandler {
	return &PairingHandler{pairing: pairingSvc}
}

// IssueCode handles POST /api/v1/pairing-codes.
func (h *PairingHandler) IssueCode(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	code, err := h.pairing.IssueCode(r.Context(), user.ID)
	if err != nil {
		writePairingError(w, err)
		return
	}

	response.Created(w, dto.BorrowPairingCodeResponse{Code: code})
}

// CreateRequestByCode handles POST /api/v1/pairing-requests.
func (h *PairingHandler) CreateRequestByCode(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	req, err := dto.ParseJSON[dto.CreatePairingRequestByCodeRequest](r)
	if err != nil {
		response.BadRequest(w, "malformed request body")
		return
	}
	if details := dto.Validate(req); details != nil {
		response.ValidationError(w, "invalid pairing request", details...)
		return
	}

	created, err := h.pairing.RequestPairingByCode(r.Context(), user.ID, req.Code)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.Created(w, toPairingRequestResponse(created))
}

// CreateRequestByUser handles POST /api/v1/pairing-requests/by-user.
func (h *PairingHandler) CreateRequestByUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	req, err := dto.ParseJSON[dto.CreatePairingRequestByUserRequest](r)
	if err != nil {
		response.BadRequest(w, "malformed request body")
		return
	}
	if details := dto.Validate(req); details != nil {
		response.ValidationError(w, "invalid pairing request", details...)
		return
	}

	created, err := h.pairing.RequestPairingByUser(r.Context(), user.ID, req.TargetUserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.Created(w, toPairingRequestResponse(created))
}

func writePairingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pairing.ErrOutOfPairingCodes):
		response.Conflict(w, response.ErrCodeOutOfPairingCodes, err.Error())
	default:
		response.InternalError(w, "failed to issue pairing code")
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCannotPairWithSelf):
		response.Conflict(w, response.ErrCodeCannotPairWithSelf, err.Error())
	case errors.Is(err, domain.ErrPairingCodeUnknown):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrTargetUserNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, domain.ErrPairingRequestExpired):
		response.Conflict(w, response.ErrCodeRequestExpired, err.Error())
	case errors.Is(err, domain.ErrInvalidStateTransition):
		response.Conflict(w, response.ErrCodeInvalidState, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, err.Error())
	default:
		response.InternalError(w, "failed to process pairing request")
	}
}

func toPairingRequestResponse(req *domain.PairingRequest) dto.PairingRequestResponse {
	return dto.PairingRequestResponse{
		ID:              req.ID.String(),
		RequesterUserID: req.RequesterUserID,
		TargetUserID:    req.TargetUserID,
		State:           req.State.String(),
		CreatedAt:       req.CreatedAt,
		ExpiresAt:       req.ExpiresAt,
		ResolvedAt:      req.ResolvedAt,
	}
}
