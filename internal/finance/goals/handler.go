package goals

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zerodivida/zerodivida/internal/platform/httpx"
	"github.com/zerodivida/zerodivida/internal/shared"
)

// Handler manages savings-goal HTTP endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers goal routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/{id}", h.remove)
	r.Patch("/{id}/deposit", h.deposit)
}

type createRequest struct {
	UserID        int64   `json:"userId" validate:"required,gt=0"`
	Title         string  `json:"title" validate:"required"`
	TargetAmount  float64 `json:"targetAmount" validate:"required,gt=0"`
	CurrentAmount float64 `json:"currentAmount" validate:"gte=0"`
	Deadline      string  `json:"deadline" validate:"required"`
}

type ownerRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
}

type depositRequest struct {
	UserID int64   `json:"userId" validate:"required,gt=0"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)

	list, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("list goals failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrMissingField)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrMissingField)
		return
	}
	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		httpx.RespondError(w, shared.ErrMissingField)
		return
	}

	id, err := h.service.Create(r.Context(), Goal{
		UserID:        req.UserID,
		Title:         req.Title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
	})
	if err != nil {
		h.logger.Error("create goal failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, id)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	var req ownerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrMissingField)
		return
	}
	if err := h.service.Delete(r.Context(), id, req.UserID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w)
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	var req depositRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrMissingField)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrMissingField)
		return
	}
	if err := h.service.AddProgress(r.Context(), id, req.UserID, req.Amount); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w)
}
