package expenses

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zerodivida/zerodivida/internal/platform/httpx"
	"github.com/zerodivida/zerodivida/internal/shared"
)

// Handler manages expense HTTP endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers expense routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.remove)
}

type createRequest struct {
	UserID    int64   `json:"userId" validate:"required,gt=0"`
	Title     string  `json:"title" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Category  string  `json:"category" validate:"required"`
	Essential bool    `json:"essential"`
	Month     string  `json:"month" validate:"required"`
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

	id, err := h.service.Create(r.Context(), Expense{
		UserID:    req.UserID,
		Title:     req.Title,
		Amount:    req.Amount,
		Category:  req.Category,
		Essential: req.Essential,
		Month:     req.Month,
	})
	if err != nil {
		h.logger.Error("create expense failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, id)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	month := r.URL.Query().Get("month")

	list, err := h.service.ListByMonth(r.Context(), userID, month)
	if err != nil {
		h.logger.Error("list expenses failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w)
}
