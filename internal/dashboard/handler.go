package dashboard

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zerodivida/zerodivida/internal/dashboard/svg"
	"github.com/zerodivida/zerodivida/internal/platform/httpx"
	"github.com/zerodivida/zerodivida/internal/shared"
)

// Handler manages dashboard HTTP endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/chart", h.chart)
}

func (h *Handler) params(r *http.Request) (int64, string, error) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	month := r.URL.Query().Get("month")
	if userID <= 0 || !ValidMonth(month) {
		return 0, "", shared.ErrMissingField
	}
	return userID, month, nil
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, month, err := h.params(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	summary, err := h.service.GetSummary(r.Context(), userID, month)
	if err != nil {
		h.logger.Error("dashboard summary failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) chart(w http.ResponseWriter, r *http.Request) {
	userID, month, err := h.params(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	summary, err := h.service.GetSummary(r.Context(), userID, month)
	if err != nil {
		h.logger.Error("dashboard chart failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	values := []float64{summary.TotalIncome, summary.TotalExpense}
	labels := []string{"Renda", "Despesas"}
	for _, ct := range summary.Categories {
		values = append(values, ct.Total)
		labels = append(labels, ct.Category)
	}

	markup, err := svg.Bars(svg.DefaultWidth, svg.DefaultHeight, values, labels, svg.BarOpts{
		Title:       "Resumo de " + month,
		Description: "Renda, despesas e categorias do mês",
	})
	if err != nil {
		h.logger.Error("render chart failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(markup))
}
