package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/chat-management/internal/transport"
	"github.com/frahmantamala/chat-management/pkg/logger"
)

type ServiceAPI interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
	Series(ctx context.Context, metric, resolution string) ([]TimeSeriesPoint, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// GetDashboard handles GET /dashboard
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		h.Logger.Error("GetDashboard: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

// GetStatistics handles GET /dashboard/statistics
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	resolution := r.URL.Query().Get("resolution")

	points, err := h.Service.Series(r.Context(), metric, resolution)
	if err != nil {
		h.Logger.Warn("GetStatistics: service error",
			"error", err, "metric", metric, "resolution", resolution)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{"data": points})
}
