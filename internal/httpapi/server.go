package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/infrawatch/internal/domain"
	"github.com/hamed0406/infrawatch/internal/httpapi/middleware"
	"github.com/hamed0406/infrawatch/internal/metrics"
	"github.com/hamed0406/infrawatch/internal/status"
)

// Server exposes the read-only status surface: health, a JSON snapshot and
// Prometheus metrics. It never writes to the store.
type Server struct {
	Logger *zap.Logger
	Store  *status.Store
}

func NewServer(l *zap.Logger, store *status.Store) *Server {
	return &Server{Logger: l, Store: store}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(middleware.RateLimit(120, 60))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/api/status", s.handleStatus)
	r.Handle("/metrics", metrics.Handler())

	return r
}

type targetStatusRow struct {
	Name      string        `json:"name"`
	Kind      domain.Kind   `json:"kind"`
	Status    domain.Status `json:"status"`
	Since     *time.Time    `json:"since,omitempty"`
	LatencyMS *float64      `json:"latency_ms,omitempty"`
	Error     string        `json:"error,omitempty"`
	CheckedAt *time.Time    `json:"checked_at,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Store.Snapshot()

	rows := make([]targetStatusRow, 0, len(snap))
	for _, st := range snap {
		row := targetStatusRow{
			Name:   st.Target.Name,
			Kind:   st.Target.Kind,
			Status: st.Record.Status,
		}
		if st.Record.Status != domain.StatusUnknown {
			since := st.Record.Since
			row.Since = &since
			at := st.Record.Last.At
			row.CheckedAt = &at
			row.Error = st.Record.Last.Err
			if st.Record.Last.Latency > 0 {
				ms := float64(st.Record.Last.Latency) / float64(time.Millisecond)
				row.LatencyMS = &ms
			}
		}
		rows = append(rows, row)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		s.Logger.Warn("status_encode_error", zap.Error(err))
	}
}
