// internal/transport/httpapi/server.go
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "ticketbot/internal/common/errors"
	"ticketbot/internal/common/logger"
	"ticketbot/internal/common/observability"
	"ticketbot/internal/dialog"
	"ticketbot/internal/models"
	"ticketbot/pkg/intents"
)

const maxRequestBody = 1 << 20

// Server exposes the dialog engine over HTTP.
type Server struct {
	dispatcher *dialog.Dispatcher
	logger     logger.Logger
	obs        *observability.Observability
	timeout    time.Duration
}

func NewServer(d *dialog.Dispatcher, log logger.Logger, obs *observability.Observability, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Server{
		dispatcher: d,
		logger:     log,
		obs:        obs,
		timeout:    timeout,
	}
}

// Routes wires up the HTTP surface.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/fulfillment", s.handleFulfillment)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleFulfillment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, http.StatusMethodNotAllowed,
			apperrors.NewRequestInvalidError("only POST is accepted"))
		return
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, apperrors.NewRequestParseError(err))
		return
	}

	if err := intents.ValidateRequest(body); err != nil {
		s.writeError(w, http.StatusBadRequest, apperrors.NewRequestInvalidError(err.Error()))
		return
	}

	req, err := models.DecodeRequest(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, apperrors.NewRequestParseError(err))
		return
	}

	resp, err := s.dispatcher.Dispatch(ctx, req)
	if err != nil {
		intent := req.CurrentIntent.Name
		if errors.Is(err, dialog.ErrUnsupportedIntent) {
			s.obs.RecordRequestProcessed(ctx, intent, "unsupported")
			s.writeError(w, http.StatusUnprocessableEntity,
				apperrors.NewUnsupportedIntentError(intent))
			return
		}

		s.logger.Error("fulfillment request failed", map[string]interface{}{
			"intent": intent,
			"error":  err.Error(),
		})
		s.obs.RecordRequestProcessed(ctx, intent, "error")
		s.writeError(w, http.StatusInternalServerError,
			apperrors.NewInternalError(err))
		return
	}

	s.obs.RecordRequestProcessed(ctx, req.CurrentIntent.Name, "ok")
	s.obs.RecordRequestDuration(ctx, time.Since(start), req.CurrentIntent.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("response encode failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, stdErr *apperrors.StandardError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"error": stdErr})
}
