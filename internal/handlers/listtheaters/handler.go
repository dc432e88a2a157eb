// internal/handlers/listtheaters/handler.go
package listtheaters

import (
	"context"
	"fmt"
	"time"

	"ticketbot/internal/common/logger"
	"ticketbot/internal/common/metrics"
	"ticketbot/internal/dialog"
	"ticketbot/internal/dialog/validate"
	"ticketbot/internal/models"
)

// Handler answers the theater discovery intent: which theaters show a given
// movie. Only the movie slot is validated; nothing is persisted.
type Handler struct {
	catalog   validate.CatalogReader
	validator *validate.SlotValidator
	logger    logger.Logger
}

func New(catalog validate.CatalogReader, loc *time.Location, log logger.Logger) *Handler {
	return &Handler{
		catalog:   catalog,
		validator: validate.New(catalog, loc),
		logger:    log,
	}
}

func (h *Handler) IntentName() string {
	return models.IntentGetMovieTheater
}

func (h *Handler) Handle(ctx context.Context, req *models.BookingRequest) (*models.DialogResponse, error) {
	switch req.InvocationSource {
	case models.PhaseValidating:
		return h.validateMovie(ctx, req)
	default:
		return h.listTheaters(ctx, req)
	}
}

func (h *Handler) validateMovie(ctx context.Context, req *models.BookingRequest) (*models.DialogResponse, error) {
	result, err := h.validator.ValidateMovie(ctx, req.CurrentIntent.Slots.Get(models.SlotMovieName))
	if err != nil {
		return nil, fmt.Errorf("validate movie slot: %w", err)
	}

	if !result.IsValid {
		metrics.SlotRejections.WithLabelValues(result.ViolatedSlot).Inc()
		slots := req.CurrentIntent.Slots.Clone()
		slots.Clear(result.ViolatedSlot)
		return dialog.ElicitSlot(
			req.SessionAttributes,
			req.CurrentIntent.Name,
			slots,
			result.ViolatedSlot,
			result.Message,
		), nil
	}

	return dialog.Delegate(req.SessionAttributes, req.CurrentIntent.Slots), nil
}

func (h *Handler) listTheaters(ctx context.Context, req *models.BookingRequest) (*models.DialogResponse, error) {
	movie := req.CurrentIntent.Slots.Get(models.SlotMovieName)

	theaters, err := h.catalog.ListTheaters(ctx, movie)
	if err != nil {
		return nil, fmt.Errorf("list theaters for %q: %w", movie, err)
	}

	display := make([]string, 0, len(theaters))
	for _, t := range theaters {
		display = append(display, dialog.Capitalize(t))
	}

	h.logger.Debug("theater listing served", map[string]interface{}{
		"user_id": req.UserID,
		"movie":   movie,
		"count":   len(theaters),
	})

	return dialog.Close(
		req.SessionAttributes,
		models.StateFulfilled,
		models.PlainText(fmt.Sprintf(
			"Movie %s is offering consists of the following theater: %s.",
			movie, dialog.JoinNatural(display),
		)),
	), nil
}
