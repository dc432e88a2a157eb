// internal/handlers/bookticket/handler.go
package bookticket

import (
	"context"
	"fmt"
	"time"

	"ticketbot/internal/common/logger"
	"ticketbot/internal/common/metrics"
	"ticketbot/internal/dialog"
	"ticketbot/internal/dialog/validate"
	"ticketbot/internal/models"
	"ticketbot/internal/notify"
)

// CatalogStore is the catalog surface the booking flow needs.
type CatalogStore interface {
	validate.CatalogReader
	FindCatalogID(ctx context.Context, movieName, theater string) (int, bool, error)
}

// OrderStore persists a confirmed booking.
type OrderStore interface {
	CreateOrder(ctx context.Context, userID string, movieID int, ticketCount string) (string, error)
}

// ConfirmationSender notifies the customer after a successful booking.
type ConfirmationSender interface {
	SendBookingConfirmation(ctx context.Context, booking notify.BookingSummary) error
}

// Handler drives the ticket booking intent through validation and
// fulfillment.
type Handler struct {
	catalog   CatalogStore
	orders    OrderStore
	notifier  ConfirmationSender
	validator *validate.SlotValidator
	logger    logger.Logger
}

func New(catalog CatalogStore, orders OrderStore, notifier ConfirmationSender, loc *time.Location, log logger.Logger) *Handler {
	return &Handler{
		catalog:   catalog,
		orders:    orders,
		notifier:  notifier,
		validator: validate.New(catalog, loc),
		logger:    log,
	}
}

func (h *Handler) IntentName() string {
	return models.IntentBookTickets
}

func (h *Handler) Handle(ctx context.Context, req *models.BookingRequest) (*models.DialogResponse, error) {
	switch req.InvocationSource {
	case models.PhaseValidating:
		return h.validateSlots(ctx, req)
	default:
		return h.fulfill(ctx, req)
	}
}

// validateSlots runs the slot validators. The first rejection clears the bad
// slot and re-elicits it; a clean pass hands control back to the runtime.
func (h *Handler) validateSlots(ctx context.Context, req *models.BookingRequest) (*models.DialogResponse, error) {
	result, err := h.validator.ValidateBooking(ctx, req.CurrentIntent.Slots)
	if err != nil {
		return nil, fmt.Errorf("validate booking slots: %w", err)
	}

	if !result.IsValid {
		metrics.SlotRejections.WithLabelValues(result.ViolatedSlot).Inc()
		h.logger.Info("slot rejected", map[string]interface{}{
			"user_id": req.UserID,
			"slot":    result.ViolatedSlot,
		})

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

// fulfill looks up the catalog row, persists the order, and texts the
// customer. A notification failure does not fail the booking.
func (h *Handler) fulfill(ctx context.Context, req *models.BookingRequest) (*models.DialogResponse, error) {
	slots := req.CurrentIntent.Slots
	movie := slots.Get(models.SlotMovieName)
	theater := slots.Get(models.SlotTheaterName)
	count := slots.Get(models.SlotTicketCount)

	movieID, found, err := h.catalog.FindCatalogID(ctx, movie, theater)
	if err != nil || !found {
		if err != nil {
			h.logger.Error("catalog lookup failed", map[string]interface{}{
				"user_id": req.UserID,
				"movie":   movie,
				"theater": theater,
				"error":   err.Error(),
			})
		} else {
			h.logger.Warn("no catalog entry for booking", map[string]interface{}{
				"user_id": req.UserID,
				"movie":   movie,
				"theater": theater,
			})
		}
		return h.closeFailed(req, movie, theater, count), nil
	}

	orderID, err := h.orders.CreateOrder(ctx, req.UserID, movieID, count)
	if err != nil {
		h.logger.Error("order persist failed", map[string]interface{}{
			"user_id": req.UserID,
			"movie":   movie,
			"error":   err.Error(),
		})
		return h.closeFailed(req, movie, theater, count), nil
	}

	summary := notify.BookingSummary{
		MovieName:   movie,
		Theater:     theater,
		MovieDate:   slots.Get(models.SlotMovieDate),
		MovieTime:   slots.Get(models.SlotMovieTime),
		TicketCount: count,
		Mobile:      slots.Get(models.SlotMobile),
	}
	if err := h.notifier.SendBookingConfirmation(ctx, summary); err != nil {
		h.logger.Warn("confirmation sms failed", map[string]interface{}{
			"user_id":  req.UserID,
			"order_id": orderID,
			"error":    err.Error(),
		})
	}

	metrics.FulfillmentOutcomes.WithLabelValues("fulfilled").Inc()
	return dialog.Close(
		req.SessionAttributes,
		models.StateFulfilled,
		models.PlainText(fmt.Sprintf(
			"Thank you for ordering through our bot. You book of %s tickets of %s %s has been placed and will be processed immediately (Order ID: %s). Can I help you with anything else?",
			count, theater, movie, orderID,
		)),
	), nil
}

func (h *Handler) closeFailed(req *models.BookingRequest, movie, theater, count string) *models.DialogResponse {
	metrics.FulfillmentOutcomes.WithLabelValues("failed").Inc()
	return dialog.Close(
		req.SessionAttributes,
		models.StateFailed,
		models.PlainText(fmt.Sprintf(
			"Sorry your book of %s tickets of %s %s has not been placed due to a system error. Please try it again later or contact us via win@blah.com",
			count, theater, movie,
		)),
	)
}
