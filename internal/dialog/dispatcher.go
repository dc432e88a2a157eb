// internal/dialog/dispatcher.go
package dialog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticketbot/internal/common/logger"
	"ticketbot/internal/common/metrics"
	"ticketbot/internal/models"
)

var (
	ErrUnsupportedIntent = errors.New("UNSUPPORTED_INTENT")
)

// IntentHandler processes one intent for a single runtime call.
type IntentHandler interface {
	IntentName() string
	Handle(ctx context.Context, req *models.BookingRequest) (*models.DialogResponse, error)
}

// Dispatcher maps intent names to handlers. It is the single entry point
// invoked by the transport layer.
type Dispatcher struct {
	handlers map[string]IntentHandler
	logger   logger.Logger
}

func NewDispatcher(log logger.Logger, handlers ...IntentHandler) *Dispatcher {
	m := make(map[string]IntentHandler, len(handlers))
	for _, h := range handlers {
		m[h.IntentName()] = h
	}
	return &Dispatcher{
		handlers: m,
		logger:   log.WithFields(map[string]interface{}{"component": "dispatcher"}),
	}
}

// Dispatch routes the request to its intent handler. An unrecognized intent
// name is a call-level error, never a dialog response: it means the runtime's
// intent catalog and this engine's handler set disagree.
func (d *Dispatcher) Dispatch(ctx context.Context, req *models.BookingRequest) (*models.DialogResponse, error) {
	intentName := req.CurrentIntent.Name

	d.logger.Debug("dispatch", map[string]interface{}{
		"userId":     req.UserID,
		"intentName": intentName,
		"source":     string(req.InvocationSource),
	})

	metrics.DialogRequests.WithLabelValues(intentName, string(req.InvocationSource)).Inc()
	start := time.Now()

	handler, ok := d.handlers[intentName]
	if !ok {
		return nil, fmt.Errorf("%w: intent with name %s not supported", ErrUnsupportedIntent, intentName)
	}

	resp, err := handler.Handle(ctx, req)
	metrics.RequestDuration.WithLabelValues(intentName).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	metrics.DialogResponses.WithLabelValues(intentName, resp.DialogAction.Type).Inc()
	return resp, nil
}

// Supports reports whether the dispatcher has a handler for the intent.
func (d *Dispatcher) Supports(intentName string) bool {
	_, ok := d.handlers[intentName]
	return ok
}
