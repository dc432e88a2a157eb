// internal/handlers/help/handler.go
package help

import (
	"context"

	"ticketbot/internal/dialog"
	"ticketbot/internal/models"
)

const helpText = "Hi this is lex, your personal assistant. - Would you like to book movie tickets? - or should I show you a list of available movies for one of the theater?"

// Handler answers the help intent with a fixed capability summary.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) IntentName() string {
	return models.IntentHelp
}

func (h *Handler) Handle(_ context.Context, req *models.BookingRequest) (*models.DialogResponse, error) {
	return dialog.Close(
		req.SessionAttributes,
		models.StateFulfilled,
		models.PlainText(helpText),
	), nil
}
