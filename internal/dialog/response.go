// internal/dialog/response.go
package dialog

import "ticketbot/internal/models"

// Builders for the four canonical dialog-action response shapes. Every intent
// handler funnels its output through these.

// ElicitSlot asks the runtime to re-prompt for one named slot.
func ElicitSlot(sessionAttrs map[string]string, intentName string, slots models.Slots, slotToElicit string, message *models.Message) *models.DialogResponse {
	return &models.DialogResponse{
		SessionAttributes: sessionAttrs,
		DialogAction: models.DialogAction{
			Type:         models.ActionElicitSlot,
			IntentName:   intentName,
			Slots:        slots,
			SlotToElicit: slotToElicit,
			Message:      message,
		},
	}
}

// ConfirmIntent asks the runtime to confirm the intent with the user.
// No handler exercises it today; retained for contract completeness.
func ConfirmIntent(sessionAttrs map[string]string, intentName string, slots models.Slots, message *models.Message) *models.DialogResponse {
	return &models.DialogResponse{
		SessionAttributes: sessionAttrs,
		DialogAction: models.DialogAction{
			Type:       models.ActionConfirmIntent,
			IntentName: intentName,
			Slots:      slots,
			Message:    message,
		},
	}
}

// Delegate hands dialog management back to the runtime with the current slots.
func Delegate(sessionAttrs map[string]string, slots models.Slots) *models.DialogResponse {
	return &models.DialogResponse{
		SessionAttributes: sessionAttrs,
		DialogAction: models.DialogAction{
			Type:  models.ActionDelegate,
			Slots: slots,
		},
	}
}

// Close terminates the dialog with a fulfillment outcome and a final message.
func Close(sessionAttrs map[string]string, fulfillmentState string, message *models.Message) *models.DialogResponse {
	return &models.DialogResponse{
		SessionAttributes: sessionAttrs,
		DialogAction: models.DialogAction{
			Type:             models.ActionClose,
			FulfillmentState: fulfillmentState,
			Message:          message,
		},
	}
}
