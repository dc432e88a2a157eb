// internal/models/response.go
package models

// Dialog action types returned to the runtime.
const (
	ActionElicitSlot    = "ElicitSlot"
	ActionConfirmIntent = "ConfirmIntent"
	ActionDelegate      = "Delegate"
	ActionClose         = "Close"
)

// Fulfillment states carried on a Close action.
const (
	StateFulfilled = "Fulfilled"
	StateFailed    = "Failed"
)

// Message is the {contentType, content} pair shown to the end user.
type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// PlainText builds a plain-text message.
func PlainText(content string) *Message {
	return &Message{ContentType: "PlainText", Content: content}
}

// DialogAction describes what the runtime should do next.
type DialogAction struct {
	Type             string   `json:"type"`
	IntentName       string   `json:"intentName,omitempty"`
	Slots            Slots    `json:"slots,omitempty"`
	SlotToElicit     string   `json:"slotToElicit,omitempty"`
	FulfillmentState string   `json:"fulfillmentState,omitempty"`
	Message          *Message `json:"message,omitempty"`
}

// DialogResponse is the outbound envelope. Session attributes ride on every
// variant, echoed back unmodified except where the engine clears a rejected
// slot.
type DialogResponse struct {
	SessionAttributes map[string]string `json:"sessionAttributes"`
	DialogAction      DialogAction      `json:"dialogAction"`
}
