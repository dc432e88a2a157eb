// internal/models/request.go
package models

import (
	"encoding/json"
	"fmt"
)

// Recognized intent names.
const (
	IntentBookTickets     = "BookTickets"
	IntentGetMovieTheater = "GetMovieTheater"
	IntentHelp            = "Help"
)

// Phase is the invocation phase literal sent by the conversational runtime.
type Phase string

const (
	// PhaseValidating marks a mid-dialog validation call.
	PhaseValidating Phase = "DialogCodeHook"
	// PhaseFulfilling marks the final fulfillment call.
	PhaseFulfilling Phase = "FulfillmentCodeHook"
)

// Recognized slot names.
const (
	SlotMovieName   = "MovieName"
	SlotTheaterName = "TheaterName"
	SlotMovieDate   = "MovieDate"
	SlotTicketCount = "TicketCount"
	SlotMobile      = "Mobile"
	SlotMovieTime   = "MovieTime"
)

// RecognizedSlots enumerates the slot keys the engine echoes back. Anything
// else sent by the runtime is dropped at the boundary.
var RecognizedSlots = []string{
	SlotMovieName,
	SlotTheaterName,
	SlotMovieDate,
	SlotTicketCount,
	SlotMobile,
	SlotMovieTime,
}

// DefaultUserID is the sentinel caller identifier used when the runtime
// omits one.
const DefaultUserID = "0"

// Slots maps slot names to their current values. A nil value means the slot
// has not been filled (or has been cleared after a rejection).
type Slots map[string]*string

// Get returns the slot value, or the empty string when unfilled.
func (s Slots) Get(name string) string {
	if v, ok := s[name]; ok && v != nil {
		return *v
	}
	return ""
}

// Has reports whether the slot carries a value.
func (s Slots) Has(name string) bool {
	v, ok := s[name]
	return ok && v != nil
}

// Clear resets the slot to unfilled so the runtime re-elicits it.
func (s Slots) Clear(name string) {
	s[name] = nil
}

// Clone returns a copy safe to mutate in a response.
func (s Slots) Clone() Slots {
	out := make(Slots, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// CurrentIntent is the intent block of the runtime envelope.
type CurrentIntent struct {
	Name  string `json:"name"`
	Slots Slots  `json:"slots"`
}

// BookingRequest is the inbound envelope from the conversational runtime.
// It lives for a single call and is never persisted.
type BookingRequest struct {
	CurrentIntent     CurrentIntent     `json:"currentIntent"`
	InvocationSource  Phase             `json:"invocationSource"`
	SessionAttributes map[string]string `json:"sessionAttributes"`
	UserID            string            `json:"userId"`
	Bot               struct {
		Name string `json:"name"`
	} `json:"bot"`
}

// DecodeRequest parses and normalizes a runtime envelope. Unknown slot keys
// are dropped, missing session attributes become an empty map, a missing
// caller id defaults to DefaultUserID, and an unrecognized phase literal is
// rejected outright.
func DecodeRequest(data []byte) (*BookingRequest, error) {
	var req BookingRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}

	if req.CurrentIntent.Name == "" {
		return nil, fmt.Errorf("decode request: missing currentIntent.name")
	}

	switch req.InvocationSource {
	case PhaseValidating, PhaseFulfilling:
	default:
		return nil, fmt.Errorf("decode request: unrecognized invocationSource %q", req.InvocationSource)
	}

	if req.SessionAttributes == nil {
		req.SessionAttributes = map[string]string{}
	}
	if req.UserID == "" {
		req.UserID = DefaultUserID
	}

	normalized := make(Slots, len(RecognizedSlots))
	for _, name := range RecognizedSlots {
		if v, ok := req.CurrentIntent.Slots[name]; ok {
			normalized[name] = v
		} else {
			normalized[name] = nil
		}
	}
	req.CurrentIntent.Slots = normalized

	return &req, nil
}
