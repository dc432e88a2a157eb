// internal/models/validation.go
package models

// ValidationResult reports whether a slot value was accepted. Exactly one
// slot is named per invalid result; a valid result names no slot.
type ValidationResult struct {
	IsValid      bool     `json:"isValid"`
	ViolatedSlot string   `json:"violatedSlot,omitempty"`
	Message      *Message `json:"message,omitempty"`
}

// Valid returns the all-clear result.
func Valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

// Invalid returns a rejection naming the offending slot and the re-prompt
// message.
func Invalid(slot, content string) ValidationResult {
	return ValidationResult{
		IsValid:      false,
		ViolatedSlot: slot,
		Message:      PlainText(content),
	}
}
