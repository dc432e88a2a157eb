// pkg/intents/intents.go

// Package intents names the conversational intents the engine understands
// and checks inbound envelopes against the runtime's wire shape before they
// reach dialog handling.
package intents

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Intent names as the conversational runtime sends them.
const (
	BookTickets     = "BookTickets"
	GetMovieTheater = "GetMovieTheater"
	Help            = "Help"
)

// All lists every recognized intent.
var All = []string{BookTickets, GetMovieTheater, Help}

// IsRecognized reports whether the engine has a handler for the intent.
func IsRecognized(name string) bool {
	for _, intent := range All {
		if intent == name {
			return true
		}
	}
	return false
}

const envelopeSchema = `{
	"type": "object",
	"required": ["currentIntent", "invocationSource"],
	"properties": {
		"currentIntent": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string", "minLength": 1},
				"slots": {
					"type": "object",
					"additionalProperties": {"type": ["string", "null"]}
				}
			}
		},
		"invocationSource": {
			"type": "string",
			"enum": ["DialogCodeHook", "FulfillmentCodeHook"]
		},
		"sessionAttributes": {
			"type": ["object", "null"],
			"additionalProperties": {"type": "string"}
		},
		"userId": {"type": "string"},
		"bot": {
			"type": "object",
			"properties": {
				"name": {"type": "string"}
			}
		}
	}
}`

var envelopeLoader = gojsonschema.NewStringLoader(envelopeSchema)

// ValidateRequest checks a raw envelope against the wire schema.
func ValidateRequest(raw []byte) error {
	result, err := gojsonschema.Validate(envelopeLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validate envelope: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("envelope validation failed: %v", errs)
	}

	return nil
}
