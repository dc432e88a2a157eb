// internal/models/request_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequest_FullEnvelope(t *testing.T) {
	raw := []byte(`{
		"currentIntent": {
			"name": "BookTickets",
			"slots": {
				"MovieName": "clarice",
				"TheaterName": null,
				"IgnoredSlot": "junk"
			}
		},
		"invocationSource": "DialogCodeHook",
		"sessionAttributes": {"channel": "web"},
		"userId": "user-42",
		"bot": {"name": "TicketBot"}
	}`)

	req, err := DecodeRequest(raw)
	require.NoError(t, err)

	assert.Equal(t, "BookTickets", req.CurrentIntent.Name)
	assert.Equal(t, PhaseValidating, req.InvocationSource)
	assert.Equal(t, "user-42", req.UserID)
	assert.Equal(t, "TicketBot", req.Bot.Name)
	assert.Equal(t, map[string]string{"channel": "web"}, req.SessionAttributes)

	// Slots are normalized to exactly the recognized keys.
	assert.Len(t, req.CurrentIntent.Slots, len(RecognizedSlots))
	assert.Equal(t, "clarice", req.CurrentIntent.Slots.Get(SlotMovieName))
	assert.False(t, req.CurrentIntent.Slots.Has(SlotTheaterName))
	assert.NotContains(t, req.CurrentIntent.Slots, "IgnoredSlot")
}

func TestDecodeRequest_Defaults(t *testing.T) {
	raw := []byte(`{
		"currentIntent": {"name": "Help"},
		"invocationSource": "FulfillmentCodeHook"
	}`)

	req, err := DecodeRequest(raw)
	require.NoError(t, err)

	assert.Equal(t, DefaultUserID, req.UserID)
	assert.NotNil(t, req.SessionAttributes)
	assert.Empty(t, req.SessionAttributes)
	for _, name := range RecognizedSlots {
		assert.False(t, req.CurrentIntent.Slots.Has(name))
	}
}

func TestDecodeRequest_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `{{{`},
		{name: "missing intent name", raw: `{"currentIntent": {}, "invocationSource": "DialogCodeHook"}`},
		{name: "unknown phase", raw: `{"currentIntent": {"name": "Help"}, "invocationSource": "SomethingElse"}`},
		{name: "empty phase", raw: `{"currentIntent": {"name": "Help"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRequest([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestSlots_CloneAndClear(t *testing.T) {
	val := "clarice"
	original := Slots{SlotMovieName: &val}

	clone := original.Clone()
	clone.Clear(SlotMovieName)

	assert.False(t, clone.Has(SlotMovieName))
	assert.True(t, original.Has(SlotMovieName), "clearing the clone must not touch the original")
}
