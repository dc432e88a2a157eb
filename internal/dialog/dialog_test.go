// internal/dialog/dialog_test.go
package dialog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketbot/internal/common/logger"
	"ticketbot/internal/models"
)

func TestJoinNatural(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{name: "empty", items: nil, want: ""},
		{name: "single", items: []string{"regal"}, want: "regal"},
		{name: "pair", items: []string{"regal", "amc"}, want: "regal and amc"},
		{name: "three", items: []string{"regal", "amc", "cinemark"}, want: "regal, amc and cinemark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinNatural(tt.items))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Regal", Capitalize("regal"))
	assert.Equal(t, "Regal", Capitalize("REGAL"))
	assert.Equal(t, "", Capitalize(""))
}

func TestElicitSlot(t *testing.T) {
	attrs := map[string]string{"session": "abc"}
	val := "clarice"
	slots := models.Slots{models.SlotMovieName: &val}

	resp := ElicitSlot(attrs, "BookTickets", slots, models.SlotMovieDate, models.PlainText("when?"))

	assert.Equal(t, attrs, resp.SessionAttributes)
	assert.Equal(t, models.ActionElicitSlot, resp.DialogAction.Type)
	assert.Equal(t, "BookTickets", resp.DialogAction.IntentName)
	assert.Equal(t, models.SlotMovieDate, resp.DialogAction.SlotToElicit)
	assert.Equal(t, "when?", resp.DialogAction.Message.Content)
	assert.Equal(t, "PlainText", resp.DialogAction.Message.ContentType)
}

func TestDelegate(t *testing.T) {
	slots := models.Slots{}
	resp := Delegate(nil, slots)

	assert.Equal(t, models.ActionDelegate, resp.DialogAction.Type)
	assert.Empty(t, resp.DialogAction.SlotToElicit)
	assert.Nil(t, resp.DialogAction.Message)
}

func TestClose(t *testing.T) {
	resp := Close(map[string]string{}, models.StateFulfilled, models.PlainText("done"))

	assert.Equal(t, models.ActionClose, resp.DialogAction.Type)
	assert.Equal(t, models.StateFulfilled, resp.DialogAction.FulfillmentState)
	assert.Equal(t, "done", resp.DialogAction.Message.Content)
}

// ==========================
// Dispatcher
// ==========================

type stubHandler struct {
	name string
	resp *models.DialogResponse
	err  error
}

func (s *stubHandler) IntentName() string { return s.name }

func (s *stubHandler) Handle(ctx context.Context, req *models.BookingRequest) (*models.DialogResponse, error) {
	return s.resp, s.err
}

func newRequest(intent string) *models.BookingRequest {
	req := &models.BookingRequest{
		InvocationSource:  models.PhaseValidating,
		SessionAttributes: map[string]string{},
		UserID:            "user-1",
	}
	req.CurrentIntent.Name = intent
	req.CurrentIntent.Slots = models.Slots{}
	return req
}

func TestDispatch_RoutesToHandler(t *testing.T) {
	want := Close(map[string]string{}, models.StateFulfilled, models.PlainText("ok"))
	d := NewDispatcher(logger.NewTestLogger(t), &stubHandler{name: "Help", resp: want})

	got, err := d.Dispatch(context.Background(), newRequest("Help"))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDispatch_UnsupportedIntent(t *testing.T) {
	d := NewDispatcher(logger.NewTestLogger(t), &stubHandler{name: "Help"})

	_, err := d.Dispatch(context.Background(), newRequest("OrderPizza"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedIntent)
	assert.Contains(t, err.Error(), "OrderPizza")
}

func TestDispatch_PropagatesHandlerError(t *testing.T) {
	boom := errors.New("catalog down")
	d := NewDispatcher(logger.NewTestLogger(t), &stubHandler{name: "Help", err: boom})

	_, err := d.Dispatch(context.Background(), newRequest("Help"))
	assert.ErrorIs(t, err, boom)
}

func TestSupports(t *testing.T) {
	d := NewDispatcher(logger.NewTestLogger(t), &stubHandler{name: "Help"})

	assert.True(t, d.Supports("Help"))
	assert.False(t, d.Supports("BookTickets"))
}
