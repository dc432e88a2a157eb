// internal/handlers/bookticket/handler_test.go
package bookticket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketbot/internal/common/logger"
	"ticketbot/internal/models"
	"ticketbot/internal/notify"
)

// ==========================
// Mock Implementations
// ==========================

type fakeCatalog struct {
	movies    []string
	theaters  []string
	catalogID int
	found     bool
	lookupErr error
}

func (f *fakeCatalog) ListMovieNames(ctx context.Context) ([]string, error) {
	return f.movies, nil
}

func (f *fakeCatalog) ListTheaters(ctx context.Context, movieName string) ([]string, error) {
	return f.theaters, nil
}

func (f *fakeCatalog) FindCatalogID(ctx context.Context, movieName, theater string) (int, bool, error) {
	return f.catalogID, f.found, f.lookupErr
}

type fakeOrders struct {
	orderID string
	err     error
	calls   int

	gotUserID  string
	gotMovieID int
	gotCount   string
}

func (f *fakeOrders) CreateOrder(ctx context.Context, userID string, movieID int, ticketCount string) (string, error) {
	f.calls++
	f.gotUserID = userID
	f.gotMovieID = movieID
	f.gotCount = ticketCount
	return f.orderID, f.err
}

type fakeNotifier struct {
	err   error
	calls int
	got   notify.BookingSummary
}

func (f *fakeNotifier) SendBookingConfirmation(ctx context.Context, booking notify.BookingSummary) error {
	f.calls++
	f.got = booking
	return f.err
}

// ==========================
// Test Helper Functions
// ==========================

func strPtr(s string) *string { return &s }

func newTestHandler(t *testing.T, catalog *fakeCatalog, orders *fakeOrders, notifier *fakeNotifier) *Handler {
	t.Helper()
	return New(catalog, orders, notifier, time.UTC, logger.NewTestLogger(t))
}

func newRequest(phase models.Phase, slots models.Slots) *models.BookingRequest {
	req := &models.BookingRequest{
		InvocationSource:  phase,
		SessionAttributes: map[string]string{"channel": "web"},
		UserID:            "user-7",
	}
	req.CurrentIntent.Name = models.IntentBookTickets
	req.CurrentIntent.Slots = slots
	return req
}

func fullSlots() models.Slots {
	// Ten days out keeps the date inside the booking window regardless of
	// when the test runs.
	date := time.Now().UTC().AddDate(0, 0, 10).Format("2006-01-02")
	return models.Slots{
		models.SlotMovieName:   strPtr("clarice"),
		models.SlotTheaterName: strPtr("Regal"),
		models.SlotMovieDate:   strPtr(date),
		models.SlotTicketCount: strPtr("2"),
		models.SlotMobile:      strPtr("4155551234"),
		models.SlotMovieTime:   strPtr("7:00 pm"),
	}
}

// ==========================
// Validation Phase
// ==========================

func TestHandle_Validating_RejectsUnknownMovie(t *testing.T) {
	catalog := &fakeCatalog{movies: []string{"clarice", "avatar"}}
	h := newTestHandler(t, catalog, &fakeOrders{}, &fakeNotifier{})

	slots := models.Slots{models.SlotMovieName: strPtr("Inception")}
	resp, err := h.Handle(context.Background(), newRequest(models.PhaseValidating, slots))
	require.NoError(t, err)

	assert.Equal(t, models.ActionElicitSlot, resp.DialogAction.Type)
	assert.Equal(t, models.SlotMovieName, resp.DialogAction.SlotToElicit)
	assert.False(t, resp.DialogAction.Slots.Has(models.SlotMovieName), "rejected slot must be cleared")
	assert.Contains(t, resp.DialogAction.Message.Content, "Inception")
	assert.Equal(t, map[string]string{"channel": "web"}, resp.SessionAttributes)
}

func TestHandle_Validating_DelegatesOnCleanSlots(t *testing.T) {
	catalog := &fakeCatalog{movies: []string{"clarice"}, theaters: []string{"regal"}}
	h := newTestHandler(t, catalog, &fakeOrders{}, &fakeNotifier{})

	resp, err := h.Handle(context.Background(), newRequest(models.PhaseValidating, fullSlots()))
	require.NoError(t, err)

	assert.Equal(t, models.ActionDelegate, resp.DialogAction.Type)
	assert.Equal(t, "clarice", resp.DialogAction.Slots.Get(models.SlotMovieName))
}

func TestHandle_Validating_EmptySlotsDelegate(t *testing.T) {
	catalog := &fakeCatalog{movies: []string{"clarice"}}
	h := newTestHandler(t, catalog, &fakeOrders{}, &fakeNotifier{})

	resp, err := h.Handle(context.Background(), newRequest(models.PhaseValidating, models.Slots{}))
	require.NoError(t, err)

	assert.Equal(t, models.ActionDelegate, resp.DialogAction.Type)
}

// ==========================
// Fulfillment Phase
// ==========================

func TestHandle_Fulfilling_Success(t *testing.T) {
	catalog := &fakeCatalog{catalogID: 42, found: true}
	orders := &fakeOrders{orderID: "order-123"}
	notifier := &fakeNotifier{}
	h := newTestHandler(t, catalog, orders, notifier)

	resp, err := h.Handle(context.Background(), newRequest(models.PhaseFulfilling, fullSlots()))
	require.NoError(t, err)

	assert.Equal(t, models.ActionClose, resp.DialogAction.Type)
	assert.Equal(t, models.StateFulfilled, resp.DialogAction.FulfillmentState)
	assert.Contains(t, resp.DialogAction.Message.Content, "2 tickets of Regal clarice")
	assert.Contains(t, resp.DialogAction.Message.Content, "Order ID: order-123")

	assert.Equal(t, 1, orders.calls)
	assert.Equal(t, "user-7", orders.gotUserID)
	assert.Equal(t, 42, orders.gotMovieID)
	assert.Equal(t, "2", orders.gotCount)

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, "clarice", notifier.got.MovieName)
	assert.Equal(t, "4155551234", notifier.got.Mobile)
	assert.Equal(t, "7:00 pm", notifier.got.MovieTime)
}

func TestHandle_Fulfilling_CatalogMiss(t *testing.T) {
	catalog := &fakeCatalog{found: false}
	orders := &fakeOrders{}
	notifier := &fakeNotifier{}
	h := newTestHandler(t, catalog, orders, notifier)

	resp, err := h.Handle(context.Background(), newRequest(models.PhaseFulfilling, fullSlots()))
	require.NoError(t, err)

	assert.Equal(t, models.ActionClose, resp.DialogAction.Type)
	assert.Equal(t, models.StateFailed, resp.DialogAction.FulfillmentState)
	assert.Contains(t, resp.DialogAction.Message.Content, "system error")
	assert.Zero(t, orders.calls, "no order may be created on a catalog miss")
	assert.Zero(t, notifier.calls)
}

func TestHandle_Fulfilling_CatalogError(t *testing.T) {
	catalog := &fakeCatalog{lookupErr: errors.New("connection reset")}
	orders := &fakeOrders{}
	h := newTestHandler(t, catalog, orders, &fakeNotifier{})

	resp, err := h.Handle(context.Background(), newRequest(models.PhaseFulfilling, fullSlots()))
	require.NoError(t, err)

	assert.Equal(t, models.StateFailed, resp.DialogAction.FulfillmentState)
	assert.Zero(t, orders.calls)
}

func TestHandle_Fulfilling_OrderInsertFails(t *testing.T) {
	catalog := &fakeCatalog{catalogID: 42, found: true}
	orders := &fakeOrders{err: errors.New("duplicate key")}
	notifier := &fakeNotifier{}
	h := newTestHandler(t, catalog, orders, notifier)

	resp, err := h.Handle(context.Background(), newRequest(models.PhaseFulfilling, fullSlots()))
	require.NoError(t, err)

	assert.Equal(t, models.StateFailed, resp.DialogAction.FulfillmentState)
	assert.Zero(t, notifier.calls, "no confirmation may be sent when the order was not persisted")
}

func TestHandle_Fulfilling_NotifyFailureStillFulfilled(t *testing.T) {
	catalog := &fakeCatalog{catalogID: 42, found: true}
	orders := &fakeOrders{orderID: "order-9"}
	notifier := &fakeNotifier{err: errors.New("sns throttled")}
	h := newTestHandler(t, catalog, orders, notifier)

	resp, err := h.Handle(context.Background(), newRequest(models.PhaseFulfilling, fullSlots()))
	require.NoError(t, err)

	assert.Equal(t, models.StateFulfilled, resp.DialogAction.FulfillmentState,
		"a failed confirmation SMS must not fail the booking")
	assert.Equal(t, 1, orders.calls)
}

func TestIntentName(t *testing.T) {
	h := newTestHandler(t, &fakeCatalog{}, &fakeOrders{}, &fakeNotifier{})
	assert.Equal(t, models.IntentBookTickets, h.IntentName())
}
