// internal/dialog/validate/validators.go
package validate

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ticketbot/internal/dialog"
	"ticketbot/internal/models"
)

const dateLayout = "2006-01-02"

// Optional leading + and 1-3 digit country code, then a 10-11 digit number.
var mobileRegex = regexp.MustCompile(`^(\+?[0-9]{1,3})?[0-9]{10,11}$`)

// CatalogReader is the read-only catalog surface the validators need.
type CatalogReader interface {
	ListMovieNames(ctx context.Context) ([]string, error)
	ListTheaters(ctx context.Context, movieName string) ([]string, error)
}

// SlotValidator holds the per-slot validation rules for a booking. Each rule
// only judges a present value; an unfilled slot is left to the runtime's own
// elicitation flow.
type SlotValidator struct {
	catalog CatalogReader
	loc     *time.Location
	now     func() time.Time
}

func New(catalog CatalogReader, loc *time.Location) *SlotValidator {
	if loc == nil {
		loc = time.Local
	}
	return &SlotValidator{
		catalog: catalog,
		loc:     loc,
		now:     time.Now,
	}
}

func (v *SlotValidator) today() time.Time {
	n := v.now().In(v.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, v.loc)
}

// ValidateMovie checks the movie name against the known movie set,
// case-insensitively. A miss lists the available alternatives.
func (v *SlotValidator) ValidateMovie(ctx context.Context, movie string) (models.ValidationResult, error) {
	if movie == "" {
		return models.Valid(), nil
	}

	movies, err := v.catalog.ListMovieNames(ctx)
	if err != nil {
		return models.ValidationResult{}, fmt.Errorf("list movie names: %w", err)
	}

	lowered := strings.ToLower(movie)
	for _, m := range movies {
		if strings.ToLower(m) == lowered {
			return models.Valid(), nil
		}
	}

	return models.Invalid(
		models.SlotMovieName,
		fmt.Sprintf("Showtime for the %s is not available. You can choose currently available movies %s.",
			movie, dialog.JoinNatural(movies)),
	), nil
}

// ValidateTheater checks the theater against the set of theaters offering the
// movie. An empty catalog match-list is still a caller error: the rejection
// simply names no alternatives.
func (v *SlotValidator) ValidateTheater(ctx context.Context, movie, theater string) (models.ValidationResult, error) {
	if theater == "" {
		return models.Valid(), nil
	}

	theaters, err := v.catalog.ListTheaters(ctx, movie)
	if err != nil {
		return models.ValidationResult{}, fmt.Errorf("list theaters: %w", err)
	}

	lowered := strings.ToLower(theater)
	for _, t := range theaters {
		if strings.ToLower(t) == lowered {
			return models.Valid(), nil
		}
	}

	return models.Invalid(
		models.SlotTheaterName,
		fmt.Sprintf("Showtime in theater %s is not available. You can choose one from %s.",
			theater, dialog.JoinNatural(theaters)),
	), nil
}

// ValidateDate requires a parseable calendar date at least one day out and
// less than thirty days out.
func (v *SlotValidator) ValidateDate(date string) models.ValidationResult {
	if date == "" {
		return models.Valid()
	}

	parsed, err := time.ParseInLocation(dateLayout, date, v.loc)
	if err != nil {
		return models.Invalid(models.SlotMovieDate,
			"I did not understand date. When would you like to watch your movie?")
	}

	today := v.today()
	if parsed.Before(today.AddDate(0, 0, 1)) {
		return models.Invalid(models.SlotMovieDate,
			"Booking must be scheduled at least one day in advance. Can you try a different date?")
	}
	if !parsed.Before(today.AddDate(0, 0, 30)) {
		return models.Invalid(models.SlotMovieDate,
			fmt.Sprintf("I can book only upto 1 month in advance. Can you try a date between %s and %s?",
				today.Format(dateLayout), today.AddDate(0, 0, 30).Format(dateLayout)))
	}

	return models.Valid()
}

// ValidateTicketCount requires a whole number between 0 and 10. A value that
// does not parse as a number is rejected outright.
func (v *SlotValidator) ValidateTicketCount(raw string) models.ValidationResult {
	if raw == "" {
		return models.Valid()
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return models.Invalid(models.SlotTicketCount,
			"Sorry, I did not understand that as a number of tickets. How many tickets would you like to book?")
	}
	if n < 0 {
		return models.Invalid(models.SlotTicketCount,
			"Sorry, you should book at least one ticket. How many tickets would you like to book?")
	}
	if n > 10 {
		return models.Invalid(models.SlotTicketCount,
			"Sorry but the maximum order quantity for online tickets is 10. Please contact us directly for larger quantity orders. How many tickets would you like to order instead?")
	}

	return models.Valid()
}

// ValidateMobile requires a phone-number shape.
func (v *SlotValidator) ValidateMobile(mobile string) models.ValidationResult {
	if mobile == "" {
		return models.Valid()
	}
	if !mobileRegex.MatchString(mobile) {
		return models.Invalid(models.SlotMobile,
			fmt.Sprintf("%s is not a valid mobile number. Please provide a valid mobile number?", mobile))
	}
	return models.Valid()
}

// ValidateBooking runs the validators in their fixed priority order and
// returns the first failure. The order decides which single question the user
// is re-asked when several slots are bad at once, so it must not change.
func (v *SlotValidator) ValidateBooking(ctx context.Context, slots models.Slots) (models.ValidationResult, error) {
	checks := []func() (models.ValidationResult, error){
		func() (models.ValidationResult, error) {
			return v.ValidateMovie(ctx, slots.Get(models.SlotMovieName))
		},
		func() (models.ValidationResult, error) {
			return v.ValidateTheater(ctx, slots.Get(models.SlotMovieName), slots.Get(models.SlotTheaterName))
		},
		func() (models.ValidationResult, error) {
			return v.ValidateDate(slots.Get(models.SlotMovieDate)), nil
		},
		func() (models.ValidationResult, error) {
			return v.ValidateTicketCount(slots.Get(models.SlotTicketCount)), nil
		},
		func() (models.ValidationResult, error) {
			return v.ValidateMobile(slots.Get(models.SlotMobile)), nil
		},
	}

	for _, check := range checks {
		res, err := check()
		if err != nil {
			return models.ValidationResult{}, err
		}
		if !res.IsValid {
			return res, nil
		}
	}

	return models.Valid(), nil
}
