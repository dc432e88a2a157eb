// internal/notify/sms.go
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"ticketbot/internal/common/logger"
)

// SNSService is the slice of the SNS API the sender uses.
type SNSService interface {
	Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// BookingSummary carries what the confirmation text tells the customer.
type BookingSummary struct {
	MovieName   string
	Theater     string
	MovieDate   string
	MovieTime   string
	TicketCount string
	Mobile      string
}

// SMSSender sends booking confirmations as direct SMS messages.
type SMSSender struct {
	sns     SNSService
	enabled bool
	logger  logger.Logger
}

func NewSMSSender(svc SNSService, enabled bool, log logger.Logger) *SMSSender {
	return &SMSSender{sns: svc, enabled: enabled, logger: log}
}

// SendBookingConfirmation texts the booking summary to the customer's mobile
// number. When sending is disabled it logs the skip and reports success.
func (s *SMSSender) SendBookingConfirmation(ctx context.Context, booking BookingSummary) error {
	if !s.enabled {
		s.logger.Info("sms notifications disabled, skipping confirmation", map[string]interface{}{
			"mobile": booking.Mobile,
		})
		return nil
	}

	body := fmt.Sprintf(
		"Your booking is confirmed.\nSummary of tickets:\nMovie: %s \nTheater:%s \nDate: %s %s \nTotal ticket: %s \n\nThank you for booking with chatbot. ",
		booking.MovieName, booking.Theater, booking.MovieDate, booking.MovieTime, booking.TicketCount,
	)

	_, err := s.sns.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(booking.Mobile),
		Message:     aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("publish booking confirmation: %w", err)
	}

	s.logger.Info("booking confirmation sent", map[string]interface{}{
		"mobile": booking.Mobile,
	})
	return nil
}
