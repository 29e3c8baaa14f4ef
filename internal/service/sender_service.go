package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"reservas/internal/db"
)

const dateDisplayLayout = "02 Jan 2006"

// SenderService delivers reservation emails through SendGrid and, for users
// with a phone on file, SMS through Twilio. Delivery runs in a goroutine so
// a slow provider never holds up the request.
type SenderService struct {
	log *zap.Logger
}

func NewSenderService(log *zap.Logger) *SenderService {
	return &SenderService{log: log}
}

func (s *SenderService) ReservationCreated(user db.User, vehicle db.Vehicle, reservation db.Reservation) {
	subject := fmt.Sprintf("Your reservation is confirmed - %s", reservation.ID.Hex())
	body := fmt.Sprintf(
		"Hello %s,\n\nYour vehicle reservation is confirmed.\n\n"+
			"Reservation: %s\n"+
			"Vehicle: %s (plate %s)\n"+
			"From: %s\n"+
			"To: %s\n\n"+
			"Thank you for reserving with us.",
		user.Name, reservation.ID.Hex(), vehicle.Type, vehicle.Plate,
		reservation.StartDate.Format(dateDisplayLayout),
		reservation.EndDate.Format(dateDisplayLayout),
	)
	sms := fmt.Sprintf("Reservation %s confirmed. Pick-up: %s.",
		reservation.ID.Hex(), reservation.StartDate.Format(dateDisplayLayout))

	s.deliver(user, subject, body, sms)
}

func (s *SenderService) ReservationCancelled(user db.User, reservation db.Reservation) {
	subject := fmt.Sprintf("Your reservation was cancelled - %s", reservation.ID.Hex())
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation %s (from %s to %s) has been cancelled.",
		user.Name, reservation.ID.Hex(),
		reservation.StartDate.Format(dateDisplayLayout),
		reservation.EndDate.Format(dateDisplayLayout),
	)
	sms := fmt.Sprintf("Reservation %s has been cancelled.", reservation.ID.Hex())

	s.deliver(user, subject, body, sms)
}

func (s *SenderService) deliver(user db.User, subject, body, sms string) {
	go func() {
		if err := s.sendEmail(user.Email, user.Name, subject, body); err != nil {
			s.log.Warn("failed to send reservation email",
				zap.String("email", user.Email), zap.Error(err))
		}
		if user.Phone == "" {
			return
		}
		if err := s.sendSMS(user.Phone, sms); err != nil {
			s.log.Warn("failed to send reservation SMS",
				zap.String("phone", user.Phone), zap.Error(err))
		}
	}()
}

func (s *SenderService) sendEmail(toAddress, toName, subject, body string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not configured")
	}
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not configured")
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Reservas"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toAddress)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *SenderService) sendSMS(toNumber, body string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")
	if accountSid == "" || authToken == "" || fromNumber == "" {
		return fmt.Errorf("twilio credentials are not fully configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		s.log.Warn("destination number is not in E.164 format", zap.String("phone", toNumber))
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(body)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
