package mailer

import (
	"github.com/vincanto/bookings/internal/domain"
	"github.com/vincanto/bookings/pkg/logger"
)

// DevMailer logs mail instead of sending it; the default for local runs.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	logger.Info("[DEV MAIL]",
		"to", toEmail,
		"name", toName,
		"subject", subject,
		"body", text,
	)
	return "dev", nil
}

func (d *DevMailer) SendBookingConfirmation(b *domain.Reservation) error {
	subject, text, _ := confirmationBody(b)
	logger.Info("[DEV MAIL] booking confirmation",
		"to", b.GuestEmail,
		"subject", subject,
		"reservation_id", b.ID,
		"body", text,
	)
	return nil
}
