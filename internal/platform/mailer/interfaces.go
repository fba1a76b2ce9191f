package mailer

import (
	"fmt"
	"strings"

	"github.com/vincanto/bookings/internal/domain"
)

// Service sends guest-facing mail. A send failure never affects the booking
// outcome; callers log it and move on, and the notify collaborator retries
// out of band.
type Service interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
	SendBookingConfirmation(b *domain.Reservation) error
}

// confirmationBody renders the plain-text and HTML parts of the booking
// request confirmation from the persisted record, never from client input.
func confirmationBody(b *domain.Reservation) (subject, text, html string) {
	subject = "Conferma richiesta di prenotazione - Vincanto"

	var sb strings.Builder
	fmt.Fprintf(&sb, "Gentile %s %s,\n\n", b.GuestName, b.GuestSurname)
	sb.WriteString("abbiamo ricevuto la tua richiesta di prenotazione.\n\n")
	fmt.Fprintf(&sb, "Check-in:  %s\n", b.CheckIn.Format("02/01/2006"))
	fmt.Fprintf(&sb, "Check-out: %s\n", b.CheckOut.Format("02/01/2006"))
	fmt.Fprintf(&sb, "Notti: %d - Ospiti paganti: %d\n\n", b.Cost.Nights, b.Cost.PayingGuests)
	fmt.Fprintf(&sb, "Soggiorno:          € %s\n", b.Cost.BasePrice.Euros())
	fmt.Fprintf(&sb, "Pulizia:            € %s\n", b.Cost.CleaningFee.Euros())
	if b.Cost.ParkingCost > 0 {
		fmt.Fprintf(&sb, "Parcheggio:         € %s\n", b.Cost.ParkingCost.Euros())
	}
	fmt.Fprintf(&sb, "Tassa di soggiorno: € %s\n", b.Cost.TouristTax.Euros())
	fmt.Fprintf(&sb, "Totale:             € %s\n", b.Cost.TotalAmount.Euros())
	if b.PaymentChoice == domain.PayDeposit {
		fmt.Fprintf(&sb, "Acconto da versare: € %s\n", b.Cost.DepositAmount.Euros())
	}
	sb.WriteString("\nTi ricontatteremo a breve per la conferma.\n")
	text = sb.String()

	html = "<pre>" + text + "</pre>"
	return subject, text, html
}
