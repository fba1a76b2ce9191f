// The notify worker consumes reservation events off the bus and alerts the
// property owner. It runs separately from the API so a mail outage never
// slows down booking submissions.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vincanto/bookings/internal/platform/mailer"
	"github.com/vincanto/bookings/pkg/config"
	"github.com/vincanto/bookings/pkg/events"
	"github.com/vincanto/bookings/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.Email.OwnerEmail == "" {
		logger.Error("OWNER_EMAIL is not set, nothing to notify")
		os.Exit(1)
	}

	bus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("failed to connect to event bus", "error", err)
		os.Exit(1)
	}
	defer bus.Close()

	var mail mailer.Service
	switch {
	case cfg.Email.DevMode:
		mail = mailer.NewDevMailer()
	case cfg.Email.MailerSendKey != "":
		mail = mailer.NewMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.SMTPFrom)
	default:
		mail = mailer.NewSMTPMailer(cfg.Email.SMTPHost, cfg.Email.SMTPPort,
			cfg.Email.SMTPFrom, cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS)
	}

	// Queue subscription: running more than one worker splits the stream
	// instead of double-mailing the owner.
	err = bus.QueueSubscribe(events.ReservationCreated, "notify", func(msg *events.Message) {
		var event events.ReservationCreatedEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logger.Error("malformed reservation event", "error", err, "subject", msg.Subject)
			return
		}
		if err := notifyOwner(mail, cfg.Email.OwnerEmail, event); err != nil {
			logger.Error("failed to notify owner",
				"error", err, "reservation_id", event.ReservationID)
			return
		}
		logger.Info("owner notified", "reservation_id", event.ReservationID)
	})
	if err != nil {
		logger.Error("failed to subscribe", "error", err, "subject", events.ReservationCreated)
		os.Exit(1)
	}

	logger.Info("notify worker started", "subject", events.ReservationCreated)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("shutting down notify worker...")
}

func notifyOwner(mail mailer.Service, ownerEmail string, event events.ReservationCreatedEvent) error {
	subject := fmt.Sprintf("Nuova richiesta di prenotazione #%d", event.ReservationID)
	text := fmt.Sprintf(
		"Nuova richiesta di prenotazione da %s (%s).\n\nCheck-in:  %s\nCheck-out: %s\nTotale:    %d.%02d EUR\n",
		event.GuestName, event.GuestEmail,
		event.CheckIn.Format("02/01/2006"), event.CheckOut.Format("02/01/2006"),
		event.TotalAmount/100, event.TotalAmount%100)

	_, err := mail.Send(ownerEmail, "Vincanto", subject, text, "<pre>"+text+"</pre>")
	return err
}
