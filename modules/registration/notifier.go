package registration

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/regform/pkg/email"
	"github.com/dmitrymomot/regform/pkg/logger"
)

// Notifier is told about every stored registration.
type Notifier interface {
	Notify(ctx context.Context, rec Record) error
}

// NoopNotifier does nothing.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, Record) error { return nil }

const confirmationSubject = "Your registration is complete"

// EmailNotifier mails a confirmation to the registered address.
type EmailNotifier struct {
	sender    email.Sender
	countries []Country
	log       *slog.Logger
}

func NewEmailNotifier(sender email.Sender, log *slog.Logger) *EmailNotifier {
	if log == nil {
		log = logger.Discard()
	}
	return &EmailNotifier{
		sender:    sender,
		countries: Countries(),
		log:       log.With(logger.Component("notifier")),
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, rec Record) error {
	// cases.Caser keeps state, so one per call
	name := cases.Title(language.English).String(strings.ToLower(rec.FullName))

	body, err := email.Render(ctx, ConfirmationEmail(name, CountryLabel(n.countries, rec.Country)))
	if err != nil {
		return errors.Join(ErrFailedToNotify, err)
	}

	err = n.sender.Send(ctx, email.Message{
		To:       rec.Email,
		Subject:  confirmationSubject,
		BodyHTML: body,
		Tag:      "registration",
	})
	if err != nil {
		return errors.Join(ErrFailedToNotify, err)
	}

	n.log.DebugContext(ctx, "confirmation sent", logger.RegistrationID(rec.ID))
	return nil
}
