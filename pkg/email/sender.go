package email

import (
	"context"
	"errors"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"
)

// Sender delivers a Message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one outbound email.
type Message struct {
	To       string `json:"to" validate:"required,email"`
	Subject  string `json:"subject" validate:"required,max=200"`
	BodyHTML string `json:"-" validate:"required"`
	Tag      string `json:"tag,omitempty" validate:"omitempty,max=50"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the message fields.
func (m Message) Validate() error {
	if err := validate.Struct(m); err != nil {
		return errors.Join(ErrInvalidMessage, err)
	}
	return nil
}

// Render renders a templ component into an HTML string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
