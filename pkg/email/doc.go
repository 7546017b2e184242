// Package email sends transactional mail through Postmark, or writes it to
// disk during development.
//
//	var sender email.Sender = email.NewDevSender("./tmp/mail")
//	if cfg.PostmarkServerToken != "" {
//	    sender, err = email.NewPostmarkSender(cfg)
//	}
//
//	body, err := email.Render(ctx, confirmationView(rec))
//	err = sender.Send(ctx, email.Message{
//	    To:       rec.Email,
//	    Subject:  "Registration received",
//	    BodyHTML: body,
//	    Tag:      "registration",
//	})
//
// Messages are validated with go-playground/validator before any provider
// is contacted; an invalid message fails with ErrInvalidMessage.
package email
