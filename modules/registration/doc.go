// Package registration serves the registration form.
//
// Every browser session owns one form.Form[Field], kept in an LRU keyed by a
// session cookie. The page is rendered once; afterwards each keystroke posts
// the Datastar signal store to /fields/{field}, the session form re-validates
// that single field and the response patches its error element and the
// canSubmit signal. Submitting validates every field, and only when the form
// is valid and the terms are accepted is a Record stored and a confirmation
// sent.
//
//	svc := registration.NewService(cfg, storage,
//	    registration.WithLogger(log),
//	    registration.WithNotifier(registration.NewEmailNotifier(sender, log)),
//	)
//	r.Mount("/register", svc.Handle())
//
// Storage backends live in storage_*.go and are chosen by Config.Driver.
package registration
