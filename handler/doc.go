// Package handler adapts typed handler functions to http.HandlerFunc and
// renders their results as full HTML pages or Datastar SSE patches.
//
//	h := handler.Wrap(func(ctx handler.Context, req ChangeRequest) handler.Response {
//	    return handler.Patches(
//	        handler.Element(views.FieldError(req.Field, msg)),
//	        handler.Signals(map[string]any{"canSubmit": ok}),
//	    )
//	}, handler.WithBinder[ChangeRequest](handler.BindSignals))
//
// A Bind fills the request value, decorators wrap the handler and the
// ErrorHandler renders binding and rendering failures. Errors that carry an
// HTTP status implement StatusError; anything else becomes a 500.
package handler
