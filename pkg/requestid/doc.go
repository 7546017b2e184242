// Package requestid tags every HTTP request with a correlation id.
//
// Middleware accepts the client's X-Request-ID when it is at most 128
// characters of letters, digits, '-' and '_', otherwise it generates one.
// The id is echoed in the response header and stored in the request
// context, where FromContext reads it back and LoggerExtractor adds it to
// slog records:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	http.ListenAndServe(":8080", requestid.Middleware(mux))
package requestid
