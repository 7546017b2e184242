package registration

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/regform/handler"
	"github.com/dmitrymomot/regform/pkg/clientip"
	"github.com/dmitrymomot/regform/pkg/form"
	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/ratelimiter"
)

// Service serves the registration form of every visitor.
type Service struct {
	cfg       Config
	storage   Storage
	notifier  Notifier
	countries []Country
	sessions  *Sessions
	limiter   ratelimiter.Limiter
	clientIP  *clientip.Resolver
	now       func() time.Time
	log       *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithNotifier sets who is told about stored registrations.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSubmitLimiter throttles submit attempts per client address.
func WithSubmitLimiter(l ratelimiter.Limiter) Option {
	return func(s *Service) {
		if l != nil {
			s.limiter = l
		}
	}
}

// WithClientIP sets how client addresses are resolved. The default trusts no
// proxy header.
func WithClientIP(r *clientip.Resolver) Option {
	return func(s *Service) {
		if r != nil {
			s.clientIP = r
		}
	}
}

// WithCountries replaces the embedded country catalogue.
func WithCountries(countries []Country) Option {
	return func(s *Service) {
		if len(countries) > 0 {
			s.countries = countries
		}
	}
}

func NewService(cfg Config, storage Storage, opts ...Option) *Service {
	s := &Service{
		cfg:       cfg,
		storage:   storage,
		notifier:  NoopNotifier{},
		countries: Countries(),
		clientIP:  clientip.New(),
		now:       time.Now,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("registration"), logger.Storage(cfg.Driver))

	formLog := s.log.With(logger.Component("form"))
	s.sessions = NewSessions(cfg, func() *form.Form[Field] {
		return NewForm(s.countries, form.WithLogger(formLog))
	}, s.log)
	return s
}

func (s *Service) Sessions() *Sessions { return s.sessions }

// Healthcheck reports whether the storage backend is reachable.
func (s *Service) Healthcheck(ctx context.Context) error {
	return s.storage.Ping(ctx)
}

// Handle returns the router of the form, meant to be mounted at
// Config.BasePath.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(s.clientIP.Middleware)
	r.Use(s.sessions.Middleware)

	r.Get("/", handler.Wrap(s.page,
		handler.WithLogger[struct{}](s.log),
	))
	r.Post("/fields/{field}", handler.Wrap(s.changeField,
		handler.WithBinder[fieldRequest](bindFieldParam),
		handler.WithBinder[fieldRequest](bindFieldSignals),
		handler.WithLogger[fieldRequest](s.log),
	))
	r.Post("/agree", handler.Wrap(s.agree,
		handler.WithBinder[Signals](handler.BindSignals),
		handler.WithLogger[Signals](s.log),
	))
	r.Post("/submit", handler.Wrap(s.submit,
		handler.WithBinder[Signals](handler.BindSignals),
		handler.WithLogger[Signals](s.log),
	))
	r.Post("/reset", handler.Wrap(s.reset,
		handler.WithLogger[struct{}](s.log),
	))
	return r
}
