package registration

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/regform/pkg/cache"
	"github.com/dmitrymomot/regform/pkg/form"
	"github.com/dmitrymomot/regform/pkg/logger"
)

// Session is the form state of one visitor. The form engine does no locking
// of its own, so every access goes through Update or Snapshot.
type Session struct {
	id     string
	mu     sync.Mutex
	form   *form.Form[Field]
	agreed bool
}

// State is what handlers may touch while a Session is locked.
type State struct {
	Form   *form.Form[Field]
	Agreed bool
}

// CanSubmit reports whether the submit button should be enabled.
func (s *State) CanSubmit() bool {
	return s.Agreed && s.Form.Filled()
}

// Snapshot is a copy of a Session taken under its lock.
type Snapshot struct {
	Values    form.Values[Field]
	Errors    form.Errors[Field]
	Agreed    bool
	CanSubmit bool
}

func (s *Session) ID() string { return s.id }

// Update runs fn with the session locked and returns a snapshot of the
// state fn left behind.
func (s *Session) Update(fn func(st *State) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &State{Form: s.form, Agreed: s.agreed}
	err := fn(st)
	s.agreed = st.Agreed
	return s.snapshot(), err
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	st := State{Form: s.form, Agreed: s.agreed}
	return Snapshot{
		Values:    s.form.Values(),
		Errors:    s.form.Errors(),
		Agreed:    s.agreed,
		CanSubmit: st.CanSubmit(),
	}
}

type sessionContextKey struct{}

// SessionFromContext returns the session attached by Sessions.Middleware.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok && s != nil
}

// SessionIDExtractor adds session_id to log records of requests that went
// through Sessions.Middleware.
func SessionIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if s, ok := SessionFromContext(ctx); ok {
			return logger.SessionID(s.id), true
		}
		return slog.Attr{}, false
	}
}

// Sessions keeps one Session per cookie in a bounded LRU. Idle sessions are
// dropped after Config.SessionTTL.
type Sessions struct {
	store      *cache.LRU[string, *Session]
	newForm    func() *form.Form[Field]
	cookieName string
	secure     bool
	path       string
	ttl        time.Duration
	log        *slog.Logger
}

// NewSessions builds the registry. newForm is called once per new session.
func NewSessions(cfg Config, newForm func() *form.Form[Field], log *slog.Logger) *Sessions {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("sessions"))

	s := &Sessions{
		newForm:    newForm,
		cookieName: cfg.CookieName,
		secure:     cfg.CookieSecure,
		path:       cfg.BasePath,
		ttl:        cfg.SessionTTL,
		log:        log,
	}
	s.store = cache.NewLRU(cfg.SessionCapacity,
		cache.WithTTL[string, *Session](cfg.SessionTTL),
		cache.WithEvictCallback(func(id string, _ *Session) {
			log.Debug("session dropped", logger.SessionID(id))
		}),
	)
	return s
}

// Get returns the session for id, creating it when needed.
func (s *Sessions) Get(id string) *Session {
	sess, loaded := s.store.GetOrPut(id, func() *Session {
		return &Session{id: id, form: s.newForm()}
	})
	if !loaded {
		s.log.Debug("session created", logger.SessionID(id))
	}
	return sess
}

// Len returns the number of tracked sessions.
func (s *Sessions) Len() int { return s.store.Len() }

// Middleware attaches the visitor's Session to the request context, issuing
// a new session cookie when the request carries none or an invalid one.
// Only page loads register a new session; other cookieless requests get one
// that is never stored.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *Session
		if id := s.sessionID(r); id != "" {
			sess = s.Get(id)
		} else {
			id = uuid.NewString()
			http.SetCookie(w, s.cookie(id))
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				sess = s.Get(id)
			} else {
				sess = &Session{id: id, form: s.newForm()}
			}
		}
		ctx := context.WithValue(r.Context(), sessionContextKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Sessions) sessionID(r *http.Request) string {
	c, err := r.Cookie(s.cookieName)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return ""
	}
	return id.String()
}

func (s *Sessions) cookie(id string) *http.Cookie {
	c := &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     s.path,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.ttl > 0 {
		c.MaxAge = int(s.ttl.Seconds())
	}
	return c
}

// Sweep drops expired sessions every interval until ctx is done.
func (s *Sessions) Sweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.DeleteExpired(); n > 0 {
				s.log.Debug("expired sessions swept", slog.Int("count", n))
			}
		}
	}
}
