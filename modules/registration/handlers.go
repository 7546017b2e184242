package registration

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/regform/handler"
	"github.com/dmitrymomot/regform/pkg/clientip"
	"github.com/dmitrymomot/regform/pkg/logger"
)

type fieldRequest struct {
	Field   Field
	Signals Signals
}

func bindFieldParam(r *http.Request, v any) error {
	req := v.(*fieldRequest)
	f, err := ParseField(chi.URLParam(r, "field"))
	if err != nil {
		return handler.NotFound(err)
	}
	req.Field = f
	return nil
}

func bindFieldSignals(r *http.Request, v any) error {
	return handler.BindSignals(r, &v.(*fieldRequest).Signals)
}

func currentSession(ctx handler.Context) (*Session, error) {
	sess, ok := SessionFromContext(ctx)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// page starts over: a reload discards whatever the visitor typed before.
func (s *Service) page(ctx handler.Context, _ struct{}) handler.Response {
	sess, err := currentSession(ctx)
	if err != nil {
		return handler.Error(err)
	}
	snap, _ := sess.Update(func(st *State) error {
		st.Form.Reset()
		st.Agreed = false
		return nil
	})
	return handler.Page(PageView(snap, s.countries, s.cfg.BasePath))
}

func (s *Service) changeField(ctx handler.Context, req fieldRequest) handler.Response {
	sess, err := currentSession(ctx)
	if err != nil {
		return handler.Error(err)
	}
	v, err := req.Signals.Value(req.Field)
	if err != nil {
		return handler.Error(handler.BadRequest(err))
	}

	snap, err := sess.Update(func(st *State) error {
		return st.Form.Change(req.Field, v)
	})
	if err != nil {
		return handler.Error(err)
	}

	return handler.Patches(
		handler.Element(FieldError(req.Field, snap.Errors.Get(req.Field))),
		handler.Signals(map[string]any{SignalCanSubmit: snap.CanSubmit}),
	)
}

func (s *Service) agree(ctx handler.Context, sig Signals) handler.Response {
	sess, err := currentSession(ctx)
	if err != nil {
		return handler.Error(err)
	}
	snap, _ := sess.Update(func(st *State) error {
		st.Agreed = sig.Agreed()
		return nil
	})
	return handler.Patches(
		handler.Signals(map[string]any{SignalCanSubmit: snap.CanSubmit}),
	)
}

func (s *Service) submit(ctx handler.Context, sig Signals) handler.Response {
	sess, err := currentSession(ctx)
	if err != nil {
		return handler.Error(err)
	}
	if !s.allowSubmit(ctx, sess) {
		return handler.Patches(handler.Element(Notice(NoticeError, MsgTooManyAttempts)))
	}
	values, err := sig.Values()
	if err != nil {
		return handler.Error(handler.BadRequest(err))
	}

	var valid bool
	snap, err := sess.Update(func(st *State) error {
		if err := st.Form.Fill(values); err != nil {
			return err
		}
		st.Agreed = sig.Agreed()
		valid = st.Form.Validate()
		return nil
	})
	if err != nil {
		return handler.Error(handler.BadRequest(err))
	}

	patches := make([]handler.Patch, 0, len(Fields())+2)
	for _, f := range Fields() {
		patches = append(patches, handler.Element(FieldError(f, snap.Errors.Get(f))))
	}
	patches = append(patches, handler.Signals(map[string]any{SignalCanSubmit: snap.CanSubmit}))

	log := ctx.Logger()
	if !valid || !snap.Agreed {
		log.DebugContext(ctx, "submission rejected",
			"invalid_fields", len(snap.Errors),
			"agreed", snap.Agreed,
		)
		return handler.Patches(append(patches, handler.Element(Notice(NoticeError, MsgRejected)))...)
	}

	rec, err := NewRecord(snap.Values, s.cfg.BcryptCost, s.now())
	if err == nil {
		err = s.storage.Save(ctx, rec)
	}
	if err != nil {
		log.ErrorContext(ctx, "failed to store registration", logger.Error(err))
		return handler.Patches(append(patches, handler.Element(Notice(NoticeError, MsgSaveFailed)))...)
	}
	log.InfoContext(ctx, "registration stored", logger.RegistrationID(rec.ID))

	if err := s.notifier.Notify(ctx, rec); err != nil {
		// the registration is stored; a lost confirmation is not a failure
		log.WarnContext(ctx, "confirmation not sent", logger.RegistrationID(rec.ID), logger.Error(err))
	}

	return handler.Patches(append(patches, handler.Element(Notice(NoticeSuccess, MsgSubmitted)))...)
}

// allowSubmit fails open when the limiter errors. Attempts are counted per
// client address, or per session when the address is unknown.
func (s *Service) allowSubmit(ctx handler.Context, sess *Session) bool {
	if s.limiter == nil {
		return true
	}
	key := "session:" + sess.ID()
	if ip := clientip.FromContext(ctx); ip != "" {
		key = "ip:" + ip
	}
	res, err := s.limiter.Allow(ctx, key)
	if err != nil {
		ctx.Logger().WarnContext(ctx, "submit limiter failed", logger.Error(err))
		return true
	}
	if !res.Allowed() {
		ctx.Logger().InfoContext(ctx, "submit throttled", logger.Duration(res.RetryAfter(s.now())))
		return false
	}
	return true
}

func (s *Service) reset(ctx handler.Context, _ struct{}) handler.Response {
	sess, err := currentSession(ctx)
	if err != nil {
		return handler.Error(err)
	}
	snap, _ := sess.Update(func(st *State) error {
		st.Form.Reset()
		st.Agreed = false
		return nil
	})
	return handler.Patches(
		handler.Element(FormView(snap, s.countries, s.cfg.BasePath)),
		handler.Signals(SignalsOf(snap)),
	)
}
