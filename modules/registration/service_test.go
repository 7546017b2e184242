package registration_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/regform/modules/registration"
	"github.com/dmitrymomot/regform/pkg/clientip"
	"github.com/dmitrymomot/regform/pkg/ratelimiter"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Save(ctx context.Context, rec registration.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockStorage) Get(ctx context.Context, id uuid.UUID) (registration.Record, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(registration.Record), ret.Error(1)
}

func (m *mockStorage) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, rec registration.Record) error {
	return m.Called(ctx, rec).Error(0)
}

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T, storage registration.Storage, opts ...registration.Option) *registration.Service {
	t.Helper()
	cfg := registration.DefaultConfig()
	cfg.BcryptCost = bcrypt.MinCost
	opts = append([]registration.Option{registration.WithClock(func() time.Time { return fixedNow })}, opts...)
	return registration.NewService(cfg, storage, opts...)
}

// browser keeps the session cookie between requests, the way a real one does.
type browser struct {
	t       *testing.T
	h       http.Handler
	addr    string
	cookies []*http.Cookie
}

func newBrowser(t *testing.T, svc *registration.Service) *browser {
	t.Helper()
	return newBrowserAt(t, svc, "")
}

// newBrowserAt is newBrowser for a client connecting from addr.
func newBrowserAt(t *testing.T, svc *registration.Service, addr string) *browser {
	t.Helper()
	b := &browser{t: t, h: svc.Handle(), addr: addr}
	rec := b.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	return b
}

func (b *browser) send(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	if b.addr != "" {
		req.RemoteAddr = b.addr
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)
	if cs := rec.Result().Cookies(); len(cs) > 0 {
		b.cookies = cs
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.send(httptest.NewRequest(http.MethodGet, path, nil))
}

// post issues a Datastar request carrying signals as its body.
func (b *browser) post(path, signals string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(signals))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	return b.send(req)
}

const validSignals = `{
	"fullName": "Ann Lee",
	"email": "ann@example.com",
	"password": "Secret123",
	"phoneNumber": "+962 79 123 4567",
	"age": "30",
	"country": "jordan",
	"agreed": true
}`

func TestService_Page(t *testing.T) {
	t.Parallel()

	h := newService(t, registration.NewMemoryStorage()).Handle()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Len(t, rec.Result().Cookies(), 1)

	body := rec.Body.String()
	for _, want := range []string{
		`id="registration"`,
		`data-signals=`,
		`placeholder="Enter your full name"`,
		`placeholder="Enter your age from 18 - 90"`,
		`<option value="">Select your country</option>`,
		`<option value="ksa">KSA</option>`,
		`I agree to the terms and conditions`,
		`id="fullName-error"`,
		`id="notice"`,
		`@post(&#39;/register/fields/email&#39;)`,
	} {
		assert.Contains(t, body, want)
	}
}

func TestService_ChangeField(t *testing.T) {
	t.Parallel()

	b := newBrowser(t, newService(t, registration.NewMemoryStorage()))

	rec := b.post("/fields/email", `{"email":"ann@"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, `id="email-error"`)
	assert.Contains(t, body, "Please enter a valid email")
	assert.Contains(t, body, "datastar-patch-signals")
	assert.Contains(t, body, `"canSubmit":false`)
	assert.NotContains(t, body, "fullName-error", "only the changed field is patched")

	rec = b.post("/fields/email", `{"email":"ann@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="email-error"></p>`)
}

func TestService_ChangeField_NumberSignal(t *testing.T) {
	t.Parallel()

	b := newBrowser(t, newService(t, registration.NewMemoryStorage()))

	rec := b.post("/fields/age", `{"age":12}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter a valid age")

	rec = b.post("/fields/age", `{"age":42}`)
	assert.Contains(t, rec.Body.String(), `id="age-error"></p>`)
}

func TestService_ChangeField_BadRequests(t *testing.T) {
	t.Parallel()

	b := newBrowser(t, newService(t, registration.NewMemoryStorage()))

	assert.Equal(t, http.StatusNotFound, b.post("/fields/nickname", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, b.post("/fields/email", `{"email":`).Code)
	assert.Equal(t, http.StatusBadRequest, b.post("/fields/email", `{"email":{"nested":true}}`).Code)

	plain := httptest.NewRequest(http.MethodPost, "/fields/email", strings.NewReader(`{"email":"a"}`))
	assert.Equal(t, http.StatusBadRequest, b.send(plain).Code)
}

func TestService_CanSubmit(t *testing.T) {
	t.Parallel()

	b := newBrowser(t, newService(t, registration.NewMemoryStorage()))

	fields := map[string]string{
		"fullName":    `"Ann"`,
		"email":       `"x"`,
		"password":    `"x"`,
		"phoneNumber": `"x"`,
		"age":         `"x"`,
		"country":     `"x"`,
	}
	for name, value := range fields {
		rec := b.post("/fields/"+name, `{"`+name+`":`+value+`}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"canSubmit":false`)
	}

	// filled but invalid values still enable the button once terms are agreed
	rec := b.post("/agree", `{"agreed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"canSubmit":true`)

	rec = b.post("/agree", `{"agreed":false}`)
	assert.Contains(t, rec.Body.String(), `"canSubmit":false`)
}

func TestService_Submit(t *testing.T) {
	t.Parallel()

	storage := registration.NewMemoryStorage()
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.AnythingOfType("registration.Record")).Return(nil).Once()

	b := newBrowser(t, newService(t, storage, registration.WithNotifier(notifier)))

	rec := b.post("/submit", validSignals)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), registration.MsgSubmitted)
	assert.Contains(t, rec.Body.String(), "notice-success")

	all := storage.All()
	require.Len(t, all, 1)
	got := all[0]
	assert.Equal(t, "Ann Lee", got.FullName)
	assert.Equal(t, "ann@example.com", got.Email)
	assert.Equal(t, 30.0, got.Age)
	assert.Equal(t, "jordan", got.Country)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.True(t, got.CheckPassword("Secret123"))

	notifier.AssertExpectations(t)
}

func TestService_Submit_LongPassword(t *testing.T) {
	t.Parallel()

	password := "Aa1" + strings.Repeat("x", 70)
	signals := strings.Replace(validSignals, `"Secret123"`, `"`+password+`"`, 1)

	storage := registration.NewMemoryStorage()
	b := newBrowser(t, newService(t, storage))

	rec := b.post("/submit", signals)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), registration.MsgSubmitted)
	assert.NotContains(t, rec.Body.String(), registration.MsgSaveFailed)

	all := storage.All()
	require.Len(t, all, 1)
	assert.True(t, all[0].CheckPassword(password))
}

func TestService_Submit_Rejected(t *testing.T) {
	t.Parallel()

	t.Run("terms not agreed", func(t *testing.T) {
		t.Parallel()
		storage := registration.NewMemoryStorage()
		b := newBrowser(t, newService(t, storage))

		rec := b.post("/submit", strings.Replace(validSignals, `"agreed": true`, `"agreed": false`, 1))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), registration.MsgRejected)
		assert.Contains(t, rec.Body.String(), "notice-error")
		assert.Empty(t, storage.All())
	})

	t.Run("invalid fields", func(t *testing.T) {
		t.Parallel()
		storage := registration.NewMemoryStorage()
		b := newBrowser(t, newService(t, storage))

		rec := b.post("/submit", strings.Replace(validSignals, `"age": "30"`, `"age": "17"`, 1))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, registration.MsgRejected)
		assert.Contains(t, body, "Please enter a valid age")
		for _, f := range registration.Fields() {
			assert.Contains(t, body, `id="`+registration.ErrorID(f)+`"`)
		}
		assert.Empty(t, storage.All())
	})

	t.Run("empty form", func(t *testing.T) {
		t.Parallel()
		storage := registration.NewMemoryStorage()
		b := newBrowser(t, newService(t, storage))

		rec := b.post("/submit", `{"agreed":true}`)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Full Name is required")
		assert.Contains(t, body, "Country is required")
		assert.Empty(t, storage.All())
	})
}

func TestService_Submit_StorageFailure(t *testing.T) {
	t.Parallel()

	storage := &mockStorage{}
	storage.On("Save", mock.Anything, mock.Anything).Return(registration.ErrFailedToSave).Once()
	notifier := &mockNotifier{}

	b := newBrowser(t, newService(t, storage, registration.WithNotifier(notifier)))

	rec := b.post("/submit", validSignals)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), registration.MsgSaveFailed)
	assert.NotContains(t, rec.Body.String(), registration.MsgSubmitted)

	storage.AssertExpectations(t)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestService_Submit_NotifierFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	storage := registration.NewMemoryStorage()
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	b := newBrowser(t, newService(t, storage, registration.WithNotifier(notifier)))

	rec := b.post("/submit", validSignals)
	assert.Contains(t, rec.Body.String(), registration.MsgSubmitted)
	assert.Len(t, storage.All(), 1)
}

func TestService_Reset(t *testing.T) {
	t.Parallel()

	svc := newService(t, registration.NewMemoryStorage())
	b := newBrowser(t, svc)

	b.post("/submit", strings.Replace(validSignals, `"email": "ann@example.com"`, `"email": "bad"`, 1))

	rec := b.post("/reset", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="registration"`)
	assert.NotContains(t, body, "Please enter a valid email")
	assert.Contains(t, body, `"fullName":""`)
	assert.Contains(t, body, `"agreed":false`)

	// a field change after reset sees the initial values again
	rec = b.post("/fields/country", `{"country":"usa"}`)
	assert.Contains(t, rec.Body.String(), `"canSubmit":false`)
}

func TestService_PageReloadStartsOver(t *testing.T) {
	t.Parallel()

	b := newBrowser(t, newService(t, registration.NewMemoryStorage()))
	b.post("/fields/fullName", `{"fullName":"Ann"}`)

	rec := b.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `&#34;fullName&#34;:&#34;&#34;`)
}

func TestService_Healthcheck(t *testing.T) {
	t.Parallel()

	storage := &mockStorage{}
	storage.On("Ping", mock.Anything).Return(registration.ErrStorageUnavailable).Once()

	err := newService(t, storage).Healthcheck(context.Background())
	assert.ErrorIs(t, err, registration.ErrStorageUnavailable)
	storage.AssertExpectations(t)
}

func TestService_Submit_Throttled(t *testing.T) {
	t.Parallel()

	cfg := ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Hour}
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(cfg), cfg)
	require.NoError(t, err)

	storage := registration.NewMemoryStorage()
	b := newBrowser(t, newService(t, storage, registration.WithSubmitLimiter(limiter)))

	rejected := strings.Replace(validSignals, `"agreed": true`, `"agreed": false`, 1)
	for range 2 {
		rec := b.post("/submit", rejected)
		assert.Contains(t, rec.Body.String(), registration.MsgRejected)
	}

	rec := b.post("/submit", validSignals)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), registration.MsgTooManyAttempts)
	assert.Empty(t, storage.All())

	svc := newService(t, storage, registration.WithSubmitLimiter(limiter))
	rec = newBrowser(t, svc).post("/submit", validSignals)
	assert.Contains(t, rec.Body.String(), registration.MsgTooManyAttempts, "a new session does not reset the limit")

	rec = newBrowserAt(t, svc, "203.0.113.7:4000").post("/submit", validSignals)
	assert.Contains(t, rec.Body.String(), registration.MsgSubmitted, "limits are per client address")
}

func TestService_Submit_ThrottledWithoutCookie(t *testing.T) {
	t.Parallel()

	cfg := ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour}
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(cfg), cfg)
	require.NoError(t, err)

	storage := registration.NewMemoryStorage()
	svc := newService(t, storage, registration.WithSubmitLimiter(limiter))
	h := svc.Handle()

	var submitted, throttled int
	for range 5 {
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(validSignals))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Datastar-Request", "true")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		if strings.Contains(body, registration.MsgSubmitted) {
			submitted++
		}
		if strings.Contains(body, registration.MsgTooManyAttempts) {
			throttled++
		}
	}

	assert.Equal(t, 1, submitted)
	assert.Equal(t, 4, throttled)
	assert.Len(t, storage.All(), 1)
	assert.Zero(t, svc.Sessions().Len(), "cookieless posts leave no sessions behind")
}

func TestService_Submit_TrustedProxyHeader(t *testing.T) {
	t.Parallel()

	cfg := ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour}
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(cfg), cfg)
	require.NoError(t, err)

	svc := newService(t, registration.NewMemoryStorage(),
		registration.WithSubmitLimiter(limiter),
		registration.WithClientIP(clientip.New("X-Forwarded-For")),
	)

	submit := func(forwardedFor string) string {
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(validSignals))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Datastar-Request", "true")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rec := httptest.NewRecorder()
		svc.Handle().ServeHTTP(rec, req)
		return rec.Body.String()
	}

	assert.Contains(t, submit("198.51.100.1"), registration.MsgSubmitted)
	assert.Contains(t, submit("198.51.100.1, 10.0.0.1"), registration.MsgTooManyAttempts)
	assert.Contains(t, submit("198.51.100.2"), registration.MsgSubmitted)
}
