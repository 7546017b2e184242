package clientip_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/regform/pkg/clientip"
	"github.com/dmitrymomot/regform/pkg/logger"
)

func TestResolver_IP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		trusted    []string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "remote address without trusted headers",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.178"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "10.0.0.1",
		},
		{
			name:    "first trusted header wins",
			trusted: []string{"cf-connecting-ip", "X-Forwarded-For"},
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.195",
				"X-Forwarded-For":  "192.168.1.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name:       "first valid entry of a list",
			trusted:    []string{"X-Forwarded-For"},
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.178, 203.0.113.195"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name:       "invalid header falls through",
			trusted:    []string{"X-Real-IP", " "},
			headers:    map[string]string{"X-Real-IP": "not-an-ip"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "10.0.0.1",
		},
		{
			name:       "ipv6 remote address",
			remoteAddr: "[2001:db8::1]:8080",
			expected:   "2001:db8::1",
		},
		{
			name:       "remote address without port",
			remoteAddr: "192.0.2.7",
			expected:   "192.0.2.7",
		},
		{
			name:       "unusable remote address",
			remoteAddr: "pipe",
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, clientip.New(tt.trusted...).IP(req))
		})
	}
}

func TestResolver_Middleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.NewFromConfig(clientip.Config{TrustedHeaders: []string{"X-Real-IP"}}).
		Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got = clientip.FromContext(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "192.168.1.1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "192.168.1.1", got)
	assert.Empty(t, clientip.FromContext(context.Background()))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithContextExtractors(clientip.LoggerExtractor()),
	)

	log.InfoContext(clientip.WithContext(context.Background(), "203.0.113.9"), "hello")
	require.Contains(t, buf.String(), `"client_ip":"203.0.113.9"`)

	buf.Reset()
	log.Log(context.Background(), slog.LevelInfo, "bare")
	assert.NotContains(t, buf.String(), "client_ip")
}
