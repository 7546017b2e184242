package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Config lists the proxy headers that may name the client. Headers are only
// worth trusting when a proxy in front of the server overwrites them; with
// none configured the TCP peer address is used.
type Config struct {
	TrustedHeaders []string `env:"CLIENTIP_TRUSTED_HEADERS" envSeparator:","`
}

// Resolver finds the address of the client behind a request.
type Resolver struct {
	headers []string
}

// New returns a Resolver consulting headers in the given order before
// falling back to RemoteAddr. Typical values are CF-Connecting-IP,
// DO-Connecting-IP, X-Forwarded-For and X-Real-IP.
func New(headers ...string) *Resolver {
	clean := make([]string, 0, len(headers))
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			clean = append(clean, http.CanonicalHeaderKey(h))
		}
	}
	return &Resolver{headers: clean}
}

// NewFromConfig is New over cfg.TrustedHeaders.
func NewFromConfig(cfg Config) *Resolver {
	return New(cfg.TrustedHeaders...)
}

// IP returns the normalized client address of r, or "" when no trusted
// source holds a valid one.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		// X-Forwarded-For and friends may carry a list; the first valid entry
		// is the client
		for candidate := range strings.SplitSeq(r.Header.Get(h), ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
