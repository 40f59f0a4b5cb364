// Package requestmeta resolves scheme, origin and client address for incoming
// browser requests.
package requestmeta

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// Policy controls which proxy headers are believed.
//
// Forwarded headers are ignored unless explicitly trusted, since any client
// can send them.
type Policy struct {
	TrustForwardedProto bool
	TrustForwardedFor   bool
}

// IsHTTPS reports whether r arrived over HTTPS under policy.
func IsHTTPS(r *http.Request, policy Policy) bool {
	return scheme(r, policy) == "https"
}

// SameOrigin reports whether the Origin header, or failing that the Referer,
// names the host the request was sent to.
func SameOrigin(r *http.Request, policy Policy) bool {
	if r == nil {
		return false
	}
	want := origin{scheme: scheme(r, policy)}
	want.host, want.port = splitHost(r.Host)
	if want.host == "" && r.URL != nil {
		want.host, want.port = splitHost(r.URL.Host)
	}
	if want.host == "" {
		return false
	}
	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if claimed == "" {
		return false
	}
	got, ok := parseOrigin(claimed)
	if !ok {
		return false
	}
	return got.equal(want)
}

// ClientIP returns the caller address used for rate limiting. With
// TrustForwardedFor set, the first X-Forwarded-For hop wins.
func ClientIP(r *http.Request, policy Policy) string {
	if r == nil {
		return ""
	}
	if policy.TrustForwardedFor {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

type origin struct {
	scheme string
	host   string
	port   string
}

func (o origin) equal(other origin) bool {
	if o.scheme == "" || o.scheme != other.scheme || o.host != other.host {
		return false
	}
	left, right := o.port, other.port
	if left == "" {
		left = defaultPort(o.scheme)
	}
	if right == "" {
		right = defaultPort(other.scheme)
	}
	return left != "" && left == right
}

func parseOrigin(raw string) (origin, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return origin{}, false
	}
	o := origin{
		scheme: strings.ToLower(parsed.Scheme),
		host:   strings.ToLower(parsed.Hostname()),
		port:   parsed.Port(),
	}
	if o.scheme == "" || o.host == "" {
		return origin{}, false
	}
	return o, true
}

func scheme(r *http.Request, policy Policy) string {
	if r == nil {
		return ""
	}
	if policy.TrustForwardedProto {
		switch proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); proto {
		case "http", "https":
			return proto
		}
	}
	if r.URL != nil {
		switch s := strings.ToLower(r.URL.Scheme); s {
		case "http", "https":
			return s
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	}
	return ""
}

func splitHost(raw string) (string, string) {
	parsed, err := url.Parse("//" + strings.TrimSpace(raw))
	if err != nil {
		return "", ""
	}
	return strings.ToLower(parsed.Hostname()), parsed.Port()
}
