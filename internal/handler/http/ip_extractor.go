package http

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor resolves the client address a request is attributed to.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor keys clients by the TCP peer address.
// Forwarding headers are never consulted, so clients cannot choose their own key.
type RemoteAddrExtractor struct{}

// ExtractIP returns r.RemoteAddr without its port.
func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return hostFromAddr(r.RemoteAddr)
}

// TrustedProxyExtractor honours X-Forwarded-For and X-Real-IP only when the
// TCP peer is one of the configured proxies. Everyone else is keyed by RemoteAddr.
type TrustedProxyExtractor struct {
	proxies []netip.Prefix
	logger  *slog.Logger
}

// NewTrustedProxyExtractor creates an extractor trusting the given proxy ranges.
func NewTrustedProxyExtractor(proxies []netip.Prefix, logger *slog.Logger) *TrustedProxyExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrustedProxyExtractor{proxies: proxies, logger: logger}
}

// NewIPExtractor returns a TrustedProxyExtractor when proxies are configured
// and a RemoteAddrExtractor otherwise.
func NewIPExtractor(proxies []netip.Prefix, logger *slog.Logger) IPExtractor {
	if len(proxies) == 0 {
		return RemoteAddrExtractor{}
	}
	return NewTrustedProxyExtractor(proxies, logger)
}

// ExtractIP prefers the first X-Forwarded-For entry, then X-Real-IP, then
// RemoteAddr. Headers from an untrusted peer are ignored and logged.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	peer, err := hostFromAddr(r.RemoteAddr)
	if err != nil {
		return "", err
	}

	xff := r.Header.Get("X-Forwarded-For")
	xri := r.Header.Get("X-Real-IP")

	if !e.trusted(peer) {
		if xff != "" || xri != "" {
			e.logger.Warn("ignoring forwarding headers from untrusted peer",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff),
				slog.String("x_real_ip", xri),
			)
		}
		return peer, nil
	}

	if xff != "" {
		// 先頭がオリジナルのクライアント
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String(), nil
		}
	}
	if xri != "" {
		if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
			return ip.String(), nil
		}
	}
	return peer, nil
}

func (e *TrustedProxyExtractor) trusted(peer string) bool {
	addr, err := netip.ParseAddr(peer)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range e.proxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// hostFromAddr strips the port from "host:port"; a bare IP is returned as is.
func hostFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err == nil {
		return host, nil
	}
	if ip := net.ParseIP(addr); ip != nil {
		return ip.String(), nil
	}
	return "", fmt.Errorf("invalid remote address %q", addr)
}
