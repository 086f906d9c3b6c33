package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRoute      = "route"
	KeyNamespace  = "namespace"
	KeyHref       = "href"
	KeyCandidate  = "candidate"
	KeyPath       = "path"
	KeyLocale     = "locale"
	KeyPage       = "page"
	KeyDurationMS = "duration_ms"
	KeyRequestID  = "request_id"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Route(r string) slog.Attr      { return slog.String(KeyRoute, r) }
func Namespace(ns string) slog.Attr { return slog.String(KeyNamespace, ns) }
func Href(h string) slog.Attr       { return slog.String(KeyHref, h) }
func Candidate(c string) slog.Attr  { return slog.String(KeyCandidate, c) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Locale(l string) slog.Attr     { return slog.String(KeyLocale, l) }
func Page(p string) slog.Attr       { return slog.String(KeyPage, p) }
func RequestID(id string) slog.Attr { return slog.String(KeyRequestID, id) }
func Method(m string) slog.Attr     { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr     { return slog.Int(KeyStatus, code) }
func RemoteAddr(a string) slog.Attr { return slog.String(KeyRemoteAddr, a) }

func DurationMS(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
