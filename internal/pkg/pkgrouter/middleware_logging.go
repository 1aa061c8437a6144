package pkgrouter

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
)

const maxLoggedBodyBytes = 16 * 1024

// sensitiveKeys are masked in logged headers and bodies. Transfer
// counterparties are personal data and never reach the logs.
//
//nolint:gochecknoglobals // global for fast reuse
var sensitiveKeys = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"x-api-key":     {},
	"sender":        {},
	"recipient":     {},
}

func isSensitive(key string) bool {
	_, found := sensitiveKeys[strings.ToLower(key)]
	return found
}

func maskHeaders(headers http.Header) http.Header {
	result := headers.Clone()
	for key := range result {
		if isSensitive(key) {
			result.Set(key, "***")
		}
	}
	return result
}

func maskData(v any) any {
	switch val := v.(type) {
	case map[string]any:
		masked := make(map[string]any, len(val))
		for k, v2 := range val {
			if isSensitive(k) {
				masked[k] = "***"
			} else {
				masked[k] = maskData(v2)
			}
		}
		return masked
	case []any:
		res := make([]any, len(val))
		for i, v2 := range val {
			res[i] = maskData(v2)
		}
		return res
	default:
		return v
	}
}

// maskBody decodes a JSON payload and masks it. Anything else is logged as
// text, or omitted when it is not valid UTF-8.
func maskBody(body []byte, truncated bool) any {
	if len(body) == 0 {
		return nil
	}

	if !truncated {
		var decoded any
		if err := json.Unmarshal(body, &decoded); err == nil {
			return maskData(decoded)
		}
	}

	if !utf8.Valid(body) {
		return "<binary body omitted>"
	}
	if truncated {
		return string(body) + "...(truncated)"
	}
	return string(body)
}

// capBuffer keeps at most maxLoggedBodyBytes and remembers whether more was offered.
type capBuffer struct {
	bytes.Buffer
	capped bool
}

func (b *capBuffer) keep(p []byte) {
	if b.capped {
		return
	}
	remaining := maxLoggedBodyBytes - b.Len()
	if len(p) > remaining {
		b.Write(p[:remaining])
		b.capped = true
		return
	}
	b.Write(p)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	body   capBuffer
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.body.keep(p)

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *statusRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func matchedRoutePath(r *http.Request) string {
	pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath()
	if pattern != "" {
		return pattern
	}
	return r.URL.Path
}

// readRequestBody captures a bounded copy of the body for logging and leaves
// the full body readable by the handler.
func readRequestBody(r *http.Request) capBuffer {
	var captured capBuffer
	if r.Body == nil || r.Body == http.NoBody {
		return captured
	}

	//nolint:errcheck // best effort for logging only
	raw, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(raw))
	captured.keep(raw)
	return captured
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// middlewareLogging emits one record per request once the response is written.
// Route params (such as a transaction id) are attached as attributes.
func middlewareLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqBody := readRequestBody(r)

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		attrs := []slog.Attr{
			slog.String("method", r.Method),
			slog.String("route", matchedRoutePath(r)),
			slog.String("path", r.URL.Path),
			slog.String("query", r.URL.RawQuery),
			slog.Any("headers", maskHeaders(r.Header)),
			slog.Any("request_body", maskBody(reqBody.Bytes(), reqBody.capped)),
			slog.Int("status", status),
			slog.Int("bytes", rec.bytes),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			slog.Any("response_body", maskBody(rec.body.Bytes(), rec.body.capped)),
		}
		for _, p := range httprouter.ParamsFromContext(r.Context()) {
			if p.Key == httprouter.MatchedRoutePathParam {
				continue
			}
			attrs = append(attrs, slog.String("param_"+p.Key, p.Value))
		}

		slog.LogAttrs(r.Context(), levelForStatus(status), "request completed", attrs...)
	})
}

