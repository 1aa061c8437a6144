package pkgrouter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeCID(t *testing.T) {
	if got := normalizeCID("  abc  "); got != "abc" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := normalizeCID("\n"); got != "" {
		t.Fatalf("expected empty for newline, got %q", got)
	}
	if got := normalizeCID("abc\x00def"); got != "" {
		t.Fatalf("expected control characters rejected, got %q", got)
	}
	if got := normalizeCID("café"); got != "" {
		t.Fatalf("expected non-ASCII rejected, got %q", got)
	}
	long := strings.Repeat("a", 200)
	if got := normalizeCID(long); len(got) != 128 {
		t.Fatalf("expected length 128, got %d", len(got))
	}
}

func TestMaskHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "secret")
	headers.Set("X-Trace", "ok")

	masked := maskHeaders(headers)
	if got := masked.Get("Authorization"); got != "***" {
		t.Fatalf("expected masked authorization, got %q", got)
	}
	if got := masked.Get("X-Trace"); got != "ok" {
		t.Fatalf("expected X-Trace to stay, got %q", got)
	}
	if got := headers.Get("Authorization"); got != "secret" {
		t.Fatalf("expected original headers unchanged, got %q", got)
	}
}

func TestMaskData(t *testing.T) {
	input := map[string]any{
		"x-api-key": "secret",
		"data": map[string]any{
			"sender": "Checking account (1234)",
		},
		"transactions": []any{
			map[string]any{
				"recipient": "Landlord",
				"amount":    "1200",
			},
		},
	}

	masked := maskData(input).(map[string]any)
	if masked["x-api-key"] != "***" {
		t.Fatalf("expected masked api key")
	}
	if masked["data"].(map[string]any)["sender"] != "***" {
		t.Fatalf("expected masked nested sender")
	}
	items := masked["transactions"].([]any)
	if items[0].(map[string]any)["recipient"] != "***" {
		t.Fatalf("expected masked recipient inside list")
	}
	if items[0].(map[string]any)["amount"] != "1200" {
		t.Fatalf("expected amount to remain")
	}
}

func TestMaskBodyJSON(t *testing.T) {
	body := []byte(`{"sender":"Savings","description":"Rent"}`)
	parsed := maskBody(body, false)

	m, ok := parsed.(map[string]any)
	if !ok {
		encoded, _ := json.Marshal(parsed)
		t.Fatalf("expected map, got %s", string(encoded))
	}
	if m["sender"] != "***" {
		t.Fatalf("expected masked sender")
	}
	if m["description"] != "Rent" {
		t.Fatalf("expected description to remain")
	}
}

func TestMaskBodyTextAndBinary(t *testing.T) {
	if got := maskBody(nil, false); got != nil {
		t.Fatalf("expected nil for empty body, got %v", got)
	}
	if got := maskBody([]byte("plain"), false); got != "plain" {
		t.Fatalf("expected plain text, got %v", got)
	}
	if got := maskBody([]byte(`{"sender":`), true); got != `{"sender":...(truncated)` {
		t.Fatalf("expected truncated text, got %v", got)
	}
	if got := maskBody([]byte{0xff, 0xfe, 0xfd}, false); !reflect.DeepEqual(got, "<binary body omitted>") {
		t.Fatalf("expected binary body omission, got %v", got)
	}
}

func TestCapBuffer(t *testing.T) {
	var b capBuffer
	b.keep([]byte(strings.Repeat("a", maxLoggedBodyBytes-1)))
	if b.capped {
		t.Fatal("buffer capped too early")
	}
	b.keep([]byte("bc"))
	if !b.capped || b.Len() != maxLoggedBodyBytes {
		t.Fatalf("expected capped buffer of %d bytes, got capped=%v len=%d", maxLoggedBodyBytes, b.capped, b.Len())
	}
	b.keep([]byte("more"))
	if b.Len() != maxLoggedBodyBytes {
		t.Fatalf("expected no growth after cap, got %d", b.Len())
	}
}

func TestLevelForStatus(t *testing.T) {
	cases := map[int]slog.Level{
		http.StatusOK:                  slog.LevelInfo,
		http.StatusNoContent:           slog.LevelInfo,
		http.StatusNotFound:            slog.LevelWarn,
		http.StatusUnprocessableEntity: slog.LevelWarn,
		http.StatusInternalServerError: slog.LevelError,
	}
	for status, want := range cases {
		if got := levelForStatus(status); got != want {
			t.Fatalf("status %d: expected %v, got %v", status, want, got)
		}
	}
}

func TestMaskDataCounterparties(t *testing.T) {
	input := map[string]any{
		"description": "Friend payment",
		"sender":      "Checking account (1234)",
		"recipient":   "John Smith (9876)",
	}

	masked := maskData(input).(map[string]any)
	if masked["sender"] != "***" || masked["recipient"] != "***" {
		t.Fatalf("expected counterparties masked, got %v", masked)
	}
	if masked["description"] != "Friend payment" {
		t.Fatalf("expected description to remain")
	}
}
