package nhl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNormalizeTeamAliasCoverage(t *testing.T) {
	// Property 9: every franchise has at least one informal alias that
	// resolves to its canonical code.
	samples := map[string]string{
		"habs":    "MTL",
		"leafs":   "TOR",
		"caps":    "WSH",
		"avs":     "COL",
		"isles":   "NYI",
		"bolts":   "TBL",
		"knights": "VGK",
	}
	for alias, want := range samples {
		got, ok := NormalizeTeam(alias)
		if !ok || got != want {
			t.Fatalf("NormalizeTeam(%q) = (%q, %v), want (%q, true)", alias, got, ok, want)
		}
	}

	covered := map[string]bool{}
	for _, code := range teamAliases {
		covered[code] = true
	}
	for _, code := range KnownTeamCodes {
		if !covered[code] {
			t.Fatalf("no informal alias resolves to %s", code)
		}
	}
}

func TestNormalizeInjuryStatusPrecedence(t *testing.T) {
	cases := map[string]string{
		"Upper Body (LTIR)":        "LTIR",
		"IR - lower body":          "IR",
		"Day-To-Day, ankle":        "Day-Day",
		"Out indefinitely":         "Out",
		"Questionable - illness":   "Questionable",
		"Probable":                 "Probable",
		"Suspended 3 games":        "Suspended",
		"unrecognized description": "Unknown",
	}
	for raw, want := range cases {
		if want == "Day-Day" {
			want = "Day-to-Day"
		}
		if got := NormalizeInjuryStatus(raw); got != want {
			t.Fatalf("NormalizeInjuryStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestClientGetReturnsErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := NewClient(2*time.Second, 0)
	_, err := c.get(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected error on 500 response")
	}
}

func TestClientGetSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(2*time.Second, 0)
	body, err := c.get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body: %s", body)
	}
}
