package router

import (
	"testing"
	"time"
)

// TestNormalizeTeamAliasCoverage covers property 9 at the router layer:
// a handful of informal aliases across different franchises all resolve.
func TestNormalizeTeamAliasCoverage(t *testing.T) {
	cases := map[string]string{
		"habs":    "MTL",
		"leafs":   "TOR",
		"caps":    "WSH",
		"bolts":   "TBL",
		"TOR":     "TOR",
		"rangers": "NYR",
	}
	for alias, want := range cases {
		got, ok := NormalizeTeam(alias)
		if !ok || got != want {
			t.Fatalf("NormalizeTeam(%q) = (%q, %v), want (%q, true)", alias, got, ok, want)
		}
	}
}

func TestResolveTimeframeTonightTodayTomorrow(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	today := now.Truncate(24 * time.Hour)

	cases := map[string]time.Time{
		"":         today,
		"tonight":  today,
		"today":    today,
		"tomorrow": today.AddDate(0, 0, 1),
	}
	for phrase, want := range cases {
		if got := ResolveTimeframe(phrase, now); !got.Equal(want) {
			t.Fatalf("ResolveTimeframe(%q) = %v, want %v", phrase, got, want)
		}
	}
}

func TestResolveTimeframeWeekdaySameDayRollsForward(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC) // a Thursday
	got := ResolveTimeframe("thursday", now)
	today := now.Truncate(24 * time.Hour)
	if !got.Equal(today.AddDate(0, 0, 7)) {
		t.Fatalf("ResolveTimeframe same weekday = %v, want +7 days", got)
	}

	gotNext := ResolveTimeframe("friday", now)
	if !gotNext.Equal(today.AddDate(0, 0, 1)) {
		t.Fatalf("ResolveTimeframe(friday) = %v, want tomorrow", gotNext)
	}
}

func TestResolveTimeframeLiteralMonthDay(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := ResolveTimeframe("feb 3rd", now)
	want := time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ResolveTimeframe(feb 3rd) = %v, want %v", got, want)
	}

	// Invalid month falls through to today rather than panicking.
	fallback := ResolveTimeframe("notamonth 99", now)
	if !fallback.Equal(now.Truncate(24 * time.Hour)) {
		t.Fatalf("ResolveTimeframe with invalid phrase should fall back to today, got %v", fallback)
	}
}

func TestExtractSeasonFromTimeframe(t *testing.T) {
	if got := extractSeasonFromTimeframe("who led in xG in 2015-16?"); got != "20152016" {
		t.Fatalf("extractSeasonFromTimeframe = %q, want 20152016", got)
	}
	if got := extractSeasonFromTimeframe("tonight"); got != "" {
		t.Fatalf("extractSeasonFromTimeframe(tonight) = %q, want empty", got)
	}
}

func TestDisplaySeason(t *testing.T) {
	if got := displaySeason("20152016"); got != "2015-16" {
		t.Fatalf("displaySeason = %q, want 2015-16", got)
	}
	if got := displaySeason(""); got != "current" {
		t.Fatalf("displaySeason(\"\") = %q, want current", got)
	}
}

func TestClassificationValidateRejectsUnknownType(t *testing.T) {
	c := Classification{Type: "not_a_real_intent"}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error for unknown intent type")
	}

	valid := Classification{Type: "leaders"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid classification to pass, got %v", err)
	}
}
