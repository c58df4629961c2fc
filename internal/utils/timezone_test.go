package utils

import (
	"testing"
	"time"
)

func TestConvertToZoneRendersInstantInTargetZone(t *testing.T) {
	instant := time.Date(2026, 9, 1, 1, 30, 0, 0, time.UTC)

	got := ConvertToZone(instant, "UTC")
	if got != "2026-09-01T01:30:00Z" {
		t.Fatalf("UTC rendering wrong: %s", got)
	}

	parsed, err := time.Parse(time.RFC3339, ConvertToZone(instant, "America/New_York"))
	if err != nil {
		t.Fatalf("output not RFC3339: %v", err)
	}
	if !parsed.Equal(instant) {
		t.Fatalf("conversion changed the instant: %v != %v", parsed, instant)
	}
}

func TestConvertToZoneDefaultsToCanonicalZone(t *testing.T) {
	instant := time.Date(2026, 9, 1, 1, 30, 0, 0, time.UTC)
	if got, want := ConvertToZone(instant, ""), ConvertToZone(instant, CanonicalZone); got != want {
		t.Fatalf("empty zone should mean canonical zone: %s != %s", got, want)
	}
}

func TestConvertToZoneSoftFailsOnUnknownZone(t *testing.T) {
	instant := time.Date(2026, 9, 1, 1, 30, 0, 0, time.UTC)

	got := ConvertToZone(instant, "Not/AZone")
	want := ConvertToZone(instant, CanonicalZone)
	if got != want {
		t.Fatalf("unknown zone should fall back to canonical rendering: %s != %s", got, want)
	}

	parsed, err := time.Parse(time.RFC3339, got)
	if err != nil {
		t.Fatalf("fallback output not RFC3339: %v", err)
	}
	if !parsed.Equal(instant) {
		t.Fatalf("fallback changed the instant: %v != %v", parsed, instant)
	}
}
