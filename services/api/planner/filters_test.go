package planner

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDefaultFilterState(t *testing.T) {
	now := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
	s := DefaultFilterState(now)

	if err := s.Validate(); err != nil {
		t.Fatalf("default state should validate: %v", err)
	}
	if !s.Base.End.Equal(now) || !s.Base.Start.Equal(now.Add(-7*24*time.Hour)) {
		t.Fatalf("unexpected window %v - %v", s.Base.Start, s.Base.End)
	}
	if len(s.Base.Telescopes) != 4 || s.TargetType != TargetSidereal {
		t.Fatalf("unexpected defaults %+v", s)
	}

	p := BuildPayload(s)
	if p["min_lunar_distance"] != 0.0 {
		t.Fatalf("expected default min_lunar_distance=0 in payload, got %v", p["min_lunar_distance"])
	}
	if _, ok := p["parallax"]; ok {
		t.Fatal("unset parallax must not be sent")
	}
}

func TestValidateRejectsBadState(t *testing.T) {
	s := fullState(TargetSidereal)
	s.TargetType = "COMET"
	if err := s.Validate(); !errors.Is(err, ErrInvalidFilters) {
		t.Fatalf("expected ErrInvalidFilters for unknown type, got %v", err)
	}

	s = fullState(TargetSidereal)
	before := s.Base.Start.Add(-time.Hour)
	s.Base.End = &before
	if err := s.Validate(); !errors.Is(err, ErrInvalidFilters) {
		t.Fatalf("expected ErrInvalidFilters for inverted window, got %v", err)
	}
}

func TestFilterStoreSnapshotsAreIndependent(t *testing.T) {
	store := NewFilterStore(fullState(TargetSidereal))

	snap := store.Snapshot()
	*snap.Sidereal.RA = 99
	snap.Base.Telescopes[0] = "changed"

	again := store.Snapshot()
	if *again.Sidereal.RA != 10 || again.Base.Telescopes[0] != "lco.coj.1m0a" {
		t.Fatalf("snapshot mutation leaked into the store: %+v", again)
	}
}

func TestFilterStoreUpdateKeepsStateOnError(t *testing.T) {
	store := NewFilterStore(fullState(TargetSidereal))

	err := store.Update(func(s *FilterState) {
		s.Base.MaxAirmass = Float(3)
		s.TargetType = ""
	})
	if err == nil {
		t.Fatal("expected invalid update to fail")
	}
	if got := *store.Snapshot().Base.MaxAirmass; got != 2 {
		t.Fatalf("failed update must not be stored, max_airmass=%v", got)
	}

	if err := store.Replace(fullState(TargetNonSidereal)); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if store.Snapshot().TargetType != TargetNonSidereal {
		t.Fatal("replace did not store the new state")
	}
}

func TestFilterStateJSONNulls(t *testing.T) {
	raw := `{
		"base": {"start": "2024-03-01T00:00:00Z", "end": null, "telescopes": ["A"], "max_airmass": 0, "min_lunar_distance": null},
		"target_type": "SIDEREAL",
		"sidereal_target": {"ra": 0, "dec": 12.5, "parallax": null}
	}`
	var s FilterState
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}

	p := BuildPayload(s)
	if p["max_airmass"] != 0.0 || p["ra"] != 0.0 {
		t.Fatalf("zero values must survive decoding, got %v", p)
	}
	for _, key := range []string{"end", "min_lunar_distance", "parallax"} {
		if _, ok := p[key]; ok {
			t.Errorf("null %s must be omitted", key)
		}
	}
}
