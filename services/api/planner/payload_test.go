package planner

import (
	"math"
	"reflect"
	"testing"
	"time"
)

var siderealKeys = []string{"ra", "dec", "proper_motion_ra", "proper_motion_dec", "epoch", "parallax"}

var nonSiderealKeys = []string{
	"epoch_of_elements", "epoch_of_perihelion", "orbital_inclination", "longitude_of_ascending_node",
	"longitude_of_perihelion", "argument_of_perihelion", "mean_distance", "perihelion_distance",
	"eccentricity", "mean_anomaly", "daily_motion",
}

func fullState(targetType TargetType) FilterState {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	return FilterState{
		Base: BaseParams{
			Start:            &start,
			End:              &end,
			Telescopes:       []string{"lco.coj.1m0a"},
			MaxAirmass:       Float(2),
			MinLunarDistance: Float(30),
			MaxLunarPhase:    Float(0.5),
		},
		TargetType: targetType,
		Sidereal: SiderealTarget{
			RA: Float(10), Dec: Float(-5), ProperMotionRA: Float(1), ProperMotionDec: Float(2),
			Epoch: Float(2000), Parallax: Float(0.3),
		},
		NonSidereal: NonSiderealTarget{
			EpochOfElements: Float(60000), EpochOfPerihelion: Float(60010), OrbitalInclination: Float(12),
			LongitudeOfAscendingNode: Float(80), LongitudeOfPerihelion: Float(90), ArgumentOfPerihelion: Float(10),
			MeanDistance: Float(2.7), PerihelionDistance: Float(2.5), Eccentricity: Float(0.07),
			MeanAnomaly: Float(100), DailyMotion: Float(0.2),
		},
	}
}

func TestBuildPayloadOmitsInactiveTarget(t *testing.T) {
	cases := []struct {
		targetType TargetType
		want       []string
		forbidden  []string
	}{
		{TargetSidereal, siderealKeys, nonSiderealKeys},
		{TargetNonSidereal, nonSiderealKeys, siderealKeys},
	}

	for _, tc := range cases {
		t.Run(string(tc.targetType), func(t *testing.T) {
			p := BuildPayload(fullState(tc.targetType))
			for _, key := range tc.want {
				if _, ok := p[key]; !ok {
					t.Errorf("expected %s in payload", key)
				}
			}
			for _, key := range tc.forbidden {
				if _, ok := p[key]; ok {
					t.Errorf("inactive target key %s leaked into payload", key)
				}
			}
			for _, key := range []string{"start", "end", "telescopes", "max_airmass", "min_lunar_distance", "max_lunar_phase"} {
				if _, ok := p[key]; !ok {
					t.Errorf("expected base key %s", key)
				}
			}
		})
	}
}

func TestBuildPayloadKeepsZeroDropsAbsent(t *testing.T) {
	s := fullState(TargetSidereal)
	s.Base.MinLunarDistance = Float(0)
	s.Base.MaxLunarPhase = nil
	s.Base.MaxAirmass = Float(math.NaN())
	s.Base.Telescopes = []string{}
	s.Sidereal.RA = Float(0)
	s.Sidereal.Parallax = nil

	p := BuildPayload(s)

	if v, ok := p["min_lunar_distance"]; !ok || v != 0.0 {
		t.Fatalf("expected min_lunar_distance=0, got %v (present=%v)", v, ok)
	}
	if v, ok := p["ra"]; !ok || v != 0.0 {
		t.Fatalf("expected ra=0, got %v (present=%v)", v, ok)
	}
	for _, key := range []string{"max_lunar_phase", "max_airmass", "telescopes", "parallax"} {
		if _, ok := p[key]; ok {
			t.Errorf("expected %s to be omitted", key)
		}
	}
	if p["start"] != "2024-03-01T00:00:00Z" {
		t.Fatalf("unexpected start %v", p["start"])
	}
}

func TestPayloadOverrides(t *testing.T) {
	p := BuildPayload(fullState(TargetSidereal)).apply(Overrides{Telescopes: []string{"A", "C"}})
	if !reflect.DeepEqual(p["telescopes"], []string{"A", "C"}) {
		t.Fatalf("expected override telescopes, got %v", p["telescopes"])
	}

	p = BuildPayload(fullState(TargetSidereal)).apply(Overrides{})
	if !reflect.DeepEqual(p["telescopes"], []string{"lco.coj.1m0a"}) {
		t.Fatalf("expected base telescopes without override, got %v", p["telescopes"])
	}
}

func TestBuildPayloadDoesNotAliasState(t *testing.T) {
	s := fullState(TargetSidereal)
	p := BuildPayload(s)
	s.Base.Telescopes[0] = "changed"
	if p["telescopes"].([]string)[0] != "lco.coj.1m0a" {
		t.Fatal("payload shares the telescope slice with the filter state")
	}
}
