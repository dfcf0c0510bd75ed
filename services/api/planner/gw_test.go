package planner

import (
	"errors"
	"reflect"
	"testing"

	"github.com/02loveslollipop/heroic-planner/internal/catalog"
	"github.com/02loveslollipop/heroic-planner/internal/models"
)

func TestBuildGWPayloadFiltersDetectors(t *testing.T) {
	s := fullState(TargetSidereal)
	s.Base.Telescopes = []string{"ligo.hanford.h1", "lowell.discovery.xyz"}

	p, qerr := BuildGWPayload(s, catalog.New(nil), 0)
	if qerr != nil {
		t.Fatalf("unexpected error: %v", qerr)
	}
	if !reflect.DeepEqual(p["telescopes"], []string{"ligo.hanford.h1"}) {
		t.Fatalf("expected only the detector, got %v", p["telescopes"])
	}
	if p["time_resolution_minutes"] != DefaultGWTimeResolutionMinutes {
		t.Fatalf("expected default resolution, got %v", p["time_resolution_minutes"])
	}
	if p["ra"] != 10.0 || p["dec"] != -5.0 {
		t.Fatalf("unexpected coordinates %v %v", p["ra"], p["dec"])
	}
	if _, ok := p["max_airmass"]; ok {
		t.Fatal("GW payload must not carry visibility constraints")
	}
}

func TestBuildGWPayloadWithoutDetectorsSendsSelection(t *testing.T) {
	s := fullState(TargetSidereal)
	s.Base.Telescopes = []string{"lowell.discovery.xyz", "lco.coj.1m0a"}

	p, qerr := BuildGWPayload(s, catalog.New(nil), 15)
	if qerr != nil {
		t.Fatalf("unexpected error: %v", qerr)
	}
	if !reflect.DeepEqual(p["telescopes"], []string{"lowell.discovery.xyz", "lco.coj.1m0a"}) {
		t.Fatalf("expected unfiltered selection, got %v", p["telescopes"])
	}
	if p["time_resolution_minutes"] != 15 {
		t.Fatalf("expected resolution 15, got %v", p["time_resolution_minutes"])
	}

	s.Base.Telescopes = nil
	p, _ = BuildGWPayload(s, catalog.New(nil), 0)
	if _, ok := p["telescopes"]; ok {
		t.Fatal("expected no telescopes key for an empty selection")
	}
}

func TestBuildGWPayloadUsesCatalogClassification(t *testing.T) {
	cat := catalog.New([]models.Telescope{
		{ID: "lco.gw.sim", Name: "simulated detector", Kind: models.KindGWDetector},
	})
	s := fullState(TargetSidereal)
	s.Base.Telescopes = []string{"lco.gw.sim", "lco.coj.1m0a"}

	p, _ := BuildGWPayload(s, cat, 0)
	if !reflect.DeepEqual(p["telescopes"], []string{"lco.gw.sim"}) {
		t.Fatalf("expected catalog-classified detector, got %v", p["telescopes"])
	}
}

func TestBuildGWPayloadReadsSiderealTarget(t *testing.T) {
	s := fullState(TargetNonSidereal)
	p, qerr := BuildGWPayload(s, catalog.New(nil), 0)
	if qerr != nil {
		t.Fatalf("unexpected error: %v", qerr)
	}
	if p["ra"] != 10.0 {
		t.Fatalf("expected sidereal ra regardless of target type, got %v", p["ra"])
	}

	s.Sidereal.Dec = nil
	_, qerr = BuildGWPayload(s, catalog.New(nil), 0)
	if qerr == nil || qerr.Kind != ErrorValidation || !errors.Is(qerr, ErrGWMissingCoordinate) {
		t.Fatalf("expected validation error, got %v", qerr)
	}
}
