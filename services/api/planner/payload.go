package planner

import (
	"math"
	"time"
)

// Payload is the flattened request body sent to the backend. It is built fresh for
// every attempt and never modified after it is handed to the transport.
type Payload map[string]any

// field is one optional value together with its presence.
type field struct {
	key     string
	value   any
	present bool
}

// floatField treats nil and NaN as absent; zero is present.
func floatField(key string, v *float64) field {
	if v == nil || math.IsNaN(*v) {
		return field{key: key}
	}
	return field{key: key, value: *v, present: true}
}

func timeField(key string, v *time.Time) field {
	if v == nil || v.IsZero() {
		return field{key: key}
	}
	return field{key: key, value: v.UTC().Format(time.RFC3339), present: true}
}

func listField(key string, v []string) field {
	if len(v) == 0 {
		return field{key: key}
	}
	return field{key: key, value: append([]string(nil), v...), present: true}
}

func (p Payload) merge(fields []field) {
	for _, f := range fields {
		if f.present {
			p[f.key] = f.value
		}
	}
}

func (b BaseParams) fields() []field {
	return []field{
		timeField("start", b.Start),
		timeField("end", b.End),
		listField("telescopes", b.Telescopes),
		floatField("max_airmass", b.MaxAirmass),
		floatField("min_lunar_distance", b.MinLunarDistance),
		floatField("max_lunar_phase", b.MaxLunarPhase),
	}
}

func (t SiderealTarget) fields() []field {
	return []field{
		floatField("ra", t.RA),
		floatField("dec", t.Dec),
		floatField("proper_motion_ra", t.ProperMotionRA),
		floatField("proper_motion_dec", t.ProperMotionDec),
		floatField("epoch", t.Epoch),
		floatField("parallax", t.Parallax),
	}
}

func (t NonSiderealTarget) fields() []field {
	return []field{
		floatField("epoch_of_elements", t.EpochOfElements),
		floatField("epoch_of_perihelion", t.EpochOfPerihelion),
		floatField("orbital_inclination", t.OrbitalInclination),
		floatField("longitude_of_ascending_node", t.LongitudeOfAscendingNode),
		floatField("longitude_of_perihelion", t.LongitudeOfPerihelion),
		floatField("argument_of_perihelion", t.ArgumentOfPerihelion),
		floatField("mean_distance", t.MeanDistance),
		floatField("perihelion_distance", t.PerihelionDistance),
		floatField("eccentricity", t.Eccentricity),
		floatField("mean_anomaly", t.MeanAnomaly),
		floatField("daily_motion", t.DailyMotion),
	}
}

// activeTargetFields returns the fields of whichever target TargetType selects.
func (s FilterState) activeTargetFields() []field {
	if s.TargetType == TargetSidereal {
		return s.Sidereal.fields()
	}
	return s.NonSidereal.fields()
}

// BuildPayload flattens s into a request body: present base fields, then present
// fields of the active target. Required fields are not checked here.
func BuildPayload(s FilterState) Payload {
	p := Payload{}
	p.merge(s.Base.fields())
	p.merge(s.activeTargetFields())
	return p
}

// Overrides replace payload fields for a single query.
type Overrides struct {
	Telescopes []string
}

func (p Payload) apply(o Overrides) Payload {
	if o.Telescopes != nil {
		p["telescopes"] = append([]string{}, o.Telescopes...)
	}
	return p
}
