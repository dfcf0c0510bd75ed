package planner

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// TargetType selects which target record is active.
type TargetType string

const (
	TargetSidereal    TargetType = "SIDEREAL"
	TargetNonSidereal TargetType = "NON_SIDEREAL"
)

// BaseParams are the parameters shared by every target type.
type BaseParams struct {
	Start            *time.Time `json:"start"`
	End              *time.Time `json:"end"`
	Telescopes       []string   `json:"telescopes"`
	MaxAirmass       *float64   `json:"max_airmass"`
	MinLunarDistance *float64   `json:"min_lunar_distance"`
	MaxLunarPhase    *float64   `json:"max_lunar_phase"`
}

// SiderealTarget is a fixed position on the sky.
type SiderealTarget struct {
	RA              *float64 `json:"ra"`
	Dec             *float64 `json:"dec"`
	ProperMotionRA  *float64 `json:"proper_motion_ra"`
	ProperMotionDec *float64 `json:"proper_motion_dec"`
	Epoch           *float64 `json:"epoch"`
	Parallax        *float64 `json:"parallax"`
}

// NonSiderealTarget is a solar-system body given by its orbital elements.
type NonSiderealTarget struct {
	EpochOfElements          *float64 `json:"epoch_of_elements"`
	EpochOfPerihelion        *float64 `json:"epoch_of_perihelion"`
	OrbitalInclination       *float64 `json:"orbital_inclination"`
	LongitudeOfAscendingNode *float64 `json:"longitude_of_ascending_node"`
	LongitudeOfPerihelion    *float64 `json:"longitude_of_perihelion"`
	ArgumentOfPerihelion     *float64 `json:"argument_of_perihelion"`
	MeanDistance             *float64 `json:"mean_distance"`
	PerihelionDistance       *float64 `json:"perihelion_distance"`
	Eccentricity             *float64 `json:"eccentricity"`
	MeanAnomaly              *float64 `json:"mean_anomaly"`
	DailyMotion              *float64 `json:"daily_motion"`
}

// FilterState is everything the user has selected. Only the target matching
// TargetType takes part in queries.
type FilterState struct {
	Base            BaseParams        `json:"base"`
	TargetName      string            `json:"target_name"`
	TargetType      TargetType        `json:"target_type"`
	NonSiderealType string            `json:"non_sidereal_type,omitempty"`
	Sidereal        SiderealTarget    `json:"sidereal_target"`
	NonSidereal     NonSiderealTarget `json:"non_sidereal_target"`
}

// DefaultGWDetectors is the initial telescope selection.
var DefaultGWDetectors = []string{"ligo.hanford.h1", "ligo.livingston.l1", "virgo.cascina.v1", "kagra.kamioka.k1"}

// DefaultFilterState points at NGC 4993, the host of GW170817, over the week before now.
func DefaultFilterState(now time.Time) FilterState {
	now = now.UTC()
	start := now.Add(-7 * 24 * time.Hour)
	return FilterState{
		Base: BaseParams{
			Start:            &start,
			End:              &now,
			Telescopes:       append([]string(nil), DefaultGWDetectors...),
			MaxAirmass:       Float(2.0),
			MinLunarDistance: Float(0),
			MaxLunarPhase:    Float(1.0),
		},
		TargetName: "NGC 4993",
		TargetType: TargetSidereal,
		Sidereal: SiderealTarget{
			RA:    Float(197.450375),
			Dec:   Float(-23.38148),
			Epoch: Float(2000.0),
		},
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

var ErrInvalidFilters = errors.New("invalid filters")

// Validate checks the state is coherent enough to store. Missing target fields are
// allowed here; they are reported when a query is attempted.
func (s FilterState) Validate() error {
	switch s.TargetType {
	case TargetSidereal, TargetNonSidereal:
	default:
		return fmt.Errorf("%w: unknown target_type %q", ErrInvalidFilters, s.TargetType)
	}
	if s.Base.Start != nil && s.Base.End != nil && s.Base.End.Before(*s.Base.Start) {
		return fmt.Errorf("%w: end is before start", ErrInvalidFilters)
	}
	return nil
}

// Clone returns a deep copy.
func (s FilterState) Clone() FilterState {
	out := s
	out.Base.Start = cloneTime(s.Base.Start)
	out.Base.End = cloneTime(s.Base.End)
	if s.Base.Telescopes != nil {
		out.Base.Telescopes = append([]string(nil), s.Base.Telescopes...)
	}
	out.Base.MaxAirmass = cloneFloat(s.Base.MaxAirmass)
	out.Base.MinLunarDistance = cloneFloat(s.Base.MinLunarDistance)
	out.Base.MaxLunarPhase = cloneFloat(s.Base.MaxLunarPhase)

	out.Sidereal = SiderealTarget{
		RA:              cloneFloat(s.Sidereal.RA),
		Dec:             cloneFloat(s.Sidereal.Dec),
		ProperMotionRA:  cloneFloat(s.Sidereal.ProperMotionRA),
		ProperMotionDec: cloneFloat(s.Sidereal.ProperMotionDec),
		Epoch:           cloneFloat(s.Sidereal.Epoch),
		Parallax:        cloneFloat(s.Sidereal.Parallax),
	}
	out.NonSidereal = NonSiderealTarget{
		EpochOfElements:          cloneFloat(s.NonSidereal.EpochOfElements),
		EpochOfPerihelion:        cloneFloat(s.NonSidereal.EpochOfPerihelion),
		OrbitalInclination:       cloneFloat(s.NonSidereal.OrbitalInclination),
		LongitudeOfAscendingNode: cloneFloat(s.NonSidereal.LongitudeOfAscendingNode),
		LongitudeOfPerihelion:    cloneFloat(s.NonSidereal.LongitudeOfPerihelion),
		ArgumentOfPerihelion:     cloneFloat(s.NonSidereal.ArgumentOfPerihelion),
		MeanDistance:             cloneFloat(s.NonSidereal.MeanDistance),
		PerihelionDistance:       cloneFloat(s.NonSidereal.PerihelionDistance),
		Eccentricity:             cloneFloat(s.NonSidereal.Eccentricity),
		MeanAnomaly:              cloneFloat(s.NonSidereal.MeanAnomaly),
		DailyMotion:              cloneFloat(s.NonSidereal.DailyMotion),
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// FilterStore holds the current FilterState. The UI layer writes it; coordinators
// only ever read snapshots.
type FilterStore struct {
	mu    sync.RWMutex
	state FilterState
}

// NewFilterStore returns a store seeded with initial.
func NewFilterStore(initial FilterState) *FilterStore {
	return &FilterStore{state: initial.Clone()}
}

// Snapshot returns a copy of the current state.
func (s *FilterStore) Snapshot() FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Replace validates and stores next.
func (s *FilterStore) Replace(next FilterState) error {
	if err := next.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = next.Clone()
	s.mu.Unlock()
	return nil
}

// Update applies fn to a copy of the state and stores the result if it validates.
func (s *FilterStore) Update(fn func(*FilterState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	s.state = next
	return nil
}

// TelescopeSet is the shared set of telescopes that currently have visibility.
// Visibility and the chain write it; Airmass and the UI read it.
type TelescopeSet struct {
	mu  sync.RWMutex
	ids []string
}

// Set replaces the contents of the set.
func (t *TelescopeSet) Set(ids []string) {
	t.mu.Lock()
	t.ids = append([]string(nil), ids...)
	t.mu.Unlock()
}

// IDs returns a copy of the contents.
func (t *TelescopeSet) IDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string{}, t.ids...)
}

// Len returns the number of telescopes in the set.
func (t *TelescopeSet) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ids)
}
