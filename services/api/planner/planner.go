// Package planner orchestrates the visibility, airmass and gravitational-wave
// visibility queries behind the observation planner UI.
package planner

import (
	"context"
	"errors"
	"time"

	"github.com/02loveslollipop/heroic-planner/internal/catalog"
	"github.com/02loveslollipop/heroic-planner/internal/logging"
)

// Backend paths, relative to the HEROIC API root.
const (
	PathVisibility   = "visibility/intervals"
	PathAirmass      = "visibility/airmass"
	PathGWVisibility = "gw/visibility"
)

// ErrNoTransport is returned by New when Options.Transport is nil.
var ErrNoTransport = errors.New("planner: transport is required")

// Options configures a Planner. Transport is required.
type Options struct {
	Transport               Transport
	Catalog                 *catalog.Catalog
	Filters                 *FilterStore
	Logger                  logging.Logger
	GWTimeResolutionMinutes int
	Now                     func() time.Time
}

// Planner owns the filter state and the three query coordinators.
type Planner struct {
	ctx    context.Context
	cancel context.CancelFunc

	filters  *FilterStore
	catalog  *catalog.Catalog
	filtered *TelescopeSet

	visibility *Coordinator
	airmass    *Coordinator
	gw         *Coordinator
	chain      *ChainController

	gwResolution int
}

// State is everything the UI renders about queries.
type State struct {
	Visibility         Snapshot `json:"visibility"`
	Airmass            Snapshot `json:"airmass"`
	GWVisibility       Snapshot `json:"gw"`
	FilteredTelescopes []string `json:"filtered_telescopes"`
}

// New wires the coordinators together.
func New(opts Options) (*Planner, error) {
	if opts.Transport == nil {
		return nil, ErrNoTransport
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Filters == nil {
		opts.Filters = NewFilterStore(DefaultFilterState(opts.Now()))
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.New(nil)
	}
	if opts.GWTimeResolutionMinutes <= 0 {
		opts.GWTimeResolutionMinutes = DefaultGWTimeResolutionMinutes
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Planner{
		ctx:          ctx,
		cancel:       cancel,
		filters:      opts.Filters,
		catalog:      opts.Catalog,
		filtered:     &TelescopeSet{},
		gwResolution: opts.GWTimeResolutionMinutes,
	}

	p.visibility = newCoordinator(ctx, KindVisibility, PathVisibility, opts.Transport, p.filters, p.prepareVisibility, opts.Logger, opts.Now)
	p.airmass = newCoordinator(ctx, KindAirmass, PathAirmass, opts.Transport, p.filters, p.prepareAirmass, opts.Logger, opts.Now)
	p.gw = newCoordinator(ctx, KindGWVisibility, PathGWVisibility, opts.Transport, p.filters, p.prepareGW, opts.Logger, opts.Now)
	p.chain = &ChainController{filtered: p.filtered, airmass: p.airmass, logger: opts.Logger}

	p.visibility.onStart = func() {
		p.filtered.Set(p.catalog.IDs())
		p.airmass.Clear()
	}
	p.visibility.onSuccess = p.chain.OnVisibility

	return p, nil
}

func validateTarget(s FilterState) *QueryError {
	if s.TargetType != TargetSidereal {
		return nil
	}
	if !floatField("ra", s.Sidereal.RA).present || !floatField("dec", s.Sidereal.Dec).present {
		return validationError(ErrMissingCoordinates)
	}
	return nil
}

func (p *Planner) prepareVisibility(s FilterState, o Overrides) (Payload, *QueryError) {
	if qerr := validateTarget(s); qerr != nil {
		return nil, qerr
	}
	return BuildPayload(s).apply(o), nil
}

func (p *Planner) prepareAirmass(s FilterState, o Overrides) (Payload, *QueryError) {
	if qerr := validateTarget(s); qerr != nil {
		return nil, qerr
	}
	if p.filtered.Len() == 0 {
		return nil, preconditionError(ErrNoVisibleTelescopes)
	}
	return BuildPayload(s).apply(o), nil
}

func (p *Planner) prepareGW(s FilterState, o Overrides) (Payload, *QueryError) {
	payload, qerr := BuildGWPayload(s, p.catalog, p.gwResolution)
	if qerr != nil {
		return nil, qerr
	}
	return payload.apply(o), nil
}

// Filters returns the store the UI writes to.
func (p *Planner) Filters() *FilterStore {
	return p.filters
}

// Catalog returns the telescope catalog.
func (p *Planner) Catalog() *catalog.Catalog {
	return p.catalog
}

// FilteredTelescopes returns the telescopes that currently have visibility.
func (p *Planner) FilteredTelescopes() []string {
	return p.filtered.IDs()
}

// Coordinator returns the coordinator for kind.
func (p *Planner) Coordinator(kind Kind) (*Coordinator, error) {
	switch kind {
	case KindVisibility:
		return p.visibility, nil
	case KindAirmass:
		return p.airmass, nil
	case KindGWVisibility:
		return p.gw, nil
	default:
		_, err := ParseKind(string(kind))
		return nil, err
	}
}

// QueryVisibilityAndAirmass runs the Visibility query; Airmass follows on success.
// A non-nil result means the attempt failed before reaching the backend.
func (p *Planner) QueryVisibilityAndAirmass() *QueryError {
	return p.visibility.Query(Overrides{})
}

// QueryAirmass re-runs Airmass for the current filtered telescopes.
func (p *Planner) QueryAirmass() *QueryError {
	return p.airmass.Query(Overrides{Telescopes: p.filtered.IDs()})
}

// QueryGWVisibility runs the independent GW visibility query.
func (p *Planner) QueryGWVisibility() *QueryError {
	return p.gw.Query(Overrides{})
}

// Query dispatches to the entry point for kind. Validation and precondition
// failures come back as a *QueryError; backend failures settle later and only
// show up in the coordinator's snapshot.
func (p *Planner) Query(kind Kind) error {
	var qerr *QueryError
	switch kind {
	case KindVisibility:
		qerr = p.QueryVisibilityAndAirmass()
	case KindAirmass:
		qerr = p.QueryAirmass()
	case KindGWVisibility:
		qerr = p.QueryGWVisibility()
	default:
		_, err := ParseKind(string(kind))
		return err
	}
	if qerr != nil {
		return qerr
	}
	return nil
}

// Cancel aborts the in-flight request for kind.
func (p *Planner) Cancel(kind Kind) (bool, error) {
	c, err := p.Coordinator(kind)
	if err != nil {
		return false, err
	}
	return c.Cancel(), nil
}

// State returns snapshots of every coordinator.
func (p *Planner) State() State {
	return State{
		Visibility:         p.visibility.Snapshot(),
		Airmass:            p.airmass.Snapshot(),
		GWVisibility:       p.gw.Snapshot(),
		FilteredTelescopes: p.filtered.IDs(),
	}
}

// Wait blocks until every started request, including chained ones, has settled.
func (p *Planner) Wait() {
	p.visibility.Wait()
	p.airmass.Wait()
	p.gw.Wait()
}

// Close aborts everything in flight and waits for it to settle.
func (p *Planner) Close() {
	p.cancel()
	p.Wait()
}
