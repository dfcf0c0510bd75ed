// Package catalog holds the read-only telescope catalog the planner works against.
package catalog

import (
	"sort"
	"strings"

	"github.com/02loveslollipop/heroic-planner/internal/models"
)

// gwObservatories lists the observatory segments that operate gravitational-wave detectors.
var gwObservatories = map[string]struct{}{
	"ligo":  {},
	"virgo": {},
	"kagra": {},
}

// Classify derives the kind of a facility from its identifier.
func Classify(id string) models.TelescopeKind {
	observatory, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(id)), ".")
	if _, ok := gwObservatories[observatory]; ok {
		return models.KindGWDetector
	}
	return models.KindTelescope
}

// Normalize trims identifiers, drops records without one, fills in missing kinds and
// returns the records sorted by id. Later duplicates replace earlier ones.
func Normalize(records []models.Telescope) []models.Telescope {
	byID := make(map[string]models.Telescope, len(records))
	for _, rec := range records {
		rec.ID = strings.TrimSpace(rec.ID)
		if rec.ID == "" {
			continue
		}
		if rec.Kind == "" {
			rec.Kind = Classify(rec.ID)
		}
		instruments := make([]models.Instrument, 0, len(rec.Instruments))
		for _, inst := range rec.Instruments {
			inst.ID = strings.TrimSpace(inst.ID)
			if inst.ID == "" {
				continue
			}
			instruments = append(instruments, inst)
		}
		rec.Instruments = instruments
		byID[rec.ID] = rec
	}

	out := make([]models.Telescope, 0, len(byID))
	for _, rec := range byID {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Catalog maps telescope identifiers to their records. It is never mutated after New.
type Catalog struct {
	ids        []string
	telescopes map[string]models.Telescope
}

// New builds a catalog from raw records.
func New(records []models.Telescope) *Catalog {
	normalized := Normalize(records)
	c := &Catalog{
		ids:        make([]string, 0, len(normalized)),
		telescopes: make(map[string]models.Telescope, len(normalized)),
	}
	for _, rec := range normalized {
		c.ids = append(c.ids, rec.ID)
		c.telescopes[rec.ID] = rec
	}
	return c
}

// Len returns the number of telescopes.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}

// IDs returns every telescope identifier in sorted order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.ids...)
}

// Telescopes returns every record in id order.
func (c *Catalog) Telescopes() []models.Telescope {
	if c == nil {
		return []models.Telescope{}
	}
	out := make([]models.Telescope, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.telescopes[id])
	}
	return out
}

// Telescope looks a record up by id.
func (c *Catalog) Telescope(id string) (models.Telescope, bool) {
	if c == nil {
		return models.Telescope{}, false
	}
	rec, ok := c.telescopes[id]
	return rec, ok
}

// TelescopeForInstrument resolves the telescope an instrument id belongs to.
func (c *Catalog) TelescopeForInstrument(instrumentID string) (models.Telescope, bool) {
	parts := strings.Split(instrumentID, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return c.Telescope(strings.Join(parts, "."))
}

// Instrument looks an instrument up by id, returning the owning telescope as well.
func (c *Catalog) Instrument(instrumentID string) (models.Instrument, models.Telescope, bool) {
	tel, ok := c.TelescopeForInstrument(instrumentID)
	if !ok {
		return models.Instrument{}, models.Telescope{}, false
	}
	for _, inst := range tel.Instruments {
		if inst.ID == instrumentID {
			return inst, tel, true
		}
	}
	return models.Instrument{}, tel, false
}

// IsGWDetector reports whether id names a gravitational-wave detector. Ids missing
// from the catalog are classified from the identifier alone.
func (c *Catalog) IsGWDetector(id string) bool {
	if rec, ok := c.Telescope(id); ok {
		return rec.Kind == models.KindGWDetector
	}
	return Classify(id) == models.KindGWDetector
}
