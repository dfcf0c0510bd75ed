package models

import "time"

// TelescopeKind classifies a catalog entry by the kind of facility it is.
type TelescopeKind string

const (
	KindTelescope  TelescopeKind = "telescope"
	KindGWDetector TelescopeKind = "gw_detector"
)

// Telescope is one catalog record as served by the HEROIC backend and stored locally.
// Identifiers follow the observatory.site.telescope convention.
type Telescope struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Kind        TelescopeKind  `json:"kind,omitempty"`
	Instruments []Instrument   `json:"instruments"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

// Instrument is mounted on a telescope; its id is the telescope id plus one more segment.
type Instrument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TelescopePage models a paginated catalog response.
type TelescopePage struct {
	Count   int         `json:"count"`
	Next    *string     `json:"next"`
	Results []Telescope `json:"results"`
}
