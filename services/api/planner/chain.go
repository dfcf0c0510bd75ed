package planner

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/02loveslollipop/heroic-planner/internal/logging"
)

// ChainController runs Airmass after every successful Visibility query, restricted
// to the telescopes that came back with at least one interval.
type ChainController struct {
	filtered *TelescopeSet
	airmass  *Coordinator
	logger   logging.Logger
}

// OnVisibility narrows the filtered set to telescopes with visibility and queries
// Airmass for them. An empty set makes Airmass report ErrNoVisibleTelescopes.
func (c *ChainController) OnVisibility(data json.RawMessage) {
	ids, err := TelescopesWithVisibility(data)
	if err != nil {
		c.logger.Printf("chain: %v", err)
	}
	c.filtered.Set(ids)
	c.airmass.Query(Overrides{Telescopes: ids})
}

// TelescopesWithVisibility returns, sorted, the ids whose interval list is non-empty.
func TelescopesWithVisibility(data json.RawMessage) ([]string, error) {
	ids := make([]string, 0)
	if len(data) == 0 {
		return ids, nil
	}

	var intervals map[string][]json.RawMessage
	if err := json.Unmarshal(data, &intervals); err != nil {
		return ids, fmt.Errorf("decode visibility intervals: %w", err)
	}
	for id, list := range intervals {
		if len(list) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
