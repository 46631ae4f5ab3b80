// Package preset provides the transcoding preset catalog.
// Presets are configured resolution/bitrate profiles; for costing only
// the resulting pricing tier of each preset matters.
package preset

import (
	"context"

	"smartmedia-cost/core/types"
)

// Descriptor describes one configured transcoding preset
type Descriptor struct {
	// ID is the preset identifier
	ID string `json:"id"`

	// Name is the human-readable preset name
	Name string `json:"name"`

	// Height is the output video height in pixels, 0 for audio presets
	Height int `json:"height"`

	// Container is the output container format
	Container string `json:"container,omitempty"`
}

// Tier returns the pricing tier this preset bills at
func (d Descriptor) Tier(hdMinHeight int) types.Tier {
	return types.TierForHeight(d.Height, hdMinHeight)
}

// Catalog is a set of preset descriptors
type Catalog []Descriptor

// Empty reports whether no usable presets are configured
func (c Catalog) Empty() bool {
	return len(c) == 0
}

// Filter returns the presets whose IDs appear in ids, preserving
// catalog order. Unknown IDs are ignored.
func (c Catalog) Filter(ids []string) Catalog {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out Catalog
	for _, d := range c {
		if _, ok := want[d.ID]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Tiers returns the distinct pricing tiers of the catalog's presets, in
// audio/sd/hd order. Two presets landing in the same tier count once:
// duplicate presets must never double-count transcode cost.
func (c Catalog) Tiers(hdMinHeight int) []types.Tier {
	seen := make(map[types.Tier]bool, 3)
	for _, d := range c {
		seen[d.Tier(hdMinHeight)] = true
	}
	var tiers []types.Tier
	for _, t := range []types.Tier{types.TierAudio, types.TierSD, types.TierHD} {
		if seen[t] {
			tiers = append(tiers, t)
		}
	}
	return tiers
}

// Source lists the configured transcoding presets. A nil or empty id
// filter returns the full catalog.
type Source interface {
	// ListPresets retrieves preset descriptors, optionally filtered by ID
	ListPresets(ctx context.Context, ids []string) (Catalog, error)
}
