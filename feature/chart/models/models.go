package models

import "strconv"

// Variant identifies the chart family a song entry belongs to.
// A single raw song can yield up to one entry per variant.
type Variant string

const (
	// VariantStandard is the classic 4-button-lane chart family ("SD").
	VariantStandard Variant = "SD"
	// VariantDeluxe is the touch-enabled chart family ("DX").
	VariantDeluxe Variant = "DX"
	// VariantUtage is the special-event chart family ("UTAGE").
	VariantUtage Variant = "UTAGE"
)

// SubChart holds the per-tier note counts and the chart designer.
// Notes has 4 entries for SD (tap/hold/slide/break) and 5 for DX and
// UTAGE (tap/hold/slide/touch/break).
type SubChart struct {
	Notes   []int  `json:"notes"`
	Charter string `json:"charter"`
}

// BasicInfo carries the song-level metadata shared by every chart of a
// song. Version is the mapped version label ("from" on the wire) and
// IsNew is true iff Version equals the current version constant.
type BasicInfo struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Genre       string `json:"genre"`
	BPM         int    `json:"bpm"`
	ReleaseDate string `json:"release_date"`
	Version     string `json:"from"`
	IsNew       bool   `json:"is_new"`
}

// Chart is the central catalog unit: one entry per (song, variant).
// DS, Level and Charts are index-aligned per difficulty tier. CIDs is
// only populated by the international pipeline. ID starts as the
// image-derived token and is rewritten during reconciliation.
type Chart struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Variant   Variant    `json:"type"`
	Comment   string     `json:"comment"`
	DS        []float64  `json:"ds"`
	Level     []string   `json:"level"`
	CIDs      []int      `json:"cids"`
	Charts    []SubChart `json:"charts"`
	BasicInfo BasicInfo  `json:"basic_info"`
}

// Key is the (title, variant) identity used to join charts across the
// cached catalog and the community dataset.
type Key struct {
	Title   string
	Variant Variant
}

// Key returns the join key for this chart.
func (c *Chart) Key() Key {
	return Key{Title: c.Title, Variant: c.Variant}
}

// NumericID returns the chart id as an integer. The second return is
// false while the id is still an image-derived token.
func (c *Chart) NumericID() (int, bool) {
	n, err := strconv.Atoi(c.ID)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CommunityEntry is one record of the community difficulty dataset.
// It is authoritative for ratings only.
type CommunityEntry struct {
	Title   string    `json:"title"`
	Variant Variant   `json:"type"`
	DS      []float64 `json:"ds"`
}

// Key returns the join key for this community entry.
func (e CommunityEntry) Key() Key {
	return Key{Title: e.Title, Variant: e.Variant}
}
