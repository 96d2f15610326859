package normalize

import (
	"chart-catalog/core/utils"
	"chart-catalog/feature/chart/models"
)

// intlDateFieldFlip is the international relaunch date. Records added
// before it stamp SD charts with date_intl_added and DX charts with
// date_intl_updated; records added after it have the two fields
// swapped in the feed, so the selection flips.
const intlDateFieldFlip = 20191115

// Counter hands out sequential chart ids for one pipeline run. It is
// owned by the run, never shared between runs.
type Counter struct {
	n int
}

// Next returns the next chart id, starting at 1.
func (c *Counter) Next() int {
	c.n++
	return c.n
}

// variantSpec describes the raw-field layout of a tiered chart family.
type variantSpec struct {
	variant  models.Variant
	prefix   string
	noteKeys []string
}

var (
	standardSpec = variantSpec{
		variant:  models.VariantStandard,
		prefix:   "lev",
		noteKeys: []string{"notes_tap", "notes_hold", "notes_slide", "notes_break"},
	}
	deluxeSpec = variantSpec{
		variant:  models.VariantDeluxe,
		prefix:   "dx_lev",
		noteKeys: []string{"notes_tap", "notes_hold", "notes_slide", "notes_touch", "notes_break"},
	}
	// Special-event charts always use the five-count layout.
	utageNoteKeys = []string{"notes_tap", "notes_hold", "notes_slide", "notes_touch", "notes_break"}
)

var baseTiers = []string{"bas", "adv", "exp", "mas"}

// Catalog normalizes a whole feed into chart entries, preserving input
// order. Each song yields one entry per variant present.
func Catalog(songs []models.RawSong, p models.Profile, mapping map[string]string, seq *Counter) []*models.Chart {
	catalog := make([]*models.Chart, 0, len(songs))
	for _, song := range songs {
		catalog = append(catalog, Normalize(song, p, mapping, seq)...)
	}
	return catalog
}

// Normalize expands one raw record into its chart entries. Variant
// dispatch is by key presence: a record carries a standard chart iff
// lev_bas exists, a deluxe chart iff dx_lev_bas exists, and a
// special-event chart iff lev_utage exists.
func Normalize(song models.RawSong, p models.Profile, mapping map[string]string, seq *Counter) []*models.Chart {
	var entries []*models.Chart
	if song.Has("lev_bas") {
		entries = append(entries, normalizeTiered(song, standardSpec, p, mapping, seq))
	}
	if song.Has("dx_lev_bas") {
		entries = append(entries, normalizeTiered(song, deluxeSpec, p, mapping, seq))
	}
	if song.Has("lev_utage") {
		entries = append(entries, normalizeUtage(song, p, mapping, seq))
	}
	return entries
}

// normalizeTiered handles the standard and deluxe families, which
// share the bas/adv/exp/mas(/remas) tier sequence.
func normalizeTiered(song models.RawSong, spec variantSpec, p models.Profile, mapping map[string]string, seq *Counter) *models.Chart {
	tiers := baseTiers
	if song.Get(spec.prefix+"_remas") != "" {
		tiers = append([]string{}, baseTiers...)
		tiers = append(tiers, "remas")
	}

	// Initialized empty so absent tiers serialize as [] rather than null.
	ds := []float64{}
	levels := []string{}
	charts := []models.SubChart{}

	for _, tier := range tiers {
		tierPrefix := spec.prefix + "_" + tier
		levelKey := tierPrefix

		// The internal rating field is preferred; the coarse level
		// label is the fallback source for the numeric value.
		label := song.Get(tierPrefix + "_i")
		if label == "" {
			label = song.Get(levelKey)
		}
		if label != "" {
			if rating, ok := ParseRating(label, p.PlusStep); ok {
				ds = append(ds, rating)
				levels = append(levels, song.Get(levelKey))
			}
		}

		if hasAnyNoteField(song, tierPrefix, spec.noteKeys) {
			charts = append(charts, parseNotes(song, tierPrefix, spec.noteKeys))
		} else if p.PadMissingTiers {
			charts = append(charts, zeroSubChart(len(spec.noteKeys)))
		}
	}

	return &models.Chart{
		ID:        song.ImageID(),
		Title:     song.Title(),
		Variant:   spec.variant,
		Comment:   "",
		DS:        ds,
		Level:     levels,
		CIDs:      assignChartIDs(p, seq, len(ds)),
		Charts:    charts,
		BasicInfo: basicInfo(song, spec.variant, p, mapping),
	}
}

// normalizeUtage handles the special-event family: a single tier,
// optionally split into paired left/right sub-charts that share one
// rating. The dual form is selected by the right-side sentinel field.
func normalizeUtage(song models.RawSong, p models.Profile, mapping map[string]string, seq *Counter) *models.Chart {
	var label string
	for _, key := range p.UtageRatingKeys {
		if v := song.Get(key); v != "" {
			label = v
			break
		}
	}
	rating, hasRating := 0.0, false
	if label != "" {
		rating, hasRating = ParseRating(label, p.PlusStep)
	}

	ds := []float64{}
	var levels []string
	var charts []models.SubChart

	if song.Has("lev_utage_right_notes") {
		levels = []string{song.Get("lev_utage"), song.Get("lev_utage")}
		if hasRating {
			ds = []float64{rating, rating}
		}
		charts = []models.SubChart{
			parseNotes(song, "lev_utage_left", utageNoteKeys),
			parseNotes(song, "lev_utage_right", utageNoteKeys),
		}
	} else {
		levels = []string{song.Get("lev_utage")}
		if hasRating {
			ds = []float64{rating}
		}
		charts = []models.SubChart{parseNotes(song, "lev_utage", utageNoteKeys)}
	}

	return &models.Chart{
		ID:        song.ImageID(),
		Title:     song.Title(),
		Variant:   models.VariantUtage,
		Comment:   song.Comment(),
		DS:        ds,
		Level:     levels,
		CIDs:      assignChartIDs(p, seq, len(ds)),
		Charts:    charts,
		BasicInfo: basicInfo(song, models.VariantUtage, p, mapping),
	}
}

// parseNotes builds one sub-chart from the tier's note-count fields.
// Missing or malformed counts default to zero. The designer field
// defaults to "-" only when absent, not when empty.
func parseNotes(song models.RawSong, tierPrefix string, noteKeys []string) models.SubChart {
	notes := make([]int, 0, len(noteKeys))
	for _, nk := range noteKeys {
		notes = append(notes, utils.ToInt(song.Get(tierPrefix+"_"+nk)))
	}
	charter, ok := song.Lookup(tierPrefix + "_designer")
	if !ok {
		charter = "-"
	}
	return models.SubChart{Notes: notes, Charter: charter}
}

func hasAnyNoteField(song models.RawSong, tierPrefix string, noteKeys []string) bool {
	for _, nk := range noteKeys {
		if song.Has(tierPrefix + "_" + nk) {
			return true
		}
	}
	return false
}

func zeroSubChart(n int) models.SubChart {
	return models.SubChart{Notes: make([]int, n), Charter: "-"}
}

func assignChartIDs(p models.Profile, seq *Counter, count int) []int {
	if !p.AssignChartIDs || seq == nil {
		return []int{}
	}
	cids := make([]int, 0, count)
	for i := 0; i < count; i++ {
		cids = append(cids, seq.Next())
	}
	return cids
}

// basicInfo assembles the song-level metadata block shared by every
// chart of the record.
func basicInfo(song models.RawSong, variant models.Variant, p models.Profile, mapping map[string]string) models.BasicInfo {
	raw := releaseDate(song, variant, p)
	version := MapDateToVersion(raw, mapping)
	return models.BasicInfo{
		Title:       song.Title(),
		Artist:      song.Artist(),
		Genre:       song.Genre(),
		BPM:         song.BPM(),
		ReleaseDate: raw,
		Version:     version,
		IsNew:       version == p.CurrentVersion,
	}
}

// releaseDate picks which raw date field stamps the entry. When a song
// has both a standard and a deluxe chart, one variant carries the
// addition date and the other the update date; which is which depends
// on the locale and, internationally, on the relaunch cutover.
func releaseDate(song models.RawSong, variant models.Variant, p models.Profile) string {
	if p.Locale == models.LocaleInternational {
		return intlReleaseDate(song, variant, p)
	}

	if song.Has("lev_bas") && song.Has("dx_lev_bas") {
		if variant == models.VariantStandard {
			return song.Get("date_added")
		}
		return song.Get("date_updated")
	}
	return song.Get("date_added")
}

func intlReleaseDate(song models.RawSong, variant models.Variant, p models.Profile) string {
	legacy := utils.ToInt(song.Get("date_intl_added")) < intlDateFieldFlip

	var raw string
	switch {
	case variant == models.VariantUtage:
		raw = song.Get("date_intl_updated")
		if raw == "" {
			raw = song.Get("date_intl_added")
		}
	case song.Has("lev_bas") && song.Has("dx_lev_bas"):
		addedVariant := models.VariantStandard
		if !legacy {
			addedVariant = models.VariantDeluxe
		}
		if variant == addedVariant {
			raw = song.Get("date_intl_added")
		} else {
			raw = song.Get("date_intl_updated")
		}
	default:
		raw = song.Get("date_intl_added")
	}

	if forced, ok := p.DateOverrides[song.Title()]; ok {
		raw = forced
	}
	return raw
}
