// Package reconcile applies the ordered override passes that turn a
// freshly normalized catalog into the published one. The pass order is
// load-bearing: pinned identities first, then cached-catalog adoption,
// then community ratings, then paired-chart id derivation. Later
// passes may overwrite what earlier ones set.
package reconcile

import (
	"strconv"

	"chart-catalog/feature/chart/models"
)

// deluxeIDOffset links a deluxe chart to its standard sibling: the
// deluxe id is the standard id plus this offset.
const deluxeIDOffset = 10000

// ApplySpecialCases overwrites the id (and, when pinned, the title) of
// entries whose image-derived id appears in the profile's special-case
// table. This disambiguates songs whose source titles collide.
func ApplySpecialCases(catalog []*models.Chart, p models.Profile) {
	for _, c := range catalog {
		sc, ok := p.SpecialCases[c.ID]
		if !ok {
			continue
		}
		c.ID = sc.ID
		if sc.Title != "" {
			c.Title = sc.Title
			c.BasicInfo.Title = sc.Title
		}
	}
}

// AdoptFromCache merges fields from a previously published catalog,
// matched by (title, variant). The cache may hold manual corrections,
// so it wins over freshly parsed data — except for entries from the
// most recent releases, where the international pipeline prefers the
// fresh feed for ids but trusts the cache for bpm, ratings and note
// data. Entries whose id was pinned by ApplySpecialCases are skipped.
func AdoptFromCache(catalog, cache []*models.Chart, p models.Profile) {
	index := indexCharts(cache)
	pinned := pinnedIDs(p)

	for _, c := range catalog {
		if pinned[c.ID] {
			continue
		}
		o, ok := index[c.Key()]
		if !ok {
			continue
		}

		if p.Locale != models.LocaleInternational {
			if o.ID != "" {
				c.ID = o.ID
			}
			continue
		}

		switch {
		case !containsVersion(p.RecentVersions, o.BasicInfo.Version):
			c.ID = o.ID
		case c.Variant != models.VariantUtage:
			c.BasicInfo.BPM = o.BasicInfo.BPM
			c.DS = append([]float64(nil), o.DS...)
			c.Charts = copySubCharts(o.Charts)
		default:
			c.ID = o.ID
		}
	}
}

// OverrideRatings overwrites difficulty ratings from the community
// dataset, matched by (title, variant). The community source is
// authoritative for ratings only; ids and note counts are never
// touched. Domestically only the first two tiers are replaced; the
// international pipeline takes the whole sequence.
func OverrideRatings(catalog []*models.Chart, entries []models.CommunityEntry, p models.Profile) {
	index := make(map[models.Key]models.CommunityEntry, len(entries))
	for _, e := range entries {
		index[e.Key()] = e
	}

	for _, c := range catalog {
		e, ok := index[c.Key()]
		if !ok {
			continue
		}
		if p.Locale == models.LocaleInternational {
			c.DS = append([]float64(nil), e.DS...)
			continue
		}
		if len(e.DS) >= 2 && len(c.DS) >= 2 {
			c.DS[0] = e.DS[0]
			c.DS[1] = e.DS[1]
		}
	}
}

// DeriveDeluxeIDs sets each deluxe chart's id to its standard
// sibling's id plus deluxeIDOffset, for titles that carry both
// variants. A standard id that is still non-numeric leaves the deluxe
// id untouched.
func DeriveDeluxeIDs(catalog []*models.Chart) {
	groups := make(map[string]map[models.Variant]*models.Chart)
	for _, c := range catalog {
		if c.Variant != models.VariantStandard && c.Variant != models.VariantDeluxe {
			continue
		}
		g, ok := groups[c.Title]
		if !ok {
			g = make(map[models.Variant]*models.Chart)
			groups[c.Title] = g
		}
		g[c.Variant] = c
	}

	for _, g := range groups {
		sd, hasSD := g[models.VariantStandard]
		dx, hasDX := g[models.VariantDeluxe]
		if !hasSD || !hasDX {
			continue
		}
		if n, ok := sd.NumericID(); ok {
			dx.ID = strconv.Itoa(n + deluxeIDOffset)
		}
	}
}

// indexCharts builds a (title, variant) lookup. Later entries win,
// matching the source catalogs where duplicates are rare but possible.
func indexCharts(charts []*models.Chart) map[models.Key]*models.Chart {
	index := make(map[models.Key]*models.Chart, len(charts))
	for _, c := range charts {
		index[c.Key()] = c
	}
	return index
}

// pinnedIDs collects the target ids of the special-case table, so the
// cache-adoption pass can leave pinned entries alone.
func pinnedIDs(p models.Profile) map[string]bool {
	ids := make(map[string]bool, len(p.SpecialCases))
	for _, sc := range p.SpecialCases {
		ids[sc.ID] = true
	}
	return ids
}

func containsVersion(versions []string, v string) bool {
	for _, candidate := range versions {
		if candidate == v {
			return true
		}
	}
	return false
}

func copySubCharts(src []models.SubChart) []models.SubChart {
	out := make([]models.SubChart, len(src))
	for i, sc := range src {
		out[i] = models.SubChart{
			Notes:   append([]int(nil), sc.Notes...),
			Charter: sc.Charter,
		}
	}
	return out
}
