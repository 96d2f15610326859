package reconcile

import "chart-catalog/feature/chart/models"

// RemoveDelisted drops every entry whose release date is empty, which
// the feed uses to mean "not yet released or withdrawn".
func RemoveDelisted(catalog []*models.Chart) []*models.Chart {
	kept := make([]*models.Chart, 0, len(catalog))
	for _, c := range catalog {
		if c.BasicInfo.ReleaseDate != "" {
			kept = append(kept, c)
		}
	}
	return kept
}

// RestoreVersions rewrites each entry's version label from the cached
// catalog, matched by (title, variant); non-special-event entries also
// take the cached ratings. The cache's labels reflect the master
// catalog's version history, which the filtered feed cannot recompute.
func RestoreVersions(catalog, cache []*models.Chart) {
	index := indexCharts(cache)
	for _, c := range catalog {
		o, ok := index[c.Key()]
		if !ok {
			continue
		}
		c.BasicInfo.Version = o.BasicInfo.Version
		if c.Variant != models.VariantUtage {
			c.DS = append([]float64(nil), o.DS...)
		}
	}
}

// FoldIntoCache folds the reconciled international catalog back onto
// the cached master catalog and returns the updated master. The feed
// is authoritative for special-event content: a special-event entry
// overwrites level, ratings, sub-charts and comment on every cached
// entry sharing its title. Any (title, variant) match overwrites the
// cached id, chart ids and release date. Afterwards is_new is
// recomputed from the version label alone and entries without a
// release date are dropped as withdrawn from the service.
func FoldIntoCache(catalog, cache []*models.Chart, currentVersion string) []*models.Chart {
	byTitle := make(map[string][]*models.Chart, len(cache))
	for _, o := range cache {
		byTitle[o.Title] = append(byTitle[o.Title], o)
	}

	for _, c := range catalog {
		for _, o := range byTitle[c.Title] {
			if c.Variant == models.VariantUtage {
				o.Level = append([]string(nil), c.Level...)
				o.DS = append([]float64(nil), c.DS...)
				o.Charts = copySubCharts(c.Charts)
				o.Comment = c.Comment
			}
			if o.Variant == c.Variant {
				o.ID = c.ID
				o.CIDs = append([]int(nil), c.CIDs...)
				o.BasicInfo.ReleaseDate = c.BasicInfo.ReleaseDate
			}
		}
	}

	for _, o := range cache {
		o.BasicInfo.IsNew = o.BasicInfo.Version == currentVersion
	}

	return RemoveDelisted(cache)
}
