package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart-catalog/feature/chart/models"
)

func chartEntry(id, title string, variant models.Variant) *models.Chart {
	return &models.Chart{
		ID:      id,
		Title:   title,
		Variant: variant,
		DS:      []float64{},
		Level:   []string{},
		CIDs:    []int{},
		Charts:  []models.SubChart{},
		BasicInfo: models.BasicInfo{
			Title:       title,
			ReleaseDate: "20200101",
			Version:     "maimai でらっくす",
		},
	}
}

func TestApplySpecialCases(t *testing.T) {
	t.Run("Domestic", func(t *testing.T) {
		c := chartEntry("1e44516a8a3b5a51", "Link", models.VariantStandard)
		other := chartEntry("deadbeef", "Other", models.VariantStandard)

		ApplySpecialCases([]*models.Chart{c, other}, models.JapanProfile())

		assert.Equal(t, "131", c.ID)
		assert.Equal(t, "Link", c.Title)
		assert.Equal(t, "deadbeef", other.ID)
	})

	t.Run("InternationalPinsTitle", func(t *testing.T) {
		c := chartEntry("e90f79d9dcff84df", "Link", models.VariantStandard)

		ApplySpecialCases([]*models.Chart{c}, models.InternationalProfile())

		assert.Equal(t, "383", c.ID)
		assert.Equal(t, "Link(COF)", c.Title)
		assert.Equal(t, "Link(COF)", c.BasicInfo.Title)
	})
}

func TestAdoptFromCache_Domestic(t *testing.T) {
	p := models.JapanProfile()

	c := chartEntry("abc123", "Song A", models.VariantStandard)
	noID := chartEntry("def456", "Song B", models.VariantStandard)
	unmatched := chartEntry("fed789", "Song C", models.VariantStandard)
	catalog := []*models.Chart{c, noID, unmatched}

	cached := chartEntry("42", "Song A", models.VariantStandard)
	cachedEmpty := chartEntry("", "Song B", models.VariantStandard)
	cache := []*models.Chart{cached, cachedEmpty}

	AdoptFromCache(catalog, cache, p)

	assert.Equal(t, "42", c.ID)
	// An empty cached id never replaces the image-derived token.
	assert.Equal(t, "def456", noID.ID)
	assert.Equal(t, "fed789", unmatched.ID)
}

func TestAdoptFromCache_SkipsPinned(t *testing.T) {
	p := models.JapanProfile()

	c := chartEntry("131", "Link", models.VariantStandard)
	cache := []*models.Chart{chartEntry("999", "Link", models.VariantStandard)}

	AdoptFromCache([]*models.Chart{c}, cache, p)

	assert.Equal(t, "131", c.ID)
}

func TestAdoptFromCache_International(t *testing.T) {
	p := models.InternationalProfile()

	t.Run("OldEntryAdoptsID", func(t *testing.T) {
		c := chartEntry("abc123", "Song A", models.VariantDeluxe)
		o := chartEntry("7", "Song A", models.VariantDeluxe)
		o.BasicInfo.Version = "maimai でらっくす"

		AdoptFromCache([]*models.Chart{c}, []*models.Chart{o}, p)

		assert.Equal(t, "7", c.ID)
	})

	t.Run("RecentEntryTrustsFeedID", func(t *testing.T) {
		c := chartEntry("abc123", "Song A", models.VariantDeluxe)
		c.BasicInfo.BPM = 150
		c.DS = []float64{3, 5}

		o := chartEntry("7", "Song A", models.VariantDeluxe)
		o.BasicInfo.Version = "maimai でらっくす PRiSM"
		o.BasicInfo.BPM = 151
		o.DS = []float64{3, 5.2}
		o.Charts = []models.SubChart{{Notes: []int{10, 0, 0, 0, 0}, Charter: "x"}}

		AdoptFromCache([]*models.Chart{c}, []*models.Chart{o}, p)

		// The feed keeps the id; bpm, ratings and note data come from
		// the cache.
		assert.Equal(t, "abc123", c.ID)
		assert.Equal(t, 151, c.BasicInfo.BPM)
		assert.Equal(t, []float64{3, 5.2}, c.DS)
		require.Len(t, c.Charts, 1)
		assert.Equal(t, "x", c.Charts[0].Charter)

		// The adopted slices are copies, not aliases.
		c.DS[0] = 99
		c.Charts[0].Notes[0] = 99
		assert.Equal(t, 3.0, o.DS[0])
		assert.Equal(t, 10, o.Charts[0].Notes[0])
	})

	t.Run("RecentUtageAdoptsID", func(t *testing.T) {
		c := chartEntry("abc123", "Song A", models.VariantUtage)
		o := chartEntry("8", "Song A", models.VariantUtage)
		o.BasicInfo.Version = "maimai でらっくす PRiSM"
		o.DS = []float64{14}

		AdoptFromCache([]*models.Chart{c}, []*models.Chart{o}, p)

		assert.Equal(t, "8", c.ID)
		assert.Equal(t, []float64{}, c.DS)
	})
}

func TestOverrideRatings_Domestic(t *testing.T) {
	p := models.JapanProfile()

	c := chartEntry("1", "Song A", models.VariantStandard)
	c.DS = []float64{3, 5, 7, 9}
	short := chartEntry("2", "Song B", models.VariantStandard)
	short.DS = []float64{3}

	entries := []models.CommunityEntry{
		{Title: "Song A", Variant: models.VariantStandard, DS: []float64{3.1, 5.2, 7.3, 9.4}},
		{Title: "Song B", Variant: models.VariantStandard, DS: []float64{3.1, 5.2}},
	}

	OverrideRatings([]*models.Chart{c, short}, entries, p)

	// Only the first two tiers are replaced and the id is untouched.
	assert.Equal(t, []float64{3.1, 5.2, 7, 9}, c.DS)
	assert.Equal(t, "1", c.ID)
	// Both sides need at least two tiers.
	assert.Equal(t, []float64{3}, short.DS)
}

func TestOverrideRatings_International(t *testing.T) {
	p := models.InternationalProfile()

	c := chartEntry("1", "Song A", models.VariantStandard)
	c.DS = []float64{3, 5, 7, 9}

	entries := []models.CommunityEntry{
		{Title: "Song A", Variant: models.VariantStandard, DS: []float64{3.1, 5.2}},
	}

	OverrideRatings([]*models.Chart{c}, entries, p)

	assert.Equal(t, []float64{3.1, 5.2}, c.DS)
}

func TestDeriveDeluxeIDs(t *testing.T) {
	sd := chartEntry("42", "Song A", models.VariantStandard)
	dx := chartEntry("abc123", "Song A", models.VariantDeluxe)

	tokenSD := chartEntry("notanumber", "Song B", models.VariantStandard)
	tokenDX := chartEntry("def456", "Song B", models.VariantDeluxe)

	loneDX := chartEntry("fed789", "Song C", models.VariantDeluxe)

	DeriveDeluxeIDs([]*models.Chart{sd, dx, tokenSD, tokenDX, loneDX})

	assert.Equal(t, "10042", dx.ID)
	// A standard id that never resolved to a number leaves the deluxe
	// sibling alone.
	assert.Equal(t, "def456", tokenDX.ID)
	assert.Equal(t, "fed789", loneDX.ID)
}
