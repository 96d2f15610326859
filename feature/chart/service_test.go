package chart

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chart-catalog/feature/chart/models"
	"chart-catalog/feature/chart/source"
)

// stubFeeds serves fixture datasets in place of the upstream feeds.
type stubFeeds struct {
	songs     []models.RawSong
	intlSongs []models.RawSong
	community []models.CommunityEntry
	err       error
}

func (f *stubFeeds) FetchSongs(context.Context) ([]models.RawSong, error) {
	return f.songs, f.err
}

func (f *stubFeeds) FetchIntlSongs(context.Context) ([]models.RawSong, error) {
	return f.intlSongs, f.err
}

func (f *stubFeeds) FetchCommunity(context.Context) ([]models.CommunityEntry, error) {
	return f.community, f.err
}

func setupService(t *testing.T, feeds FeedSource) (*Service, Config) {
	cfg := Config{DataDir: t.TempDir(), OutputDir: t.TempDir()}
	return NewService(feeds, zap.NewNop(), cfg), cfg
}

func writeMapping(t *testing.T, cfg Config, name string) {
	data := []byte(`{"20120711": "maimai", "20240912": "maimai でらっくす PRiSM"}`)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, name), data, 0o644))
}

func writeCache(t *testing.T, cfg Config, cache []*models.Chart) {
	require.NoError(t, source.SaveCatalog(filepath.Join(cfg.DataDir, CacheFile), cache))
}

func TestService_RunDomestic(t *testing.T) {
	feeds := &stubFeeds{
		songs: []models.RawSong{
			models.NewRawSong(map[string]string{
				"title": "Song A", "artist": "Artist A", "catcode": "POPS＆アニメ",
				"bpm": "150", "image_url": "abc123.png",
				"date_added": "20120711", "date_updated": "20241001",
				"lev_bas": "3", "lev_adv": "5", "lev_exp": "7", "lev_mas": "9",
				"dx_lev_bas": "4", "dx_lev_adv": "6", "dx_lev_exp": "8", "dx_lev_mas": "10",
			}),
		},
		community: []models.CommunityEntry{
			{Title: "Song A", Variant: models.VariantStandard, DS: []float64{3.1, 5.1, 7.3, 9.4}},
		},
	}

	svc, cfg := setupService(t, feeds)
	writeMapping(t, cfg, MappingFile)
	writeCache(t, cfg, []*models.Chart{
		{
			ID: "42", Title: "Song A", Variant: models.VariantStandard,
			BasicInfo: models.BasicInfo{Title: "Song A", ReleaseDate: "20120711", Version: "maimai"},
		},
	})

	result, err := svc.RunDomestic(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Catalog, 2)

	sd, dx := result.Catalog[0], result.Catalog[1]

	// The cache supplies the standard id and the deluxe id follows it.
	assert.Equal(t, "42", sd.ID)
	assert.Equal(t, "10042", dx.ID)

	// The community dataset replaces the first two tiers.
	assert.Equal(t, []float64{3.1, 5.1, 7, 9}, sd.DS)
	assert.Equal(t, []float64{4, 6, 8, 10}, dx.DS)

	assert.Equal(t, "maimai", sd.BasicInfo.Version)
	assert.Equal(t, "maimai でらっくす PRiSM", dx.BasicInfo.Version)
	assert.True(t, dx.BasicInfo.IsNew)

	require.Len(t, result.OutputPaths, 1)
	written, err := source.LoadCatalog(result.OutputPaths[0])
	require.NoError(t, err)
	assert.Len(t, written, 2)
}

func TestService_RunDomestic_FeedError(t *testing.T) {
	svc, _ := setupService(t, &stubFeeds{err: assert.AnError})

	_, err := svc.RunDomestic(context.Background())
	assert.ErrorContains(t, err, "failed to fetch song feed")
}

func TestService_RunDomestic_FirstRun(t *testing.T) {
	// No mapping, no cache: the run still succeeds and version mapping
	// passes dates through.
	feeds := &stubFeeds{
		songs: []models.RawSong{
			models.NewRawSong(map[string]string{
				"title": "Song A", "lev_bas": "3", "date_added": "20120711",
			}),
		},
	}

	svc, _ := setupService(t, feeds)

	result, err := svc.RunDomestic(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Catalog, 1)
	assert.Equal(t, "20120711", result.Catalog[0].BasicInfo.Version)
}

func TestService_RunInternational(t *testing.T) {
	feeds := &stubFeeds{
		intlSongs: []models.RawSong{
			models.NewRawSong(map[string]string{
				"title": "Old Song", "artist": "Artist A",
				"lev_bas": "5", "lev_adv": "7",
				"date_intl_added": "20200101",
			}),
			// No international release date: the entry is delisted.
			models.NewRawSong(map[string]string{
				"title": "Ghost Song", "lev_bas": "3",
			}),
		},
	}

	cached := &models.Chart{
		ID: "7", Title: "Old Song", Variant: models.VariantStandard,
		DS:    []float64{5, 7.2},
		Level: []string{"5", "7"},
		BasicInfo: models.BasicInfo{
			Title: "Old Song", ReleaseDate: "20190101",
			Version: "maimai でらっくす",
		},
	}

	svc, cfg := setupService(t, feeds)
	writeMapping(t, cfg, IntlMappingFile)
	writeCache(t, cfg, []*models.Chart{cached})

	result, err := svc.RunInternational(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Catalog, 1)
	c := result.Catalog[0]

	// Pre-relaunch cached entry: id from the cache, ratings and version
	// label restored from the cache, chart ids from this run.
	assert.Equal(t, "7", c.ID)
	assert.Equal(t, []float64{5, 7.2}, c.DS)
	assert.Equal(t, "maimai でらっくす", c.BasicInfo.Version)
	assert.Equal(t, []int{1, 2}, c.CIDs)
	assert.Equal(t, "20200101", c.BasicInfo.ReleaseDate)

	// The master document is the cache with this run folded in.
	require.Len(t, result.Master, 1)
	m := result.Master[0]
	assert.Equal(t, "7", m.ID)
	assert.Equal(t, []int{1, 2}, m.CIDs)
	assert.Equal(t, "20200101", m.BasicInfo.ReleaseDate)
	assert.False(t, m.BasicInfo.IsNew)

	require.Len(t, result.OutputPaths, 2)
	for _, path := range result.OutputPaths {
		written, err := source.LoadCatalog(path)
		require.NoError(t, err)
		assert.Len(t, written, 1)
	}
}

func TestService_RunInternational_FeedError(t *testing.T) {
	svc, _ := setupService(t, &stubFeeds{err: assert.AnError})

	_, err := svc.RunInternational(context.Background())
	assert.ErrorContains(t, err, "failed to fetch international song feed")
}

// A second run fed its own output as the cache must not drift: ids and
// ratings adopted once stay adopted.
func TestService_RunDomestic_Stable(t *testing.T) {
	feeds := &stubFeeds{
		songs: []models.RawSong{
			models.NewRawSong(map[string]string{
				"title": "Song A", "lev_bas": "3", "lev_adv": "5",
				"date_added": "20120711", "image_url": "abc123.png",
			}),
		},
	}

	svc, cfg := setupService(t, feeds)
	writeMapping(t, cfg, MappingFile)
	writeCache(t, cfg, []*models.Chart{
		{
			ID: "42", Title: "Song A", Variant: models.VariantStandard,
			BasicInfo: models.BasicInfo{Title: "Song A", ReleaseDate: "20120711", Version: "maimai"},
		},
	})

	first, err := svc.RunDomestic(context.Background())
	require.NoError(t, err)

	writeCache(t, cfg, first.Catalog)

	second, err := svc.RunDomestic(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Catalog, second.Catalog)
}
