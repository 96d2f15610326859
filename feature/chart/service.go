package chart

import (
	"context"
	"fmt"
	"path/filepath"

	"chart-catalog/feature/chart/models"
	"chart-catalog/feature/chart/normalize"
	"chart-catalog/feature/chart/reconcile"
	"chart-catalog/feature/chart/source"

	"go.uber.org/zap"
)

// Config holds the pipeline's file locations.
type Config struct {
	// DataDir holds the mapping files and the cached catalog.
	DataDir string `mapstructure:"data_dir" default:"music_data"`
	// OutputDir receives the generated catalog documents.
	OutputDir string `mapstructure:"output_dir" default:"."`
}

// Input and output file names, fixed by the consumers of the
// published documents.
const (
	MappingFile     = "mapping.json"
	IntlMappingFile = "intl_mapping.json"
	CacheFile       = "origin_music_data.json"

	OutputFile     = "convert_music_data.json"
	IntlOutputFile = "convert_intl_music_data.json"
	IntlMasterFile = "intl_music_data.json"
)

// FeedSource provides the upstream datasets. *source.Client is the
// production implementation; tests substitute fixtures.
type FeedSource interface {
	FetchSongs(ctx context.Context) ([]models.RawSong, error)
	FetchIntlSongs(ctx context.Context) ([]models.RawSong, error)
	FetchCommunity(ctx context.Context) ([]models.CommunityEntry, error)
}

// Service runs the conversion pipeline: normalize the raw feed,
// reconcile against the cached catalog and the community dataset, and
// write the published documents.
type Service struct {
	feeds  FeedSource
	logger *zap.Logger
	cfg    Config
}

// NewService creates a pipeline service.
func NewService(feeds FeedSource, logger *zap.Logger, cfg Config) *Service {
	return &Service{feeds: feeds, logger: logger, cfg: cfg}
}

// RunResult reports what a pipeline run produced.
type RunResult struct {
	// Catalog is the reconciled catalog, in feed order.
	Catalog []*models.Chart
	// Master is the folded master catalog (international runs only).
	Master []*models.Chart
	// OutputPaths lists the documents written, in write order.
	OutputPaths []string
}

// RunDomestic executes the domestic pipeline and writes
// convert_music_data.json.
func (s *Service) RunDomestic(ctx context.Context) (*RunResult, error) {
	p := models.JapanProfile()

	songs, err := s.feeds.FetchSongs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch song feed: %w", err)
	}
	community, err := s.feeds.FetchCommunity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch community dataset: %w", err)
	}
	mapping, cache, err := s.loadLocal(MappingFile)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Normalizing domestic feed",
		zap.Int("songs", len(songs)),
		zap.Int("cached", len(cache)),
	)

	catalog := normalize.Catalog(songs, p, mapping, nil)
	reconcile.ApplySpecialCases(catalog, p)
	reconcile.AdoptFromCache(catalog, cache, p)
	reconcile.OverrideRatings(catalog, community, p)
	reconcile.DeriveDeluxeIDs(catalog)

	out := filepath.Join(s.cfg.OutputDir, OutputFile)
	if err := source.SaveCatalog(out, catalog); err != nil {
		return nil, err
	}

	s.logger.Info("Domestic catalog written",
		zap.String("path", out),
		zap.Int("entries", len(catalog)),
	)
	return &RunResult{Catalog: catalog, OutputPaths: []string{out}}, nil
}

// RunInternational executes the international pipeline and writes
// convert_intl_music_data.json plus the folded master document
// intl_music_data.json.
func (s *Service) RunInternational(ctx context.Context) (*RunResult, error) {
	p := models.InternationalProfile()

	songs, err := s.feeds.FetchIntlSongs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch international song feed: %w", err)
	}
	mapping, cache, err := s.loadLocal(IntlMappingFile)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Normalizing international feed",
		zap.Int("songs", len(songs)),
		zap.Int("cached", len(cache)),
	)

	// Chart ids are sequential across the whole run; the counter is
	// scoped to this invocation.
	seq := &normalize.Counter{}
	catalog := normalize.Catalog(songs, p, mapping, seq)

	reconcile.ApplySpecialCases(catalog, p)
	reconcile.AdoptFromCache(catalog, cache, p)
	// The cached catalog doubles as the rating source here: the
	// international feed's own ratings are the least trusted epoch.
	reconcile.OverrideRatings(catalog, ratingsFrom(cache), p)
	reconcile.DeriveDeluxeIDs(catalog)

	catalog = reconcile.RemoveDelisted(catalog)
	reconcile.RestoreVersions(catalog, cache)

	out := filepath.Join(s.cfg.OutputDir, IntlOutputFile)
	if err := source.SaveCatalog(out, catalog); err != nil {
		return nil, err
	}

	master := reconcile.FoldIntoCache(catalog, cache, p.CurrentVersion)
	masterOut := filepath.Join(s.cfg.OutputDir, IntlMasterFile)
	if err := source.SaveCatalog(masterOut, master); err != nil {
		return nil, err
	}

	s.logger.Info("International catalogs written",
		zap.String("catalog", out),
		zap.String("master", masterOut),
		zap.Int("entries", len(catalog)),
		zap.Int("master_entries", len(master)),
	)
	return &RunResult{
		Catalog:     catalog,
		Master:      master,
		OutputPaths: []string{out, masterOut},
	}, nil
}

// loadLocal reads the boundary mapping and the cached catalog, both
// tolerant of absence.
func (s *Service) loadLocal(mappingFile string) (map[string]string, []*models.Chart, error) {
	mapping, err := source.LoadMapping(filepath.Join(s.cfg.DataDir, mappingFile))
	if err != nil {
		return nil, nil, err
	}
	cache, err := source.LoadCatalog(filepath.Join(s.cfg.DataDir, CacheFile))
	if err != nil {
		return nil, nil, err
	}
	return mapping, cache, nil
}

// ratingsFrom projects a catalog into rating-only community entries.
func ratingsFrom(catalog []*models.Chart) []models.CommunityEntry {
	entries := make([]models.CommunityEntry, 0, len(catalog))
	for _, c := range catalog {
		entries = append(entries, models.CommunityEntry{
			Title:   c.Title,
			Variant: c.Variant,
			DS:      append([]float64(nil), c.DS...),
		})
	}
	return entries
}
