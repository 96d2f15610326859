// Package archive persists reconciled catalogs into the relational
// database so other services can query charts without parsing the
// published JSON documents.
package archive

import (
	"context"
	"fmt"

	"chart-catalog/feature/chart/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Archive writes catalog rows to the database.
type Archive struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates an Archive on an established connection.
func New(db *gorm.DB, logger *zap.Logger) *Archive {
	return &Archive{db: db, logger: logger}
}

// Migrate creates or updates the charts table.
func (a *Archive) Migrate(ctx context.Context) error {
	if err := a.db.WithContext(ctx).AutoMigrate(&Row{}); err != nil {
		return fmt.Errorf("failed to migrate charts table: %w", err)
	}
	return nil
}

// SaveAll upserts every catalog entry, keyed by (id, type). Existing
// rows are fully overwritten so manual database edits never survive a
// run; the cached catalog is the place for manual corrections.
func (a *Archive) SaveAll(ctx context.Context, catalog []*models.Chart) error {
	if len(catalog) == 0 {
		return nil
	}

	rows := make([]Row, 0, len(catalog))
	for _, c := range catalog {
		rows = append(rows, NewRow(c))
	}

	const batchSize = 200
	tx := a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}, {Name: "type"}},
		UpdateAll: true,
	})
	if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("failed to archive catalog: %w", err)
	}

	a.logger.Info("Archived catalog", zap.Int("rows", len(rows)))
	return nil
}
