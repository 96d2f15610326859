package archive

import (
	"encoding/json"

	"chart-catalog/feature/chart/models"
)

// Row is the flattened database form of a chart entry. The per-tier
// sequences are stored as JSON columns; downstream consumers only
// filter on the scalar columns.
type Row struct {
	ID          string `gorm:"column:id;primaryKey;size:64"`
	Variant     string `gorm:"column:type;primaryKey;size:8"`
	Title       string `gorm:"column:title;size:255"`
	Comment     string `gorm:"column:comment;size:255"`
	DS          string `gorm:"column:ds;type:text"`
	Level       string `gorm:"column:level;type:text"`
	CIDs        string `gorm:"column:cids;type:text"`
	Charts      string `gorm:"column:charts;type:text"`
	Artist      string `gorm:"column:artist;size:255"`
	Genre       string `gorm:"column:genre;size:64"`
	BPM         int    `gorm:"column:bpm"`
	ReleaseDate string `gorm:"column:release_date;size:16"`
	Version     string `gorm:"column:version;size:64"`
	IsNew       bool   `gorm:"column:is_new"`
}

// TableName sets the archive table name.
func (Row) TableName() string {
	return "charts"
}

// NewRow flattens a chart entry into its database form.
func NewRow(c *models.Chart) Row {
	return Row{
		ID:          c.ID,
		Variant:     string(c.Variant),
		Title:       c.Title,
		Comment:     c.Comment,
		DS:          mustJSON(c.DS),
		Level:       mustJSON(c.Level),
		CIDs:        mustJSON(c.CIDs),
		Charts:      mustJSON(c.Charts),
		Artist:      c.BasicInfo.Artist,
		Genre:       c.BasicInfo.Genre,
		BPM:         c.BasicInfo.BPM,
		ReleaseDate: c.BasicInfo.ReleaseDate,
		Version:     c.BasicInfo.Version,
		IsNew:       c.BasicInfo.IsNew,
	}
}

// mustJSON encodes sequence columns. The inputs are plain slices of
// scalars and structs, so encoding cannot fail.
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}
