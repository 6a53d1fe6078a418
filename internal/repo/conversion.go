package repo

import (
	"github.com/mahesh00009/CurToCryptoFrontend/internal/models"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

type ConversionFilter struct {
	Source string
	Symbol string
	Limit  int
}

func (r *Repository) CreateConversion(conversion *models.Conversion) error {
	return r.db.Create(conversion).Error
}

func (r *Repository) GetConversionByID(id int64) (*models.Conversion, error) {
	var conversion models.Conversion
	if err := r.db.First(&conversion, id).Error; err != nil {
		return nil, err
	}
	return &conversion, nil
}

// ListConversions returns the newest conversions first.
func (r *Repository) ListConversions(filter ConversionFilter) ([]models.Conversion, error) {
	limit := filter.Limit
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	query := r.db.Model(&models.Conversion{})
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if filter.Symbol != "" {
		query = query.Where("symbol = ?", filter.Symbol)
	}

	conversions := make([]models.Conversion, 0)
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&conversions).Error; err != nil {
		return nil, err
	}
	return conversions, nil
}

func (r *Repository) ConversionStats() (*models.ConversionStats, error) {
	stats := &models.ConversionStats{BySource: make(map[string]int64)}

	if err := r.db.Model(&models.Conversion{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Conversion{}).Where("error <> ?", "").Count(&stats.Failed).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Source string
		Count  int64
	}
	if err := r.db.Model(&models.Conversion{}).
		Select("source, COUNT(*) AS count").
		Group("source").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.BySource[row.Source] = row.Count
	}

	return stats, nil
}
