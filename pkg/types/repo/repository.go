package repo

import (
	"github.com/mahesh00009/CurToCryptoFrontend/internal/models"
	"github.com/mahesh00009/CurToCryptoFrontend/internal/repo"
)

// Repository is the conversion journal as the HTTP layer sees it.
type Repository interface {
	CreateConversion(conversion *models.Conversion) error
	GetConversionByID(id int64) (*models.Conversion, error)
	ListConversions(filter repo.ConversionFilter) ([]models.Conversion, error)
	ConversionStats() (*models.ConversionStats, error)
}

var _ Repository = (*repo.Repository)(nil)
