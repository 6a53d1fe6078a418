package models

import "time"

const (
	SourceWidget = "widget"
	SourceAPI    = "api"
	SourceCLI    = "cli"
)

// Conversion is one request sent to the remote conversion service.
type Conversion struct {
	ID              int64     `json:"id"               gorm:"primaryKey"`
	Source          string    `json:"source"           gorm:"index"`
	Symbol          string    `json:"symbol"           gorm:"index"`
	Amount          string    `json:"amount"`
	Convert         string    `json:"convert"          gorm:"index"`
	ConvertedAmount string    `json:"converted_amount"`
	Error           string    `json:"error,omitempty"`
	CreatedAt       time.Time `json:"created_at"       gorm:"index"`
}

func (c Conversion) Succeeded() bool {
	return c.Error == ""
}

type ConversionStats struct {
	Total    int64            `json:"total"`
	Failed   int64            `json:"failed"`
	BySource map[string]int64 `json:"by_source"`
}
