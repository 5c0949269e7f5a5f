package domain

import (
	"time"

	"github.com/google/uuid"
)

// CropPrice represents the current price band for a crop at a market.
// Rows are maintained by the (external) price scraping pipeline; this
// service only serves them incrementally to clients.
type CropPrice struct {
	ID        uuid.UUID
	CropKey   string
	MarketID  uuid.UUID
	PriceMin  float64
	PriceMax  float64
	Unit      string
	UpdatedAt time.Time
}
