// Package domain defines the shared reference entities that every client syncs.
// Reference rows are read-only from the client's perspective and carry an
// updated_at watermark used by the delta read path.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Market represents a physical market in the public directory. It is locality
// coded so clients can restrict sync to the areas they care about: a market
// matches an area filter when any of its three locality codes is in the set.
type Market struct {
	ID              uuid.UUID
	Name            string
	ProvinceCode    string
	DistrictCode    string
	SubdistrictCode string
	UpdatedAt       time.Time
}
