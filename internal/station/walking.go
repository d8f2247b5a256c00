package station

import (
	"math"

	"shop-location-api/internal/models"
)

// WalkingSpeedMetersPerMinute is the fixed pace used for walking estimates.
const WalkingSpeedMetersPerMinute = 80.0

// WalkingMinutes converts a distance into whole walking minutes, rounding up.
// NaN and negative inputs propagate unchanged.
func WalkingMinutes(distanceKm float64) float64 {
	return math.Ceil(distanceKm * 1000 / WalkingSpeedMetersPerMinute)
}

// FillWalkingMinutes derives walking minutes for a candidate that has a
// distance but no walking time from its source. It reports whether it did.
func FillWalkingMinutes(c *models.GroupedStationCandidate) bool {
	if c.DistanceKm == nil || c.WalkingMinutes != nil {
		return false
	}
	d := *c.DistanceKm
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return false
	}
	minutes := int(WalkingMinutes(d))
	c.WalkingMinutes = &minutes
	return true
}
