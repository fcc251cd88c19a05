package dto

import "lifetrack_backend/internal/feature/analytics/domain/entity"

// SeriesResponse is the payload for a time-series query.
type SeriesResponse struct {
	Metric string         `json:"metric"`
	Points []entity.Point `json:"points"`
}
