package api

import (
	"math"
	"strconv"
	"strings"

	"github.com/mr1hm/go-disaster-reports/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// toGeoJSON plots each report as a point. Reports without a usable
// coordinate pair are left off the map.
func toGeoJSON(list []models.EnrichedReport) FeatureCollection {
	features := make([]Feature, 0, len(list))

	for _, r := range list {
		lat, ok := parseCoord(r.Latitude, 90)
		if !ok {
			continue
		}
		lon, ok := parseCoord(r.Longitude, 180)
		if !ok {
			continue
		}

		photos := r.DisplayPhotos()
		if photos == nil {
			photos = []string{}
		}

		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{lon, lat},
			},
			Properties: map[string]any{
				"id":                r.ID,
				"title":             r.Title,
				"category":          r.Category,
				"severity":          r.Severity,
				"severityRank":      r.Severity.Rank(),
				"reportType":        r.ReportType,
				"status":            r.Status,
				"locationName":      r.LocationName,
				"region":            r.Region,
				"affectedResidents": r.AffectedResidents,
				"reportCount":       r.ReportCount,
				"photos":            photos,
				"createdAt":         r.CreatedAt,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// parseCoord accepts finite decimal degrees within ±limit. ParseFloat also
// takes "NaN" and "Inf", which JSON cannot encode.
func parseCoord(raw string, limit float64) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > limit {
		return 0, false
	}
	return v, true
}
