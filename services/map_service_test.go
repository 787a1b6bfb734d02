package services

import (
	"testing"

	"rescue-dashboard/models"
)

func locatedReport(id int64, lat, lon float64) models.Report {
	return models.Report{ID: id, Status: "received", Latitude: &lat, Longitude: &lon}
}

func cityViewport() models.MapViewport {
	return models.MapViewport{LatMin: 40.70, LonMin: -74.02, LatMax: 40.80, LonMax: -73.93}
}

func TestClusterLevelBounds(t *testing.T) {
	testCases := []struct {
		name string
		vp   models.MapViewport
	}{
		{
			name: "city viewport",
			vp:   cityViewport(),
		},
		{
			name: "continent viewport",
			vp:   models.MapViewport{LatMin: -30, LonMin: -80, LatMax: 40, LonMax: 40},
		},
		{
			name: "street viewport",
			vp:   models.MapViewport{LatMin: 40.7500, LonMin: -73.9900, LatMax: 40.7520, LonMax: -73.9880},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			level := ClusterLevel(tc.vp)
			if level < minCellLevel || level > maxCellLevel {
				t.Errorf("ClusterLevel() = %d, outside [%d, %d]", level, minCellLevel, maxCellLevel)
			}
		})
	}
}

func TestClusterLevelTracksZoom(t *testing.T) {
	wide := models.MapViewport{LatMin: -30, LonMin: -80, LatMax: 40, LonMax: 40}
	narrow := models.MapViewport{LatMin: 40.7500, LonMin: -73.9900, LatMax: 40.7520, LonMax: -73.9880}

	if ClusterLevel(wide) >= ClusterLevel(narrow) {
		t.Errorf("wide viewport level %d must be below narrow viewport level %d",
			ClusterLevel(wide), ClusterLevel(narrow))
	}
}

func TestBuildMapPinsClustersDenseCells(t *testing.T) {
	// One shared location keeps all five reports in the same cell at any
	// clustering level.
	reports := []models.Report{
		locatedReport(1, 40.7580, -73.9855),
		locatedReport(2, 40.7580, -73.9855),
		locatedReport(3, 40.7580, -73.9855),
		locatedReport(4, 40.7580, -73.9855),
		locatedReport(5, 40.7580, -73.9855),
	}

	pins := BuildMapPins(reports, cityViewport())

	if len(pins) != 1 {
		t.Fatalf("expected one cluster pin, got %d", len(pins))
	}
	if pins[0].Count != 5 {
		t.Errorf("cluster count = %d, want 5", pins[0].Count)
	}
	if pins[0].ReportID != 0 {
		t.Errorf("cluster pins carry no report id, got %d", pins[0].ReportID)
	}
	if pins[0].Latitude < 40.75 || pins[0].Latitude > 40.76 {
		t.Errorf("cluster centroid latitude %f is off", pins[0].Latitude)
	}
}

func TestBuildMapPinsKeepsSparseCells(t *testing.T) {
	reports := []models.Report{
		locatedReport(1, 40.7050, -74.0100), // lower Manhattan
		locatedReport(2, 40.7950, -73.9350), // upper east side
	}

	pins := BuildMapPins(reports, cityViewport())

	if len(pins) != 2 {
		t.Fatalf("expected two individual pins, got %d", len(pins))
	}
	var total int64
	seen := map[int64]bool{}
	for _, pin := range pins {
		total += pin.Count
		seen[pin.ReportID] = true
	}
	if total != 2 {
		t.Errorf("pin counts sum to %d, want 2", total)
	}
	if !seen[1] || !seen[2] {
		t.Errorf("individual pins must keep their report ids, got %v", seen)
	}
}

func TestBuildMapPinsIgnoresReportsOutsideViewport(t *testing.T) {
	reports := []models.Report{
		locatedReport(1, -33.8688, 151.2093), // Sydney, far outside the city viewport
		locatedReport(2, 40.7580, -73.9855),
	}

	pins := BuildMapPins(reports, cityViewport())

	if len(pins) != 1 {
		t.Fatalf("expected one pin, got %d: %+v", len(pins), pins)
	}
	if pins[0].ReportID != 2 {
		t.Errorf("pin report id = %d, want 2", pins[0].ReportID)
	}
}

func TestBuildMapPinsSkipsUnlocatedReports(t *testing.T) {
	reports := []models.Report{
		{ID: 1, Status: "received"},
		locatedReport(2, 40.7580, -73.9855),
	}

	pins := BuildMapPins(reports, cityViewport())

	if len(pins) != 1 {
		t.Fatalf("expected one pin, got %d", len(pins))
	}
	if pins[0].ReportID != 2 {
		t.Errorf("pin report id = %d, want 2", pins[0].ReportID)
	}
}
