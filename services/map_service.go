package services

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"rescue-dashboard/models"
)

const (
	expectedCells = 16
	minCellLevel  = 2
	maxCellLevel  = 18
	// Cells holding at most this many reports emit individual pins instead
	// of a cluster.
	maxPinsPerCell = 3
)

// ClusterLevel finds the s2 cell level at which the viewport is covered by
// roughly expectedCells cells, so cluster size tracks zoom.
func ClusterLevel(vp models.MapViewport) int {
	minLL := s2.LatLngFromDegrees(vp.LatMin, vp.LonMin)
	maxLL := s2.LatLngFromDegrees(vp.LatMax, vp.LonMax)

	rect := s2.Rect{
		Lat: r1.Interval{
			Lo: minLL.Lat.Radians(),
			Hi: maxLL.Lat.Radians()},
		Lng: s1.Interval{
			Lo: minLL.Lng.Radians(),
			Hi: maxLL.Lng.Radians()},
	}
	vpArea := rect.Area()

	centerLL := s2.CellIDFromLatLng(s2.LatLng{
		Lat: s1.Angle((rect.Lat.Lo + rect.Lat.Hi) / 2),
		Lng: s1.Angle((rect.Lng.Lo + rect.Lng.Hi) / 2),
	})

	for lv := maxCellLevel; lv >= minCellLevel; lv-- {
		cc := s2.CellFromCellID(centerLL.Parent(lv))
		if vpArea/cc.ApproxArea() < expectedCells {
			return lv
		}
	}
	return minCellLevel
}

// MapAggregator buckets report coordinates into s2 cells at one level and
// emits either individual pins or cluster centroids per cell.
type MapAggregator struct {
	level int
	vp    models.MapViewport
	cells map[s2.CellID][]models.MapPin
}

func NewMapAggregator(vp models.MapViewport) *MapAggregator {
	return &MapAggregator{
		level: ClusterLevel(vp),
		vp:    vp,
		cells: make(map[s2.CellID][]models.MapPin),
	}
}

// AddReport adds a report's location to the aggregation. Reports without
// coordinates or outside the viewport are skipped.
func (a *MapAggregator) AddReport(r models.Report) {
	if r.Latitude == nil || r.Longitude == nil {
		return
	}
	if *r.Latitude < a.vp.LatMin || *r.Latitude > a.vp.LatMax ||
		*r.Longitude < a.vp.LonMin || *r.Longitude > a.vp.LonMax {
		return
	}
	cell := s2.CellIDFromLatLng(s2.LatLngFromDegrees(*r.Latitude, *r.Longitude)).Parent(a.level)
	a.cells[cell] = append(a.cells[cell], models.MapPin{
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
		Count:     1,
		ReportID:  r.ID,
	})
}

// Pins returns the aggregated result. Sparse cells keep their individual
// pins; dense cells collapse into a centroid pin carrying the count.
func (a *MapAggregator) Pins() []models.MapPin {
	result := make([]models.MapPin, 0, len(a.cells))
	for _, pins := range a.cells {
		if len(pins) <= maxPinsPerCell {
			result = append(result, pins...)
			continue
		}
		var sum s2.Point
		for _, pin := range pins {
			sum = s2.Point{Vector: sum.Add(s2.PointFromLatLng(s2.LatLngFromDegrees(pin.Latitude, pin.Longitude)).Vector)}
		}
		centroid := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
		result = append(result, models.MapPin{
			Latitude:  centroid.Lat.Degrees(),
			Longitude: centroid.Lng.Degrees(),
			Count:     int64(len(pins)),
		})
	}
	return result
}

// BuildMapPins clusters the located reports of a collection for a viewport.
// Only reports inside the viewport contribute pins.
func BuildMapPins(reports []models.Report, vp models.MapViewport) []models.MapPin {
	aggr := NewMapAggregator(vp)
	for _, r := range reports {
		aggr.AddReport(r)
	}
	return aggr.Pins()
}
