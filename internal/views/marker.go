package views

import "ignis_shield/internal/models"

// HotBrightness is the brightness (K) above which a hotspot is drawn with
// the hot marker.
const HotBrightness = 330.0

const (
	MarkerHot     = "hot"
	MarkerDefault = "default"
)

// Marker is a hotspot as the map script draws it.
type Marker struct {
	ID         string  `json:"id"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Brightness float64 `json:"brightness"`
	AcqDate    string  `json:"acq_date"`
	Satellite  string  `json:"satellite"`
	Variant    string  `json:"variant"` // hot | default
}

func MarkerVariant(brightness float64) string {
	if brightness > HotBrightness {
		return MarkerHot
	}
	return MarkerDefault
}

// Markers maps hotspots to markers. The result is never nil so it encodes
// as a JSON array.
func Markers(hotspots []models.Hotspot) []Marker {
	out := make([]Marker, 0, len(hotspots))
	for _, h := range hotspots {
		out = append(out, Marker{
			ID:         h.ID,
			Lat:        h.Latitude,
			Lon:        h.Longitude,
			Brightness: h.Brightness,
			AcqDate:    h.AcqDate,
			Satellite:  h.Satellite,
			Variant:    MarkerVariant(h.Brightness),
		})
	}
	return out
}

// MapSettings positions the Leaflet map on the monitoring page.
type MapSettings struct {
	TileURL     string  `json:"tile_url"`
	Attribution string  `json:"attribution"`
	CenterLat   float64 `json:"center_lat"`
	CenterLon   float64 `json:"center_lon"`
	Zoom        int     `json:"zoom"`
	ProfileID   string  `json:"profile_id,omitempty"`
}

func DefaultMapSettings() MapSettings {
	return MapSettings{
		TileURL:     "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "&copy; OpenStreetMap contributors",
		CenterLat:   36.5,
		CenterLon:   -119.5,
		Zoom:        6,
	}
}
