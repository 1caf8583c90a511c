package models

// RealtimeUser is a notification recipient attached to a monitoring profile.
type RealtimeUser struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Profile is a saved monitoring configuration.
type Profile struct {
	ID          string         `json:"id"`
	ProjectName string         `json:"project_name"`
	APIKey      string         `json:"api_key"`
	Users       []RealtimeUser `json:"users"`
}

type CreateProfileRequest struct {
	ProjectName string         `json:"project_name"`
	APIKey      string         `json:"api_key"`
	Users       []RealtimeUser `json:"users"`
}

// Hotspot is a satellite-detected thermal anomaly.
type Hotspot struct {
	ID         string  `json:"id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Brightness float64 `json:"brightness"` // kelvin
	AcqDate    string  `json:"acq_date"`   // YYYY-MM-DD
	Satellite  string  `json:"satellite"`  // A (Aqua) | T (Terra)
}

type FirmsRequest struct {
	ProjectName string         `json:"project_name"`
	APIKey      string         `json:"api_key"`
	Users       []RealtimeUser `json:"users"`
}

type FirmsResponse struct {
	OK                bool      `json:"ok"`
	Hotspots          []Hotspot `json:"hotspots"`
	AlertsSent        bool      `json:"alerts_sent"`
	TriggeredHotspots []Hotspot `json:"triggered_hotspots"`
}
