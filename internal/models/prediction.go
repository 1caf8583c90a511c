package models

// Risk labels produced by the backend classifier.
const (
	RiskHigh = "HIGH"
	RiskLow  = "LOW"
)

type PredictRequest struct {
	Temperature     float64 `json:"temperature"`      // °C
	Humidity        float64 `json:"humidity"`         // %
	WindSpeed       float64 `json:"wind_speed"`       // km/h
	VegetationIndex float64 `json:"vegetation_index"` // 0..1
}

type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"` // 0..1
}

type PredictResponse struct {
	Probability       float64             `json:"probability"` // 0..1
	Risk              string              `json:"risk"`        // HIGH | LOW
	FeatureImportance []FeatureImportance `json:"feature_importance"`
	Explanation       string              `json:"explanation"`
}
