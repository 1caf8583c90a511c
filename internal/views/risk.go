package views

import (
	"fmt"
	"math"

	"ignis_shield/internal/models"
)

// RiskTheme is the image and headline shown under a prediction.
type RiskTheme struct {
	High     bool   `json:"high"`
	Image    string `json:"image"`
	Alt      string `json:"alt"`
	Headline string `json:"headline"`
}

var (
	highRiskTheme = RiskTheme{High: true, Image: "/static/img/fire.svg", Alt: "Fire Risk", Headline: "High Fire Risk"}
	lowRiskTheme  = RiskTheme{Image: "/static/img/nofire.svg", Alt: "No Fire Risk", Headline: "No Fire Detected"}
)

// ThemeFor picks the theme from the backend's risk label.
func ThemeFor(risk string) RiskTheme {
	if risk == models.RiskHigh {
		return highRiskTheme
	}
	return lowRiskTheme
}

// FormatProbability renders p with three decimals.
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.3f", p)
}

// Percent converts a 0..1 fraction to a whole percentage.
func Percent(v float64) int {
	return int(math.Round(v * 100))
}

// Bar is one row of the feature-importance chart.
type Bar struct {
	Feature string
	Percent int
	// Width is Percent clamped to 0..100 for the bar's CSS width.
	Width int
}

func ImportanceBars(items []models.FeatureImportance) []Bar {
	bars := make([]Bar, 0, len(items))
	for _, it := range items {
		p := Percent(it.Importance)
		bars = append(bars, Bar{Feature: it.Feature, Percent: p, Width: min(max(p, 0), 100)})
	}
	return bars
}
