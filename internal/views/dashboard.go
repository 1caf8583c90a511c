package views

import (
	"fmt"
	"strings"
)

type Card struct {
	Title string
	Href  string
	Color string
	Image string
}

type Activity struct {
	Log  string
	Link string
}

// MonthStat is one point of the dashboard's static activity chart.
type MonthStat struct {
	Month       string
	Predictions int
	Fires       int
}

var DashboardCards = []Card{
	{Title: "Single Prediction", Href: "/predict", Color: "#CD5656", Image: "/static/img/predict.svg"},
	{Title: "Realtime Monitoring", Href: "/realtime", Color: "#AF3E3E", Image: "/static/img/realtime.svg"},
}

var RecentActivity = []Activity{
	{
		Log:  "Prediction for Kerala region – High Risk (85%)",
		Link: "https://www.thehindu.com/news/national/kerala/forest-fire-alert-kerala/article12345.ece",
	},
	{
		Log:  "Realtime monitoring session started – Tamil Nadu",
		Link: "https://indianexpress.com/article/tamil-nadu/forest-fire-monitoring-tn-67890/",
	},
	{
		Log:  "Prediction for Odisha – Moderate Risk (60%)",
		Link: "https://timesofindia.indiatimes.com/city/bhubaneswar/odisha-forest-fire-prediction/articleshow/67890.cms",
	},
}

var MonthlyStats = []MonthStat{
	{Month: "Jan", Predictions: 30, Fires: 25},
	{Month: "Feb", Predictions: 50, Fires: 40},
	{Month: "Mar", Predictions: 45, Fires: 35},
	{Month: "Apr", Predictions: 60, Fires: 50},
}

const chartPad = 30

// Chart is an SVG line chart laid out in pixel coordinates.
type Chart struct {
	Width  int
	Height int
	Series []ChartSeries
	XTicks []ChartTick
	YTicks []ChartTick
}

type ChartSeries struct {
	Name   string
	Color  string
	Points string // SVG polyline points, "x,y x,y ..."
}

type ChartTick struct {
	Label string
	X, Y  float64
}

// LineChart lays out predictions and fires per month. The y axis runs from
// zero to the largest value rounded up to a multiple of ten.
func LineChart(stats []MonthStat, width, height int) Chart {
	c := Chart{Width: width, Height: height}
	if len(stats) == 0 {
		return c
	}

	top := 0
	for _, s := range stats {
		top = max(top, s.Predictions, s.Fires)
	}
	top = max((top+9)/10*10, 10)

	plotW := float64(width - 2*chartPad)
	plotH := float64(height - 2*chartPad)
	x := func(i int) float64 {
		if len(stats) == 1 {
			return float64(width) / 2
		}
		return chartPad + plotW*float64(i)/float64(len(stats)-1)
	}
	y := func(v int) float64 {
		return float64(height-chartPad) - plotH*float64(v)/float64(top)
	}

	var preds, fires []string
	for i, s := range stats {
		preds = append(preds, fmt.Sprintf("%.1f,%.1f", x(i), y(s.Predictions)))
		fires = append(fires, fmt.Sprintf("%.1f,%.1f", x(i), y(s.Fires)))
		c.XTicks = append(c.XTicks, ChartTick{Label: s.Month, X: x(i), Y: float64(height - chartPad/3)})
	}
	for v := 0; v <= top; v += top / 5 {
		c.YTicks = append(c.YTicks, ChartTick{Label: fmt.Sprint(v), X: chartPad / 3, Y: y(v)})
	}

	c.Series = []ChartSeries{
		{Name: "predictions", Color: "#CD5656", Points: strings.Join(preds, " ")},
		{Name: "fires", Color: "#AF3E3E", Points: strings.Join(fires, " ")},
	}
	return c
}
