// Package svg renders the dashboard chart as standalone SVG markup.
package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Defaults for the dashboard chart.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPadding = 28.0
	DefaultTicks   = 4
)

// BarOpts customises the bar chart renderer.
type BarOpts struct {
	Title       string
	Description string
	BarColor    string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
}

// Bars renders a single-series bar chart of labelled values.
func Bars(width, height int, values []float64, labels []string, opts BarOpts) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("svg: values required")
	}
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: values length must match labels")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}

	barColor := fallback(opts.BarColor, "#0ea5e9")
	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5f5")

	chartWidth := float64(width) - 2*padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}
	scale := chartHeight / maxVal
	baseY := padding + chartHeight

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\">", width, height))
	b.WriteString(fmt.Sprintf("<title>%s</title>", template.HTMLEscapeString(fallback(opts.Title, "Bar chart"))))
	b.WriteString(fmt.Sprintf("<desc>%s</desc>", template.HTMLEscapeString(fallback(opts.Description, "Labelled bar values"))))

	for i := 0; i <= tickCount; i++ {
		ratio := float64(i) / float64(tickCount)
		y := baseY - ratio*chartHeight
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\"></line>",
			padding, y, padding+chartWidth, y, gridColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" font-size=\"9\" fill=\"%s\" text-anchor=\"end\">%.0f</text>",
			padding-4, y+3, axisColor, maxVal*ratio))
	}

	groupWidth := chartWidth / float64(len(values))
	barWidth := groupWidth * 0.6
	for i, v := range values {
		x := padding + float64(i)*groupWidth + (groupWidth-barWidth)/2
		barHeight := v * scale
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" rx=\"2\"></rect>",
			x, baseY-barHeight, barWidth, barHeight, barColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" font-size=\"10\" fill=\"%s\" text-anchor=\"middle\">%s</text>",
			x+barWidth/2, baseY+14, axisColor, template.HTMLEscapeString(labels[i])))
	}

	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1\"></line>",
		padding, baseY, padding+chartWidth, baseY, axisColor))
	b.WriteString("</svg>")
	return b.String(), nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
