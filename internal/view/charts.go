package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/NordCoder/Runboard/internal/services/dashboard"
)

// DonutSegment is one arc of the flaky-by-device donut. Angles are in
// degrees, clockwise from 12 o'clock.
type DonutSegment struct {
	Device  string  `json:"device"`
	Percent int     `json:"percent"`
	Start   float64 `json:"start_deg"`
	End     float64 `json:"end_deg"`
	Path    string  `json:"path"`
}

// Donut lays out the non-empty shares around a ring centred in a
// (2*radius)x(2*radius) viewBox. Arcs are sized by flaky counts, so they
// close the ring even when rounded percentages do not sum to 100.
func Donut(shares []dashboard.DeviceShare, radius, thickness float64) []DonutSegment {
	total := 0
	for _, s := range shares {
		total += s.Flaky
	}
	out := make([]DonutSegment, 0, len(shares))
	if total == 0 || radius <= 0 {
		return out
	}
	if thickness <= 0 || thickness > radius {
		thickness = radius
	}

	angle := 0.0
	for _, s := range shares {
		if s.Flaky == 0 {
			continue
		}
		sweep := float64(s.Flaky) / float64(total) * 360
		seg := DonutSegment{
			Device:  s.Device,
			Percent: s.Percent,
			Start:   angle,
			End:     angle + sweep,
		}
		seg.Path = arcPath(radius, radius-thickness, seg.Start, seg.End)
		out = append(out, seg)
		angle += sweep
	}
	return out
}

func polar(r, deg, c float64) (float64, float64) {
	rad := (deg - 90) * math.Pi / 180
	return c + r*math.Cos(rad), c + r*math.Sin(rad)
}

// arcPath draws an annular sector. A full ring is split in two halves
// because SVG cannot draw an arc whose endpoints coincide.
func arcPath(outer, inner, start, end float64) string {
	if end-start >= 360 {
		mid := start + 180
		return arcPath(outer, inner, start, mid) + " " + arcPath(outer, inner, mid, end)
	}
	c := outer
	large := 0
	if end-start > 180 {
		large = 1
	}
	x0, y0 := polar(outer, start, c)
	x1, y1 := polar(outer, end, c)
	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s A %s %s 0 %d 1 %s %s", num(x0), num(y0), num(outer), num(outer), large, num(x1), num(y1))
	if inner > 0 {
		x2, y2 := polar(inner, end, c)
		x3, y3 := polar(inner, start, c)
		fmt.Fprintf(&b, " L %s %s A %s %s 0 %d 0 %s %s Z", num(x2), num(y2), num(inner), num(inner), large, num(x3), num(y3))
	} else {
		fmt.Fprintf(&b, " L %s %s Z", num(c), num(c))
	}
	return b.String()
}

func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type TrendLine struct {
	Status string  `json:"status"`
	Points []Point `json:"points"`
	// Polyline is Points in SVG points-attribute form.
	Polyline string `json:"polyline"`
}

type TrendChart struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Max    int         `json:"max"`
	Labels []string    `json:"labels"`
	Lines  []TrendLine `json:"lines"`
}

// Trend scales the series into a width x height viewBox with y growing
// downwards. A single point is centred horizontally.
func Trend(s dashboard.TrendSeries, width, height float64) TrendChart {
	maxCount := 1
	for _, p := range s.Points {
		maxCount = max(maxCount, p.Pass, p.Fail, p.Flaky)
	}
	chart := TrendChart{Width: width, Height: height, Max: maxCount, Labels: s.Labels}

	n := len(s.Points)
	x := func(i int) float64 {
		if n <= 1 {
			return width / 2
		}
		return float64(i) * width / float64(n-1)
	}
	y := func(v int) float64 { return height - float64(v)*height/float64(maxCount) }

	pick := []struct {
		status string
		get    func(dashboard.TrendPoint) int
	}{
		{"PASS", func(p dashboard.TrendPoint) int { return p.Pass }},
		{"FAIL", func(p dashboard.TrendPoint) int { return p.Fail }},
		{"FLAKY", func(p dashboard.TrendPoint) int { return p.Flaky }},
	}
	for _, pk := range pick {
		line := TrendLine{Status: pk.status, Points: make([]Point, 0, n)}
		parts := make([]string, 0, n)
		for i, p := range s.Points {
			pt := Point{X: x(i), Y: y(pk.get(p))}
			line.Points = append(line.Points, pt)
			parts = append(parts, num(pt.X)+","+num(pt.Y))
		}
		line.Polyline = strings.Join(parts, " ")
		chart.Lines = append(chart.Lines, line)
	}
	return chart
}
