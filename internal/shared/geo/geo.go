package geo

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371

// Point is a bare latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// HaversineKm returns the great-circle distance between two coordinates in
// kilometers. Inputs are decimal degrees; callers must supply valid ranges.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLng := (lng2 - lng1) * (math.Pi / 180)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*(math.Pi/180))*math.Cos(lat2*(math.Pi/180))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// ZoomLevel picks a static-map zoom from the coordinate spread of the given
// points: the wider the span, the further out the map.
func ZoomLevel(points []Point) int {
	if len(points) == 0 {
		return 16
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLng, maxLng := points[0].Lng, points[0].Lng
	for _, p := range points[1:] {
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
		minLng = math.Min(minLng, p.Lng)
		maxLng = math.Max(maxLng, p.Lng)
	}

	largestDiff := math.Max(maxLat-minLat, maxLng-minLng)
	switch {
	case largestDiff > 1.0:
		return 10
	case largestDiff > 0.5:
		return 12
	case largestDiff > 0.1:
		return 14
	default:
		return 16
	}
}

// MinMaxSegmentDistance returns the smallest and largest distance in meters
// between consecutive points.
func MinMaxSegmentDistance(points []Point) (minM, maxM float64) {
	if len(points) < 2 {
		return 0, 0
	}

	minM = math.MaxFloat64
	maxM = -math.MaxFloat64
	for i := 0; i < len(points)-1; i++ {
		d := HaversineKm(points[i].Lat, points[i].Lng, points[i+1].Lat, points[i+1].Lng) * 1000
		minM = math.Min(minM, d)
		maxM = math.Max(maxM, d)
	}
	return minM, maxM
}

// ColorForDistance maps a segment distance between the observed min and max to
// a hue from 120° (green, short hops) down to 0° (red, long hops) and renders
// it as a 0xRRGGBB string for static-map path styling. When min and max
// coincide there is no spread to map, so the segment stays green.
func ColorForDistance(distanceM, minM, maxM float64) string {
	ratio := 0.0
	if maxM != minM {
		ratio = (distanceM - minM) / (maxM - minM)
	}
	hue := (1 - ratio) * 120
	r, g, b := hslToRGB(hue, 1, 0.5)
	return fmt.Sprintf("0x%02x%02x%02x", r, g, b)
}

// hslToRGB converts hue (0-360), saturation (0-1) and lightness (0-1) to
// 8-bit RGB channels.
func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	h /= 360

	if s == 0 {
		v := uint8(math.Round(l * 255))
		return v, v, v
	}

	hue2rgb := func(p, q, t float64) float64 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6:
			return p + (q-p)*6*t
		case t < 1.0/2:
			return q
		case t < 2.0/3:
			return p + (q-p)*(2.0/3-t)*6
		default:
			return p
		}
	}

	q := l + s - l*s
	if l < 0.5 {
		q = l * (1 + s)
	}
	p := 2*l - q

	r := hue2rgb(p, q, h+1.0/3)
	g := hue2rgb(p, q, h)
	b := hue2rgb(p, q, h-1.0/3)
	return uint8(math.Round(r * 255)), uint8(math.Round(g * 255)), uint8(math.Round(b * 255))
}
