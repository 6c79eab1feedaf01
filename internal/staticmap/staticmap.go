package staticmap

import (
	"strconv"
	"strings"

	"github.com/davidrmellors/peeper-webportal/internal/shared/geo"
)

const (
	// MaxPathSegments caps the number of sampled points in a rendered path so
	// the resulting static-map URL stays within the provider's length limit.
	MaxPathSegments = 50

	imageWidth  = 600
	imageHeight = 400
	lineWeight  = 2
)

// Segment is one colored leg of the rendered path.
type Segment struct {
	Color    string
	WeightPx int
	From     geo.Point
	To       geo.Point
}

// Marker is a labeled pin on the map. Labels number the rendered pins from 1.
type Marker struct {
	Label int
	Point geo.Point
}

// Request describes a static-map image: center, zoom, size and the path
// segments plus markers derived from a session's sampled pings. It is
// provider-neutral; URL renders it for the Google Static Maps API.
type Request struct {
	Center    geo.Point
	Zoom      int
	Width     int
	Height    int
	MapType   string
	Segments  []Segment
	Markers   []Marker
	WorldView bool
}

// Sample downsamples an ordered point sequence to at most maxSamples entries.
// Sequences within the cap are returned unchanged. Otherwise the first and
// last points are always kept, with evenly stepped points in between.
func Sample(points []geo.Point, maxSamples int) []geo.Point {
	if len(points) == 0 {
		return nil
	}
	if len(points) <= maxSamples {
		return points
	}

	step := len(points) / maxSamples
	result := []geo.Point{points[0]}
	for i := step; i < len(points)-step; i += step {
		result = append(result, points[i])
	}
	return append(result, points[len(points)-1])
}

// Build composes a map request from a session's location pings: sample to the
// segment cap, center on the mean coordinate, zoom to the spread, and color
// each leg by its distance relative to the session's min/max leg distance.
func Build(points []geo.Point) Request {
	sampled := Sample(points, MaxPathSegments)
	if len(sampled) == 0 {
		return Request{Zoom: 1, Width: imageWidth, Height: imageHeight, WorldView: true}
	}

	var sumLat, sumLng float64
	for _, p := range sampled {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	req := Request{
		Center:  geo.Point{Lat: sumLat / float64(len(sampled)), Lng: sumLng / float64(len(sampled))},
		Zoom:    geo.ZoomLevel(sampled),
		Width:   imageWidth,
		Height:  imageHeight,
		MapType: "roadmap",
	}

	minM, maxM := geo.MinMaxSegmentDistance(sampled)
	for i := 0; i < len(sampled)-1; i++ {
		distM := geo.HaversineKm(sampled[i].Lat, sampled[i].Lng, sampled[i+1].Lat, sampled[i+1].Lng) * 1000
		req.Segments = append(req.Segments, Segment{
			Color:    geo.ColorForDistance(distM, minM, maxM),
			WeightPx: lineWeight,
			From:     sampled[i],
			To:       sampled[i+1],
		})
	}

	label := 0
	for _, p := range sampled {
		if p.Lat == 0 || p.Lng == 0 {
			continue
		}
		label++
		req.Markers = append(req.Markers, Marker{Label: label, Point: p})
	}
	return req
}

// URL renders the request as a Google Static Maps query against baseURL.
func (r Request) URL(baseURL, apiKey string) string {
	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteString("?center=")
	b.WriteString(coord(r.Center))
	b.WriteString("&zoom=")
	b.WriteString(strconv.Itoa(r.Zoom))
	b.WriteString("&size=")
	b.WriteString(strconv.Itoa(r.Width))
	b.WriteString("x")
	b.WriteString(strconv.Itoa(r.Height))

	if r.WorldView {
		b.WriteString("&key=")
		b.WriteString(apiKey)
		return b.String()
	}

	b.WriteString("&maptype=")
	b.WriteString(r.MapType)

	for _, s := range r.Segments {
		b.WriteString("&path=color:")
		b.WriteString(s.Color)
		b.WriteString("|weight:")
		b.WriteString(strconv.Itoa(s.WeightPx))
		b.WriteString("|")
		b.WriteString(coord(s.From))
		b.WriteString("|")
		b.WriteString(coord(s.To))
	}

	for _, m := range r.Markers {
		b.WriteString("&markers=color:red%7Clabel:")
		b.WriteString(strconv.Itoa(m.Label))
		b.WriteString("%7C")
		b.WriteString(coord(m.Point))
	}

	b.WriteString("&key=")
	b.WriteString(apiKey)
	return b.String()
}

func coord(p geo.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}
