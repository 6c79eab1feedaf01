package student

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/davidrmellors/peeper-webportal/internal/shared/geo"
)

// SessionMetrics are the per-session figures shown on reports.
type SessionMetrics struct {
	DurationHours float64 `json:"duration_hours"`
	PinCount      int     `json:"pin_count"`
	AvgSpeedKmh   float64 `json:"avg_speed_kmh"`
}

// Round2 rounds to two decimals, half away from zero. All report figures use
// this mode.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeSessionMetrics derives duration, pin count and average speed for one
// session. Duration comes from the session start/end; speed comes from
// ping-to-ping distance over ping-to-ping elapsed time. Pings are sorted by
// timestamp first, since the mobile client does not guarantee order.
func ComputeSessionMetrics(s Session) SessionMetrics {
	return SessionMetrics{
		DurationHours: Round2(s.Duration().Hours()),
		PinCount:      len(s.Pings),
		AvgSpeedKmh:   averageSpeedKmh(s.Pings),
	}
}

func averageSpeedKmh(pings []LocationPing) float64 {
	if len(pings) < 2 {
		return 0
	}

	ordered := make([]LocationPing, len(pings))
	copy(ordered, pings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	var totalKm, totalHours float64
	for i := 1; i < len(ordered); i++ {
		prev, curr := ordered[i-1], ordered[i]
		totalKm += geo.HaversineKm(prev.Latitude, prev.Longitude, curr.Latitude, curr.Longitude)
		totalHours += curr.Timestamp.Sub(prev.Timestamp).Hours()
	}

	if totalHours <= 0 {
		return 0
	}
	return Round2(totalKm / totalHours)
}

// AggregateHours sums session durations into the student's hour total. The
// running total is re-rounded to two decimals after every addition, matching
// how stored hour figures were historically accumulated; summing raw floats
// and rounding once can differ in the last decimal. Sessions are visited in
// session-id order so the result is deterministic.
func AggregateHours(sessions map[string]Session) (float64, Status) {
	ids := make([]string, 0, len(sessions))
	for id := range sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	total := 0.0
	for _, id := range ids {
		total = Round2(total + sessions[id].Duration().Hours())
	}

	status := StatusIncomplete
	if total >= MinimumHours {
		status = StatusComplete
	}
	return total, status
}

// DurationString renders a duration as "H hours, M minutes, S seconds".
func DurationString(d time.Duration) string {
	totalSeconds := int64(d.Seconds())
	return fmt.Sprintf("%d hours, %d minutes, %d seconds",
		totalSeconds/3600, (totalSeconds%3600)/60, totalSeconds%60)
}

// PingPoints converts a session's pings to bare coordinates for map building.
func PingPoints(pings []LocationPing) []geo.Point {
	points := make([]geo.Point, 0, len(pings))
	for _, p := range pings {
		points = append(points, geo.Point{Lat: p.Latitude, Lng: p.Longitude})
	}
	return points
}
