package student

import (
	"strings"
	"time"
)

// Status reports whether a student has logged the required community-service
// hours.
type Status string

const (
	StatusComplete   Status = "COMPLETE"
	StatusIncomplete Status = "INCOMPLETE"
)

// MinimumHours is the community-service requirement every student must reach.
const MinimumHours = 4.0

// LocationPing is a single GPS reading captured by the mobile client during a
// session. Read-only on this side.
type LocationPing struct {
	Timestamp time.Time `json:"timestamp"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	Altitude  float64   `json:"altitude,omitempty"`
}

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Viewport is the bounding box the mobile client recorded for a session.
type Viewport struct {
	Low  Coordinate `json:"low"`
	High Coordinate `json:"high"`
}

// Session is a timed volunteering interval at one organisation, with the
// location pings logged while it was active.
type Session struct {
	ID        string         `json:"id"`
	OrgID     string         `json:"org_id"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`
	Pings     []LocationPing `json:"pings"`
	Viewport  Viewport       `json:"viewport"`
}

func (s Session) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

type Student struct {
	ID            string             `json:"id"`
	StudentNumber string             `json:"student_number"`
	Email         string             `json:"email"`
	ActiveOrgs    []string           `json:"active_orgs"`
	Sessions      map[string]Session `json:"sessions"`
	Hours         float64            `json:"hours"`
}

// New builds a Student from raw record fields. Students are constructed fresh
// on every read: the student number is normalized to uppercase ("N/A" when
// missing) and total hours are recomputed from the sessions.
func New(id, studentNumber, email string, activeOrgs []string, sessions map[string]Session) Student {
	studentNumber = strings.ToUpper(studentNumber)
	if studentNumber == "" {
		studentNumber = "N/A"
	}
	if sessions == nil {
		sessions = map[string]Session{}
	}

	hours, _ := AggregateHours(sessions)
	return Student{
		ID:            id,
		StudentNumber: studentNumber,
		Email:         email,
		ActiveOrgs:    activeOrgs,
		Sessions:      sessions,
		Hours:         hours,
	}
}

// Status derives the completion state from the recorded hours.
func (s Student) Status() Status {
	if s.Hours >= MinimumHours {
		return StatusComplete
	}
	return StatusIncomplete
}
