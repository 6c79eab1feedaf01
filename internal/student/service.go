package student

import (
	"context"

	"github.com/davidrmellors/peeper-webportal/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// GetStudent loads one student with all sessions and their location pings.
func (s *Service) GetStudent(ctx context.Context, id string) (Student, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, student_number, email, active_orgs
		FROM students WHERE id=$1
	`, id)

	var studentID, number, email string
	var activeOrgs []string
	if err := row.Scan(&studentID, &number, &email, &activeOrgs); err != nil {
		return Student{}, err
	}

	sessions, err := s.loadSessions(ctx, studentID)
	if err != nil {
		return Student{}, err
	}
	return New(studentID, number, email, activeOrgs, sessions), nil
}

// ListStudents loads every student, sessions included, so hour totals are
// available for the roster view and report selection.
func (s *Service) ListStudents(ctx context.Context) ([]Student, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, student_number, email, active_orgs
		FROM students ORDER BY student_number
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type record struct {
		id, number, email string
		activeOrgs        []string
	}
	var records []record
	for rows.Next() {
		var r record
		if err := rows.Scan(&r.id, &r.number, &r.email, &r.activeOrgs); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var students []Student
	for _, r := range records {
		sessions, err := s.loadSessions(ctx, r.id)
		if err != nil {
			return nil, err
		}
		students = append(students, New(r.id, r.number, r.email, r.activeOrgs, sessions))
	}
	return students, nil
}

func (s *Service) loadSessions(ctx context.Context, studentID string) (map[string]Session, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, org_id, start_time, end_time, low_lat, low_lng, high_lat, high_lng
		FROM session_logs WHERE student_id=$1
		ORDER BY start_time
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := map[string]Session{}
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.OrgID, &sess.StartTime, &sess.EndTime,
			&sess.Viewport.Low.Latitude, &sess.Viewport.Low.Longitude,
			&sess.Viewport.High.Latitude, &sess.Viewport.High.Longitude); err != nil {
			return nil, err
		}
		sessions[sess.ID] = sess
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return sessions, nil
	}

	pingRows, err := s.db.Query(ctx, `
		SELECT l.session_id, l.recorded_at, l.latitude, l.longitude, l.accuracy, COALESCE(l.altitude, 0)
		FROM location_logs l
		JOIN session_logs sl ON sl.id = l.session_id
		WHERE sl.student_id=$1
		ORDER BY l.recorded_at
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer pingRows.Close()

	for pingRows.Next() {
		var sessionID string
		var ping LocationPing
		if err := pingRows.Scan(&sessionID, &ping.Timestamp, &ping.Latitude, &ping.Longitude, &ping.Accuracy, &ping.Altitude); err != nil {
			return nil, err
		}
		if sess, ok := sessions[sessionID]; ok {
			sess.Pings = append(sess.Pings, ping)
			sessions[sessionID] = sess
		}
	}
	if err := pingRows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Summary is the roster view of a student's progress.
type Summary struct {
	StudentID     string  `json:"student_id"`
	StudentNumber string  `json:"student_number"`
	SessionCount  int     `json:"session_count"`
	TotalHours    float64 `json:"total_hours"`
	Status        Status  `json:"status"`
}

func (s *Service) Summary(ctx context.Context, id string) (Summary, error) {
	st, err := s.GetStudent(ctx, id)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		StudentID:     st.ID,
		StudentNumber: st.StudentNumber,
		SessionCount:  len(st.Sessions),
		TotalHours:    st.Hours,
		Status:        st.Status(),
	}, nil
}
