package student

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

var errNotFound = errors.New("student not found")

func expectStudentQueries(t *testing.T, mock pgxmock.PgxPoolIface, id string) {
	t.Helper()

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2*time.Hour + 30*time.Minute)

	mock.ExpectQuery(`SELECT id, student_number, email, active_orgs`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "student_number", "email", "active_orgs"}).
			AddRow(id, "st00000001", "student@uni.ac.za", []string{"org-1"}))

	mock.ExpectQuery(`SELECT id, org_id, start_time, end_time, low_lat, low_lng, high_lat, high_lng`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "org_id", "start_time", "end_time", "low_lat", "low_lng", "high_lat", "high_lng"}).
			AddRow("sess-1", "org-1", start, end, -33.93, 18.41, -33.90, 18.44))

	mock.ExpectQuery(`SELECT l.session_id, l.recorded_at, l.latitude, l.longitude, l.accuracy, COALESCE`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"session_id", "recorded_at", "latitude", "longitude", "accuracy", "altitude"}).
			AddRow("sess-1", start, -33.92, 18.42, 5.0, 30.0).
			AddRow("sess-1", start.Add(time.Minute), -33.921, 18.421, 5.0, 31.0))
}

func TestGetStudent(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	expectStudentQueries(t, mock, "student-1")

	svc := NewService(mock)
	st, err := svc.GetStudent(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("get student: %v", err)
	}

	if st.StudentNumber != "ST00000001" {
		t.Fatalf("expected normalized student number, got %s", st.StudentNumber)
	}
	if len(st.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(st.Sessions))
	}
	sess := st.Sessions["sess-1"]
	if len(sess.Pings) != 2 {
		t.Fatalf("expected 2 pings, got %d", len(sess.Pings))
	}
	if st.Hours != 2.5 {
		t.Fatalf("expected 2.5 hours, got %v", st.Hours)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetStudentNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, student_number, email, active_orgs`).
		WithArgs("missing").
		WillReturnError(errNotFound)

	svc := NewService(mock)
	if _, err := svc.GetStudent(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSummary(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	expectStudentQueries(t, mock, "student-1")

	svc := NewService(mock)
	summary, err := svc.Summary(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.SessionCount != 1 || summary.TotalHours != 2.5 || summary.Status != StatusIncomplete {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
