package report

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/davidrmellors/peeper-webportal/internal/organisation"
	"github.com/davidrmellors/peeper-webportal/internal/staticmap"
	"github.com/davidrmellors/peeper-webportal/internal/student"
)

// StudentSource loads students for a report run.
type StudentSource interface {
	GetStudent(ctx context.Context, id string) (student.Student, error)
}

// OrgDirectory resolves organisations; lookups are shared across concurrent
// per-student generation.
type OrgDirectory interface {
	GetOrganisation(ctx context.Context, id string) (organisation.Organisation, error)
	ListOrganisations(ctx context.Context) ([]organisation.Organisation, error)
}

// ImageFetcher retrieves rendered map images for narrative reports.
type ImageFetcher interface {
	FetchImage(ctx context.Context, req staticmap.Request) ([]byte, error)
}

type Service struct {
	students StudentSource
	orgs     OrgDirectory
	maps     ImageFetcher
	timeout  time.Duration
}

// NewService wires the report pipeline. timeout bounds the generation of a
// single student's narrative document; zero means no limit.
func NewService(students StudentSource, orgs OrgDirectory, maps ImageFetcher, timeout time.Duration) *Service {
	return &Service{students: students, orgs: orgs, maps: maps, timeout: timeout}
}

var errNoStudents = errors.New("no students selected")

// ExcelReport builds the multi-sheet workbook for the selected students and
// returns the file bytes with a download filename.
func (s *Service) ExcelReport(ctx context.Context, studentIDs []string) ([]byte, string, error) {
	students, err := s.loadStudents(ctx, studentIDs)
	if err != nil {
		return nil, "", err
	}

	orgs, err := s.orgIndex(ctx)
	if err != nil {
		return nil, "", err
	}

	workbook, err := BuildWorkbook(students, orgs)
	if err != nil {
		return nil, "", err
	}
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "student-hours.xlsx", nil
}

// PDFReports builds narrative documents for the selected students. One
// student yields a single PDF; several yield a zip archive with one entry per
// student. Students are generated concurrently and a failure flags only that
// student.
func (s *Service) PDFReports(ctx context.Context, studentIDs []string) ([]byte, string, error) {
	students, err := s.loadStudents(ctx, studentIDs)
	if err != nil {
		return nil, "", err
	}

	orgs, err := s.orgIndex(ctx)
	if err != nil {
		return nil, "", err
	}

	type result struct {
		filename string
		data     []byte
		err      error
	}

	generatedAt := time.Now()
	results := make([]result, len(students))
	var wg sync.WaitGroup
	for i, st := range students {
		wg.Add(1)
		go func(i int, st student.Student) {
			defer wg.Done()

			studentCtx := ctx
			if s.timeout > 0 {
				var cancel context.CancelFunc
				studentCtx, cancel = context.WithTimeout(ctx, s.timeout)
				defer cancel()
			}

			images := s.fetchImages(studentCtx, st)
			data, err := BuildDocument(st, orgs, images, generatedAt)
			results[i] = result{filename: st.StudentNumber + "_report.pdf", data: data, err: err}
		}(i, st)
	}
	wg.Wait()

	if len(results) == 1 {
		if results[0].err != nil {
			return nil, "", results[0].err
		}
		return results[0].data, results[0].filename, nil
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	packed := 0
	for _, r := range results {
		if r.err != nil {
			log.Printf("report generation failed for %s: %v", r.filename, r.err)
			continue
		}
		entry, err := zw.Create(r.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := entry.Write(r.data); err != nil {
			return nil, "", err
		}
		packed++
	}
	if err := zw.Close(); err != nil {
		return nil, "", err
	}
	if packed == 0 {
		return nil, "", errors.New("all student reports failed")
	}
	return buf.Bytes(), "student-reports.zip", nil
}

// fetchImages retrieves map images for the sessions that will appear in the
// narrative document. Fetches run concurrently and are single-attempt; a
// failed fetch leaves a nil entry so the document renders a placeholder.
func (s *Service) fetchImages(ctx context.Context, st student.Student) map[string][]byte {
	images := map[string][]byte{}
	if s.maps == nil {
		return images
	}

	sessions := TopSessions(st, NarrativeSessionCap)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, sess := range sessions {
		wg.Add(1)
		go func(sess student.Session) {
			defer wg.Done()
			req := staticmap.Build(student.PingPoints(sess.Pings))
			img, err := s.maps.FetchImage(ctx, req)
			if err != nil {
				log.Printf("map fetch failed for session %s: %v", sess.ID, err)
				return
			}
			mu.Lock()
			images[sess.ID] = img
			mu.Unlock()
		}(sess)
	}
	wg.Wait()
	return images
}

func (s *Service) loadStudents(ctx context.Context, studentIDs []string) ([]student.Student, error) {
	if len(studentIDs) == 0 {
		return nil, errNoStudents
	}

	students := make([]student.Student, 0, len(studentIDs))
	for _, id := range studentIDs {
		st, err := s.students.GetStudent(ctx, id)
		if err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, nil
}

func (s *Service) orgIndex(ctx context.Context) (map[string]organisation.Organisation, error) {
	orgs, err := s.orgs.ListOrganisations(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]organisation.Organisation, len(orgs))
	for _, org := range orgs {
		index[org.ID] = org
	}
	return index, nil
}
