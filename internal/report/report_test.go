package report

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/davidrmellors/peeper-webportal/internal/organisation"
	"github.com/davidrmellors/peeper-webportal/internal/staticmap"
	"github.com/davidrmellors/peeper-webportal/internal/student"
)

type fakeStudents map[string]student.Student

func (f fakeStudents) GetStudent(_ context.Context, id string) (student.Student, error) {
	st, ok := f[id]
	if !ok {
		return student.Student{}, errors.New("student not found")
	}
	return st, nil
}

type fakeOrgs []organisation.Organisation

func (f fakeOrgs) GetOrganisation(_ context.Context, id string) (organisation.Organisation, error) {
	for _, org := range f {
		if org.ID == id {
			return org, nil
		}
	}
	return organisation.Organisation{}, errors.New("organisation not found")
}

func (f fakeOrgs) ListOrganisations(_ context.Context) ([]organisation.Organisation, error) {
	return f, nil
}

type fakeMaps struct {
	img []byte
	err error
}

func (f fakeMaps) FetchImage(_ context.Context, _ staticmap.Request) ([]byte, error) {
	return f.img, f.err
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testOrg() organisation.Organisation {
	return organisation.Organisation{
		ID:   "org-1",
		Name: "Soup Kitchen",
		Address: organisation.Address{
			Street: "1 Main Rd", Suburb: "Gardens", City: "Cape Town",
			Province: "Western Cape", PostalCode: "8001",
		},
	}
}

// testStudent builds a student whose n sessions last 1h, 2h, 3h, ... in
// session-id order.
func testStudent(t *testing.T, number string, sessionCount int) student.Student {
	t.Helper()
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	sessions := map[string]student.Session{}
	for i := 0; i < sessionCount; i++ {
		id := string(rune('a' + i))
		sessions[id] = student.Session{
			ID:        id,
			OrgID:     "org-1",
			StartTime: start,
			EndTime:   start.Add(time.Duration(i+1) * time.Hour),
			Pings: []student.LocationPing{
				{Timestamp: start, Latitude: -33.92, Longitude: 18.42},
				{Timestamp: start.Add(time.Minute), Latitude: -33.921, Longitude: 18.421},
			},
		}
	}
	return student.New("id-"+number, number, number+"@uni.ac.za", []string{"org-1"}, sessions)
}
