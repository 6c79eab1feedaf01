package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/davidrmellors/peeper-webportal/internal/organisation"
	"github.com/davidrmellors/peeper-webportal/internal/student"
)

// NarrativeSessionCap limits the narrative report to the longest sessions; a
// student's remaining sessions are deliberately omitted from this variant.
const NarrativeSessionCap = 4

// TopSessions returns up to limit sessions sorted by descending duration.
func TopSessions(st student.Student, limit int) []student.Session {
	sessions := make([]student.Session, 0, len(st.Sessions))
	for _, sess := range st.Sessions {
		sessions = append(sessions, sess)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Duration() == sessions[j].Duration() {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].Duration() > sessions[j].Duration()
	})

	if len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions
}

// BuildDocument renders the narrative PDF for one student: a header, then one
// page per session (top sessions by duration) with organisation details,
// timing, movement stats and the session's map image. images is keyed by
// session id; a missing entry renders a placeholder line instead. A student
// with no sessions yields a header-only document.
func BuildDocument(st student.Student, orgs map[string]organisation.Organisation, images map[string][]byte, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(st.StudentNumber+" Report", false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 24)
	pdf.CellFormat(0, 12, fmt.Sprintf("%s Report", st.StudentNumber), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 7, "Date Generated: "+generatedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	pdf.Line(left, pdf.GetY(), pageW-right, pdf.GetY())
	pdf.Ln(6)

	for i, sess := range TopSessions(st, NarrativeSessionCap) {
		if i > 0 {
			pdf.AddPage()
		}
		writeSessionBlock(pdf, sess, orgs, images[sess.ID])
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSessionBlock(pdf *fpdf.Fpdf, sess student.Session, orgs map[string]organisation.Organisation, image []byte) {
	orgName, street, suburb, city, postalCode := "N/A", "N/A", "N/A", "N/A", "N/A"
	if org, ok := orgs[sess.OrgID]; ok {
		orgName = org.Name
		street = org.Address.Street
		suburb = org.Address.Suburb
		city = org.Address.City
		postalCode = org.Address.PostalCode
	}

	metrics := student.ComputeSessionMetrics(sess)

	detailRow := func(label, value, addressPart string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(35, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(85, 7, value, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, addressPart, "", 1, "L", false, 0, "")
	}

	const timeLayout = "02 Jan 2006, 15:04:05"
	detailRow("Organisation:", orgName, street)
	detailRow("Start Time:", sess.StartTime.Format(timeLayout), suburb)
	detailRow("End Time:", sess.EndTime.Format(timeLayout), city)
	detailRow("Duration:", student.DurationString(sess.Duration()), postalCode)
	pdf.Ln(4)

	if len(image) > 0 {
		name := "map-" + sess.ID
		pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(image))
		pdf.ImageOptions(name, pdf.GetX(), pdf.GetY(), 180, 120, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	} else {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 10, "Map image unavailable", "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(90, 7, fmt.Sprintf("Number of Pins: %d", metrics.PinCount), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Average Speed: %v km/h", metrics.AvgSpeedKmh), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
