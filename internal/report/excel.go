package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/davidrmellors/peeper-webportal/internal/organisation"
	"github.com/davidrmellors/peeper-webportal/internal/student"
)

const (
	unknownOrganisation = "Unknown Organisation"
	unknownAddress      = "Unknown Address"
)

// BuildWorkbook renders the spreadsheet report: one sheet per student named
// by student number, a summary block on top, then one row per session.
func BuildWorkbook(students []student.Student, orgs map[string]organisation.Organisation) (*excelize.File, error) {
	f := excelize.NewFile()

	taken := map[string]bool{}
	for i, st := range students {
		sheet := sheetName(st.StudentNumber, taken)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}

		// presentation hints only
		if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, "B", "F", 26); err != nil {
			return nil, err
		}

		rows := summaryRows(st, orgs)
		rows = append(rows, nil)
		rows = append(rows, []any{"Date", "Start Time", "End Time", "Duration (hours)", "Organisation", "Address"})
		for _, sess := range sessionsByStart(st) {
			rows = append(rows, sessionRow(sess, orgs))
		}

		for r, values := range rows {
			if values == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// sheetName keeps one sheet per student even when student numbers collide,
// suffixing repeats so a duplicate cannot abort the whole workbook.
func sheetName(number string, taken map[string]bool) string {
	name := number
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("%s (%d)", number, n)
	}
	taken[name] = true
	return name
}

func summaryRows(st student.Student, orgs map[string]organisation.Organisation) [][]any {
	names := make([]string, 0, len(st.ActiveOrgs))
	for _, id := range st.ActiveOrgs {
		if org, ok := orgs[id]; ok {
			names = append(names, org.Name)
		} else {
			names = append(names, unknownOrganisation)
		}
	}

	return [][]any{
		{"Student Details"},
		{"Student Number", st.StudentNumber},
		{"Email", st.Email},
		{"Active Organisations", strings.Join(names, ", ")},
		{"Number of Sessions", len(st.Sessions)},
		{"Hours Completed", st.Hours},
		{"Status", string(st.Status())},
	}
}

func sessionRow(sess student.Session, orgs map[string]organisation.Organisation) []any {
	orgName := unknownOrganisation
	address := unknownAddress
	if org, ok := orgs[sess.OrgID]; ok {
		orgName = org.Name
		if display := org.Address.Display(); display != "" {
			address = display
		}
	}

	metrics := student.ComputeSessionMetrics(sess)
	return []any{
		sess.StartTime.Format("2006-01-02"),
		sess.StartTime.Format("15:04:05"),
		sess.EndTime.Format("15:04:05"),
		metrics.DurationHours,
		orgName,
		address,
	}
}

func sessionsByStart(st student.Student) []student.Session {
	sessions := make([]student.Session, 0, len(st.Sessions))
	for _, sess := range st.Sessions {
		sessions = append(sessions, sess)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].StartTime.Equal(sessions[j].StartTime) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].StartTime.Before(sessions[j].StartTime)
	})
	return sessions
}
