package report

import (
	"testing"

	"github.com/davidrmellors/peeper-webportal/internal/organisation"
	"github.com/davidrmellors/peeper-webportal/internal/student"
)

func TestBuildWorkbookRowCountMatchesSessions(t *testing.T) {
	st := testStudent(t, "ST00000001", 3)
	orgs := map[string]organisation.Organisation{"org-1": testOrg()}

	f, err := BuildWorkbook([]student.Student{st}, orgs)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}

	rows, err := f.GetRows("ST00000001")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}

	// 7 summary rows, a blank spacer, the column header, then one row per session
	want := 7 + 1 + 1 + len(st.Sessions)
	if len(rows) != want {
		t.Fatalf("expected %d rows, got %d", want, len(rows))
	}

	header := rows[8]
	if header[0] != "Date" || header[4] != "Organisation" {
		t.Fatalf("unexpected header row: %v", header)
	}
	if rows[9][4] != "Soup Kitchen" {
		t.Fatalf("expected organisation name in session row, got %v", rows[9])
	}
	if rows[9][5] != "1 Main Rd, Gardens, Cape Town" {
		t.Fatalf("expected concatenated address, got %v", rows[9])
	}
}

func TestBuildWorkbookOneSheetPerStudent(t *testing.T) {
	students := []student.Student{
		testStudent(t, "ST00000001", 1),
		testStudent(t, "ST00000002", 2),
	}

	f, err := BuildWorkbook(students, nil)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "ST00000001" || sheets[1] != "ST00000002" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}
}

func TestBuildWorkbookDuplicateStudentNumbers(t *testing.T) {
	students := []student.Student{
		student.New("id-1", "", "a@uni.ac.za", nil, nil),
		student.New("id-2", "", "b@uni.ac.za", nil, nil),
		student.New("id-3", "", "c@uni.ac.za", nil, nil),
	}

	f, err := BuildWorkbook(students, nil)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}

	sheets := f.GetSheetList()
	if len(sheets) != 3 {
		t.Fatalf("expected a sheet per student, got %v", sheets)
	}
	if sheets[0] != "N/A" || sheets[1] != "N/A (2)" || sheets[2] != "N/A (3)" {
		t.Fatalf("duplicate numbers not suffixed: %v", sheets)
	}
}

func TestBuildWorkbookUnknownOrganisationFallbacks(t *testing.T) {
	st := testStudent(t, "ST00000001", 1)

	f, err := BuildWorkbook([]student.Student{st}, nil)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}

	rows, err := f.GetRows("ST00000001")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	sessionRow := rows[9]
	if sessionRow[4] != "Unknown Organisation" {
		t.Fatalf("expected organisation fallback, got %v", sessionRow[4])
	}
	if sessionRow[5] != "Unknown Address" {
		t.Fatalf("expected address fallback, got %v", sessionRow[5])
	}
}

func TestBuildWorkbookEmptySessions(t *testing.T) {
	st := student.New("id-1", "ST00000009", "s@uni.ac.za", nil, nil)

	f, err := BuildWorkbook([]student.Student{st}, nil)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}

	rows, err := f.GetRows("ST00000009")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	// summary block and header only, no session rows
	if len(rows) != 9 {
		t.Fatalf("expected 9 rows for sessionless student, got %d", len(rows))
	}
}
