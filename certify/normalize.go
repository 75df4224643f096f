package certify

import (
	"errors"
	"strings"
)

// RawRow is one spreadsheet row keyed by its header cells, before any
// cleaning.
type RawRow map[string]string

// NormalizedRow is the canonical record extracted from a RawRow. CertID
// is empty when the row carried no explicit identifier.
type NormalizedRow struct {
	Name       string
	Email      string
	CourseName string
	Grade      string
	CertID     string
}

// ErrMissingNameOrEmail is the per-row failure for rows without a usable
// name or email. The batch records it and moves on.
var ErrMissingNameOrEmail = errors.New("Missing name or email")

// fieldAliases maps each canonical field to its accepted header aliases,
// in priority order. The first alias with a non-empty trimmed value wins.
var fieldAliases = map[string][]string{
	"name":       {"name", "studentName", "Name"},
	"email":      {"email", "Email"},
	"courseName": {"courseName", "course", "course_name"},
	"grade":      {"grade", "marks", "score"},
	"certId":     {"certId", "certID", "certid"},
}

func pickField(row RawRow, field string) string {
	for _, alias := range fieldAliases[field] {
		if v := strings.TrimSpace(row[alias]); v != "" {
			return v
		}
	}
	return ""
}

// NormalizeRow extracts and cleans the canonical record from a row.
// Name and email are required; email is lowercased; the course name
// defaults to "Course" when absent.
func NormalizeRow(row RawRow) (NormalizedRow, error) {
	nr := NormalizedRow{
		Name:       pickField(row, "name"),
		Email:      strings.ToLower(pickField(row, "email")),
		CourseName: pickField(row, "courseName"),
		Grade:      pickField(row, "grade"),
		CertID:     pickField(row, "certId"),
	}

	if nr.Name == "" || nr.Email == "" {
		return NormalizedRow{}, ErrMissingNameOrEmail
	}

	if nr.CourseName == "" {
		nr.CourseName = "Course"
	}

	return nr, nil
}
