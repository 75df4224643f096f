package certify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certportal/stores"
)

func TestIssueOne(t *testing.T) {
	p, certs, accounts, renderer := newTestPipeline()

	cert, err := p.IssueOne(IssueRequest{
		StudentName:  "Alice",
		StudentEmail: " Alice@X.com ",
		CourseName:   "Go101",
		Grade:        "A",
	}, "")
	require.NoError(t, err)

	assert.Regexp(t, certIDPattern, cert.CertID)
	assert.Equal(t, "Alice", cert.StudentName)
	assert.Equal(t, "alice@x.com", cert.StudentEmail)
	assert.Equal(t, "Go101", cert.CourseName)
	assert.Equal(t, "A", cert.Grade)
	assert.Equal(t, "generated_pdfs/"+cert.CertID+".pdf", cert.PdfPath)
	assert.False(t, cert.IssueDate.IsZero())

	assert.Equal(t, 1, renderer.calls)
	assert.Len(t, certs.certs, 1)

	// the single-issue path never provisions an account
	assert.Equal(t, 0, accounts.inserts)
}

func TestIssueOneExplicitCertID(t *testing.T) {
	p, _, _, _ := newTestPipeline()

	cert, err := p.IssueOne(IssueRequest{
		CertID:       "  GO-42  ",
		StudentName:  "Bob",
		StudentEmail: "bob@x.com",
		CourseName:   "Go101",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "GO-42", cert.CertID)
}

func TestIssueOneMissingFields(t *testing.T) {
	tests := []struct {
		name string
		req  IssueRequest
	}{
		{"missing name", IssueRequest{StudentEmail: "a@x.com", CourseName: "Go101"}},
		{"missing email", IssueRequest{StudentName: "Alice", CourseName: "Go101"}},
		{"missing course", IssueRequest{StudentName: "Alice", StudentEmail: "a@x.com"}},
		{"whitespace only", IssueRequest{StudentName: " ", StudentEmail: " ", CourseName: " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, certs, accounts, renderer := newTestPipeline()

			_, err := p.IssueOne(tt.req, "")
			require.ErrorIs(t, err, ErrMissingFields)

			// validation failures never touch anything
			assert.Equal(t, 0, renderer.calls)
			assert.Len(t, certs.certs, 0)
			assert.Equal(t, 0, accounts.inserts)
		})
	}
}

func TestIssueOneConflictIsIdempotent(t *testing.T) {
	p, certs, _, renderer := newTestPipeline()
	seedCertificate(certs, "GO-42", "Someone Else")

	_, err := p.IssueOne(IssueRequest{
		CertID:       "GO-42",
		StudentName:  "Bob",
		StudentEmail: "bob@x.com",
		CourseName:   "Go101",
	}, "")
	require.ErrorIs(t, err, stores.ErrDuplicateCertID)

	// zero writes on conflict
	assert.Equal(t, 0, renderer.calls)
	assert.Len(t, certs.certs, 1)
}

func TestIssueOneRenderFailure(t *testing.T) {
	p, certs, _, renderer := newTestPipeline()
	renderer.failErr = errors.New("disk full")

	_, err := p.IssueOne(IssueRequest{
		StudentName:  "Alice",
		StudentEmail: "alice@x.com",
		CourseName:   "Go101",
	}, "")
	require.Error(t, err)
	assert.Len(t, certs.certs, 0)
}

func TestLookup(t *testing.T) {
	p, certs, _, _ := newTestPipeline()
	seedCertificate(certs, "GO-42", "Alice Johnson")
	seedCertificate(certs, "Alice", "Bob Smith") // certId that collides with a name query

	t.Run("exact certId wins over name match", func(t *testing.T) {
		cert, err := p.Lookup("Alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice", cert.CertID)
	})

	t.Run("case-insensitive name substring", func(t *testing.T) {
		cert, err := p.Lookup("johnson")
		require.NoError(t, err)
		assert.Equal(t, "GO-42", cert.CertID)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := p.Lookup("nobody")
		require.ErrorIs(t, err, ErrNotFound)
	})
}
