package certify

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"certportal/models"
	"certportal/stores"
)

// IssueRequest is a single-certificate issuance request. CertID is
// optional; one is derived from the course name when absent.
type IssueRequest struct {
	CertID       string `json:"certId"`
	StudentName  string `json:"studentName"`
	StudentEmail string `json:"studentEmail"`
	CourseName   string `json:"courseName"`
	Grade        string `json:"grade"`
}

// IssueOne issues one certificate outside of a batch. It returns
// stores.ErrDuplicateCertID when the identifier is taken and performs no
// writes in that case. Unlike the batch path, no student account is
// provisioned.
func (p *Pipeline) IssueOne(req IssueRequest, signaturePath string) (*models.Certificate, error) {
	name := strings.TrimSpace(req.StudentName)
	email := strings.ToLower(strings.TrimSpace(req.StudentEmail))
	courseName := strings.TrimSpace(req.CourseName)

	if name == "" || email == "" || courseName == "" {
		return nil, ErrMissingFields
	}

	certID := strings.TrimSpace(req.CertID)
	if certID == "" {
		certID = MakeCertID(courseName)
	}

	existing, err := p.Certs.FindByCertID(certID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, stores.ErrDuplicateCertID
	}

	cert := &models.Certificate{
		CertID:       certID,
		StudentName:  name,
		StudentEmail: email,
		CourseName:   courseName,
		Grade:        strings.TrimSpace(req.Grade),
		IssueDate:    time.Now(),
		Meta:         datatypes.JSONMap{},
	}

	pdfPath, err := p.Renderer.Render(cert, signaturePath)
	if err != nil {
		return nil, err
	}
	cert.PdfPath = pdfPath

	// Insert maps a unique index violation to ErrDuplicateCertID, which
	// covers a writer racing us past the check above.
	if err := p.Certs.Insert(cert); err != nil {
		return nil, err
	}

	return cert, nil
}
