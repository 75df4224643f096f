package certify

import (
	"errors"
	"time"

	"gorm.io/datatypes"

	"certportal/models"
	"certportal/stores"
)

// ReasonCertIDExists is the skip reason recorded when a row's identifier
// is already taken.
const ReasonCertIDExists = "Certificate ID exists"

type CreatedRow struct {
	Email  string `json:"email"`
	CertID string `json:"certId"`
}

type SkippedRow struct {
	Email  string `json:"email"`
	CertID string `json:"certId"`
	Reason string `json:"reason"`
}

type ErroredRow struct {
	Row    RawRow `json:"row"`
	Reason string `json:"reason"`
}

// BatchResult classifies every input row into exactly one outcome list.
// Input order is preserved within each list.
type BatchResult struct {
	Created []CreatedRow `json:"created"`
	Skipped []SkippedRow `json:"skipped"`
	Errors  []ErroredRow `json:"errors"`
}

// ProcessBatch runs every row through the issuance pipeline, strictly
// sequentially. A failing row is recorded and never aborts the batch.
// Accounts provisioned before a later step fails are deliberately kept;
// an unlinked student account is harmless and the student can still claim
// it.
func (p *Pipeline) ProcessBatch(rows []RawRow, signaturePath string) *BatchResult {
	result := &BatchResult{
		Created: []CreatedRow{},
		Skipped: []SkippedRow{},
		Errors:  []ErroredRow{},
	}

	for _, raw := range rows {
		nr, err := NormalizeRow(raw)
		if err != nil {
			result.Errors = append(result.Errors, ErroredRow{Row: raw, Reason: err.Error()})
			continue
		}

		certID := nr.CertID
		if certID == "" {
			certID = MakeCertID(nr.CourseName)
		}

		existing, err := p.Certs.FindByCertID(certID)
		if err != nil {
			result.Errors = append(result.Errors, ErroredRow{Row: raw, Reason: err.Error()})
			continue
		}
		if existing != nil {
			result.Skipped = append(result.Skipped, SkippedRow{
				Email:  nr.Email,
				CertID: certID,
				Reason: ReasonCertIDExists,
			})
			continue
		}

		if _, err := p.ensureAccount(nr.Email, nr.Name); err != nil {
			result.Errors = append(result.Errors, ErroredRow{Row: raw, Reason: err.Error()})
			continue
		}

		cert := &models.Certificate{
			CertID:       certID,
			StudentName:  nr.Name,
			StudentEmail: nr.Email,
			CourseName:   nr.CourseName,
			Grade:        nr.Grade,
			IssueDate:    time.Now(),
			Meta:         datatypes.JSONMap{},
		}

		pdfPath, err := p.Renderer.Render(cert, signaturePath)
		if err != nil {
			result.Errors = append(result.Errors, ErroredRow{Row: raw, Reason: err.Error()})
			continue
		}
		cert.PdfPath = pdfPath

		if err := p.Certs.Insert(cert); err != nil {
			if errors.Is(err, stores.ErrDuplicateCertID) {
				// A concurrent writer committed this id between our
				// check and the insert; the unique index is the
				// final arbiter.
				result.Skipped = append(result.Skipped, SkippedRow{
					Email:  nr.Email,
					CertID: certID,
					Reason: ReasonCertIDExists,
				})
			} else {
				result.Errors = append(result.Errors, ErroredRow{Row: raw, Reason: err.Error()})
			}
			continue
		}

		result.Created = append(result.Created, CreatedRow{Email: nr.Email, CertID: certID})
	}

	return result
}
