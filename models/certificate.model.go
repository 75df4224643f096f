package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Certificate represents an issued course-completion certificate.
// Records are immutable once created; the unique index on cert_id is the
// authoritative guard against double issuance.
type Certificate struct {
	gorm.Model
	CertID       string            `json:"certId" gorm:"uniqueIndex;not null"`
	StudentName  string            `json:"studentName" gorm:"not null"`
	StudentEmail string            `json:"studentEmail" gorm:"not null"`
	CourseName   string            `json:"courseName" gorm:"not null"`
	Grade        string            `json:"grade" gorm:"default:''"`
	IssueDate    time.Time         `json:"issueDate"`
	PdfPath      string            `json:"pdf_path"`
	Meta         datatypes.JSONMap `json:"meta"`
}
