package stores

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"certportal/models"
)

// ErrDuplicateCertID is returned by Insert when the cert_id unique index
// rejects the write. The index is the final arbiter of duplicate
// issuance; in-memory pre-checks are an early exit only.
var ErrDuplicateCertID = errors.New("certificate id already exists")

// CertificateStore is the persistence interface consumed by the issuance
// pipeline.
type CertificateStore interface {
	FindByCertID(certID string) (*models.Certificate, error)
	FindByName(query string) (*models.Certificate, error)
	Insert(cert *models.Certificate) error
	ListRecent(limit int) ([]models.Certificate, error)
}

type gormCertificateStore struct {
	db *gorm.DB
}

// NewCertificateStore returns a CertificateStore backed by GORM.
func NewCertificateStore(db *gorm.DB) CertificateStore {
	return &gormCertificateStore{db: db}
}

// FindByCertID returns the certificate with this exact identifier, or
// (nil, nil) when no record exists.
func (s *gormCertificateStore) FindByCertID(certID string) (*models.Certificate, error) {
	var cert models.Certificate
	err := s.db.Where("cert_id = ?", certID).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// escapeLike escapes LIKE metacharacters so user queries only ever match
// literally.
func escapeLike(query string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
}

// FindByName returns at most one certificate whose student name contains
// the query, case-insensitively.
func (s *gormCertificateStore) FindByName(query string) (*models.Certificate, error) {
	var cert models.Certificate
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	err := s.db.Where("LOWER(student_name) LIKE ?", pattern).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (s *gormCertificateStore) Insert(cert *models.Certificate) error {
	if err := s.db.Create(cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCertID
		}
		return err
	}
	return nil
}

func (s *gormCertificateStore) ListRecent(limit int) ([]models.Certificate, error) {
	var certs []models.Certificate
	if err := s.db.Order("issue_date desc").Limit(limit).Find(&certs).Error; err != nil {
		return nil, err
	}
	return certs, nil
}
