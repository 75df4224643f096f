// Package certify implements the certificate issuance pipeline: identifier
// generation, row normalization, duplicate resolution, account
// provisioning, document rendering and batch orchestration. It talks to
// persistence only through the stores interfaces so the whole pipeline is
// testable with in-memory fakes.
package certify

import (
	"errors"
	"strings"

	"certportal/models"
	"certportal/stores"
)

var (
	// ErrMissingFields indicates a request is missing required fields.
	// Nothing is persisted when it is returned.
	ErrMissingFields = errors.New("Missing fields")

	// ErrNotFound indicates a lookup matched no certificate.
	ErrNotFound = errors.New("No certificate found")
)

// Renderer produces the certificate document for a record and returns the
// path it was written to. The returned path must exist on success.
type Renderer interface {
	Render(cert *models.Certificate, signaturePath string) (string, error)
}

// Pipeline drives certificate issuance against the configured stores and
// renderer.
type Pipeline struct {
	Certs     stores.CertificateStore
	Accounts  stores.AccountStore
	Renderer  Renderer
	SaltRound int // bcrypt cost for provisioned account credentials
}

func NewPipeline(certs stores.CertificateStore, accounts stores.AccountStore, renderer Renderer, saltRound int) *Pipeline {
	return &Pipeline{
		Certs:     certs,
		Accounts:  accounts,
		Renderer:  renderer,
		SaltRound: saltRound,
	}
}

// Lookup resolves a free-text query to at most one certificate. An exact
// certId match takes precedence; otherwise the query is matched
// case-insensitively against student names.
func (p *Pipeline) Lookup(query string) (*models.Certificate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNotFound
	}

	cert, err := p.Certs.FindByCertID(query)
	if err != nil {
		return nil, err
	}
	if cert != nil {
		return cert, nil
	}

	cert, err = p.Certs.FindByName(query)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, ErrNotFound
	}
	return cert, nil
}
