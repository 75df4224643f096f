package certController

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certportal/certify"
	"certportal/models"
	"certportal/stores"
)

type fakeCertStore struct {
	certs   []models.Certificate
	findErr error
}

func (s *fakeCertStore) FindByCertID(certID string) (*models.Certificate, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for i := range s.certs {
		if s.certs[i].CertID == certID {
			return &s.certs[i], nil
		}
	}
	return nil, nil
}

func (s *fakeCertStore) FindByName(query string) (*models.Certificate, error) {
	for i := range s.certs {
		if strings.Contains(strings.ToLower(s.certs[i].StudentName), strings.ToLower(query)) {
			return &s.certs[i], nil
		}
	}
	return nil, nil
}

func (s *fakeCertStore) Insert(cert *models.Certificate) error {
	s.certs = append(s.certs, *cert)
	return nil
}

func (s *fakeCertStore) ListRecent(limit int) ([]models.Certificate, error) {
	if limit > len(s.certs) {
		limit = len(s.certs)
	}
	return s.certs[:limit], nil
}

var _ stores.CertificateStore = (*fakeCertStore)(nil)

func newTestApp(store *fakeCertStore) *fiber.App {
	ctl := NewController(certify.NewPipeline(store, nil, nil, 4), store)

	app := fiber.New()
	app.Get("/certificate/search", ctl.Search)
	app.Get("/certificate/download/:certId", ctl.Download)
	return app
}

func TestDownloadServesExistingPdf(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "Go101_12345678_ab12.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 test"), 0o644))

	store := &fakeCertStore{certs: []models.Certificate{
		{CertID: "Go101_12345678_ab12", StudentName: "Alice", PdfPath: pdfPath},
	}}
	app := newTestApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/certificate/download/Go101_12345678_ab12", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Go101_12345678_ab12.pdf")
}

func TestDownloadUnknownCertID(t *testing.T) {
	app := newTestApp(&fakeCertStore{})

	resp, err := app.Test(httptest.NewRequest("GET", "/certificate/download/nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDownloadMissingFileOnDisk(t *testing.T) {
	// The record survives but the rendered file was deleted out from
	// under us; that must read as not-found, not a server error.
	store := &fakeCertStore{certs: []models.Certificate{
		{CertID: "Go101_12345678_ab12", StudentName: "Alice", PdfPath: filepath.Join(t.TempDir(), "gone.pdf")},
	}}
	app := newTestApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/certificate/download/Go101_12345678_ab12", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDownloadEmptyPdfPath(t *testing.T) {
	store := &fakeCertStore{certs: []models.Certificate{
		{CertID: "Go101_12345678_ab12", StudentName: "Alice"},
	}}
	app := newTestApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/certificate/download/Go101_12345678_ab12", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSearchByCertID(t *testing.T) {
	store := &fakeCertStore{certs: []models.Certificate{
		{CertID: "Go101_12345678_ab12", StudentName: "Alice"},
	}}
	app := newTestApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/certificate/search?q=Go101_12345678_ab12", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSearchByName(t *testing.T) {
	store := &fakeCertStore{certs: []models.Certificate{
		{CertID: "Go101_12345678_ab12", StudentName: "Alice Johnson"},
	}}
	app := newTestApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/certificate/search?q=johnson", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSearchNoMatch(t *testing.T) {
	app := newTestApp(&fakeCertStore{})

	resp, err := app.Test(httptest.NewRequest("GET", "/certificate/search?q=nobody", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
