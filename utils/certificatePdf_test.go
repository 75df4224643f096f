package utils

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certportal/models"
)

func testCertificate(certID string) *models.Certificate {
	return &models.Certificate{
		CertID:       certID,
		StudentName:  "Alice Johnson",
		StudentEmail: "alice@x.com",
		CourseName:   "Go101",
		Grade:        "A",
		IssueDate:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func writeTestSignaturePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 16))
	for x := 0; x < 40; x++ {
		img.Set(x, 8, color.Black)
	}
	path := filepath.Join(dir, "signature.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestRenderWritesReadablePdf(t *testing.T) {
	r := &PdfRenderer{OutDir: filepath.Join(t.TempDir(), "out")}

	path, err := r.Render(testCertificate("Go101_12345678_ab12"), "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(r.OutDir, "Go101_12345678_ab12.pdf"), path)

	// the returned path must exist and be readable immediately
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderWithoutGrade(t *testing.T) {
	r := &PdfRenderer{OutDir: t.TempDir()}

	cert := testCertificate("NOGRADE_12345678_ab12")
	cert.Grade = ""

	path, err := r.Render(cert, "")
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRenderWithSignatureImage(t *testing.T) {
	dir := t.TempDir()
	sigPath := writeTestSignaturePNG(t, dir)
	r := &PdfRenderer{OutDir: dir}

	path, err := r.Render(testCertificate("SIG_12345678_ab12"), sigPath)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRenderUndecodableSignatureFallsBack(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "signature.png")
	require.NoError(t, os.WriteFile(bogus, []byte("not an image at all"), 0644))
	r := &PdfRenderer{OutDir: dir}

	// a broken signature image must not fail the whole document
	path, err := r.Render(testCertificate("BADSIG_12345678_ab12"), bogus)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRenderMissingSignatureFileFallsBack(t *testing.T) {
	r := &PdfRenderer{OutDir: t.TempDir()}

	path, err := r.Render(testCertificate("NOSIG_12345678_ab12"), "/nonexistent/signature.png")
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestDecodableImage(t *testing.T) {
	dir := t.TempDir()
	sigPath := writeTestSignaturePNG(t, dir)

	imgType, ok := decodableImage(sigPath)
	assert.True(t, ok)
	assert.Equal(t, "PNG", imgType)

	_, ok = decodableImage("")
	assert.False(t, ok)

	_, ok = decodableImage(filepath.Join(dir, "missing.png"))
	assert.False(t, ok)
}
